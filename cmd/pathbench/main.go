// Command pathbench fans out independent path searches over independently
// built graphs using a worker pool, to exercise the engine's "millions of
// paths" performance requirement without touching the single-threaded
// PathFinder's internals — each worker owns its own graph for the duration
// of one FindPaths call.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	pathgraph "github.com/atopile/pathgraph"
	"github.com/atopile/pathgraph/config"
	"github.com/atopile/pathgraph/metric"
	"github.com/atopile/pathgraph/pkg/timestamp"
	"github.com/atopile/pathgraph/pkg/worker"
)

const appName = "pathbench"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, buf[:n])
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("pathbench failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()
	if cfg.ShowVersion {
		fmt.Println(appName, "0.1.0")
		return nil
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	registry := metric.NewMetricsRegistry()
	observer, err := metric.NewPathFinderObserver(registry, appName)
	if err != nil {
		return err
	}

	engineCfg := config.DefaultEngineConfig()
	engineCfg.IndividualMeasurement = cfg.Measure
	if err := engineCfg.Validate(); err != nil {
		return err
	}

	results := newResultSet()

	processor := func(ctx context.Context, graphIndex int) error {
		src, dsts, err := buildFanoutGraph(cfg.Depth, cfg.Branching)
		if err != nil {
			results.recordError()
			return err
		}
		finder := pathgraph.NewFinder(engineCfg, logger, observer)
		startMs := timestamp.Now()
		paths, _, err := finder.FindPaths(src, dsts)
		if err != nil {
			results.recordError()
			return err
		}
		results.record(len(paths), startMs, timestamp.Now())
		return nil
	}

	pool := worker.NewPool[int](cfg.Workers, cfg.QueueSize, processor,
		worker.WithMetricsRegistry[int](registry, "pathbench_pool"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pool.Start(ctx); err != nil {
		return err
	}

	for i := 0; i < cfg.Graphs; i++ {
		for {
			if err := pool.Submit(i); err == nil {
				break
			}
			time.Sleep(time.Millisecond)
		}
	}

	if err := pool.Stop(30 * time.Second); err != nil {
		return err
	}

	results.report(logger, cfg)
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// resultSet accumulates pathbench's run statistics across every worker
// concurrently, using atomics for the counters a worker updates on its own
// hot path and a mutex, taken on every record, for the wall-time
// minimum/maximum.
type resultSet struct {
	graphsRun    int64
	pathsFound   int64
	errors       int64
	totalElapsed int64 // nanoseconds

	mu            sync.Mutex
	slowest       time.Duration
	earliestStart int64 // Unix ms, across every worker
	latestEnd     int64 // Unix ms, across every worker
}

func newResultSet() *resultSet { return &resultSet{} }

// record folds in one worker's search: startMs/endMs are Unix-millisecond
// timestamps rather than a single time.Duration, so the report can tell
// apart the sum of each search's own duration (useful for an average) from
// the genuine wall-clock span the whole run took under concurrency, which
// the sum alone overcounts.
func (r *resultSet) record(paths int, startMs, endMs int64) {
	elapsed := timestamp.Between(startMs, endMs)

	atomic.AddInt64(&r.graphsRun, 1)
	atomic.AddInt64(&r.pathsFound, int64(paths))
	atomic.AddInt64(&r.totalElapsed, int64(elapsed))

	r.mu.Lock()
	if elapsed > r.slowest {
		r.slowest = elapsed
	}
	r.earliestStart = timestamp.Min(r.earliestStart, startMs)
	r.latestEnd = timestamp.Max(r.latestEnd, endMs)
	r.mu.Unlock()
}

func (r *resultSet) recordError() { atomic.AddInt64(&r.errors, 1) }

func (r *resultSet) report(logger *slog.Logger, cfg *CLIConfig) {
	graphsRun := atomic.LoadInt64(&r.graphsRun)
	var avg time.Duration
	if graphsRun > 0 {
		avg = time.Duration(atomic.LoadInt64(&r.totalElapsed) / graphsRun)
	}

	r.mu.Lock()
	earliestStart, latestEnd := r.earliestStart, r.latestEnd
	r.mu.Unlock()

	var wallClockSpan time.Duration
	if !timestamp.IsZero(earliestStart) && !timestamp.IsZero(latestEnd) {
		wallClockSpan = timestamp.Between(earliestStart, latestEnd)
	}

	logger.Info("pathbench run complete",
		"graphs", cfg.Graphs,
		"depth", cfg.Depth,
		"branching", cfg.Branching,
		"workers", cfg.Workers,
		"graphs_run", graphsRun,
		"paths_found", atomic.LoadInt64(&r.pathsFound),
		"errors", atomic.LoadInt64(&r.errors),
		"avg_search_time", avg,
		"slowest_search_time", r.slowest,
		"wall_clock_span", wallClockSpan,
		"started_at", timestamp.Format(earliestStart),
		"completed_at", timestamp.Format(latestEnd),
	)
}
