package main

import (
	"flag"
	"os"
	"strconv"
)

// CLIConfig holds pathbench's command-line configuration.
type CLIConfig struct {
	Graphs      int
	Depth       int
	Branching   int
	Workers     int
	QueueSize   int
	Measure     bool
	LogLevel    string
	ShowVersion bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.IntVar(&cfg.Graphs, "graphs",
		getEnvInt("PATHBENCH_GRAPHS", 64),
		"number of independent graphs to search (env: PATHBENCH_GRAPHS)")

	flag.IntVar(&cfg.Depth, "depth",
		getEnvInt("PATHBENCH_DEPTH", 3),
		"hierarchy depth of each generated graph (env: PATHBENCH_DEPTH)")

	flag.IntVar(&cfg.Branching, "branching",
		getEnvInt("PATHBENCH_BRANCHING", 3),
		"children per hierarchy level (env: PATHBENCH_BRANCHING)")

	flag.IntVar(&cfg.Workers, "workers",
		getEnvInt("PATHBENCH_WORKERS", 8),
		"worker pool size (env: PATHBENCH_WORKERS)")

	flag.IntVar(&cfg.QueueSize, "queue-size",
		getEnvInt("PATHBENCH_QUEUE_SIZE", 256),
		"worker pool queue size (env: PATHBENCH_QUEUE_SIZE)")

	flag.BoolVar(&cfg.Measure, "individual-measurement",
		getEnvBool("PATHBENCH_INDIVIDUAL_MEASUREMENT", false),
		"enable per-filter wall-clock timing (env: PATHBENCH_INDIVIDUAL_MEASUREMENT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PATHBENCH_LOG_LEVEL", "info"),
		"log level: debug, info, warn, error (env: PATHBENCH_LOG_LEVEL)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	flag.Parse()
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
