// Package config holds the pathgraph engine's runtime configuration: the
// BFS path-count budgets and the per-filter measurement switch, kept as one
// explicit value a caller constructs and passes into pathgraph.FindPaths, so two
// concurrent searches over two independent graphs can run under different
// budgets without stepping on each other.
package config

import "fmt"

// PathLimits bounds how far a single FindPaths call is allowed to grow its
// weak-path population before the BFS gives up on a branch.
type PathLimits struct {
	// Absolute is the hard stop: once a search's total path count exceeds
	// this, the BFS is told to stop discovering new paths entirely.
	Absolute int `json:"absolute"`
	// NoNewWeak is the point beyond which the split/join filter refuses a
	// hierarchy crossing that opens a new split (no new weak branches).
	NoNewWeak int `json:"no_new_weak"`
	// NoWeak is the point beyond which the split/join filter refuses any
	// further hierarchy crossing on a path that still has an open split.
	NoWeak int `json:"no_weak"`
}

// EngineConfig is the full configuration a caller passes into FindPaths.
type EngineConfig struct {
	Limits PathLimits `json:"limits"`
	// IndividualMeasurement turns on per-filter wall-clock timing on every
	// Counter. It costs a time.Now() pair per filter per path, so it
	// defaults to off.
	IndividualMeasurement bool `json:"individual_measurement"`
}

// DefaultEngineConfig returns a generous absolute ceiling with the
// no-new-weak and no-weak thresholds tightened in stages below it, so a
// runaway split population gets throttled well before the absolute limit
// aborts the search outright.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Limits: PathLimits{
			Absolute:  200000,
			NoNewWeak: 100000,
			NoWeak:    50000,
		},
		IndividualMeasurement: false,
	}
}

// Validate checks the configuration for internal consistency. A limit
// ordering where a looser budget only takes effect after a tighter one has
// already aborted the search is unreachable, so it is rejected as
// misconfiguration rather than silently ignored.
func (c EngineConfig) Validate() error {
	l := c.Limits
	if l.Absolute < 0 || l.NoNewWeak < 0 || l.NoWeak < 0 {
		return fmt.Errorf("config: path limits must be non-negative: %+v", l)
	}
	if !(l.NoWeak <= l.NoNewWeak && l.NoNewWeak <= l.Absolute) {
		return fmt.Errorf("config: path limits must satisfy no_weak <= no_new_weak <= absolute, got %+v", l)
	}
	return nil
}
