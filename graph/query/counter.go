package query

import "time"

// Counter accumulates one filter's pass/fail/promotion tally and, when
// individual measurement is enabled, its cumulative wall-clock time. Hidden
// counters (the count filter) are tracked the same way but excluded from
// the Counters FindPaths returns to a caller.
type Counter struct {
	Name      string
	Discovery bool
	Hide      bool

	In           int64
	Out          int64
	WeakToStrong int64
	Duration     time.Duration
}

// Record folds one filter invocation's outcome into the counter.
func (c *Counter) Record(passed bool, elapsed time.Duration) {
	if passed {
		c.In++
	} else {
		c.Out++
	}
	c.Duration += elapsed
}

// RecordPromotion records a weak path being promoted to strong by this
// filter (only meaningful for the split/join filter).
func (c *Counter) RecordPromotion() {
	c.WeakToStrong++
}
