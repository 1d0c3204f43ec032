package timestamp_test

import (
	"fmt"

	"github.com/atopile/pathgraph/pkg/timestamp"
)

// ExampleNow demonstrates getting the current timestamp.
func ExampleNow() {
	ts := timestamp.Now()
	fmt.Printf("Current timestamp: %d (milliseconds)\n", ts)
	// Output would vary, so we'll just show the format
}

// ExampleFormat demonstrates formatting timestamps for display.
func ExampleFormat() {
	ts := int64(1673785845123)
	formatted := timestamp.Format(ts)
	fmt.Printf("Formatted: %s\n", formatted)

	// Zero timestamp returns empty string
	empty := timestamp.Format(0)
	fmt.Printf("Zero formatted: '%s'\n", empty)

	// Output:
	// Formatted: 2023-01-15T12:30:45Z
	// Zero formatted: ''
}

// ExampleBetween demonstrates calculating the duration between two
// timestamps, as used to measure one worker's search time.
func ExampleBetween() {
	start := int64(1673785845123)
	end := start + 30*60*1000 // 30 minutes later

	duration := timestamp.Between(start, end)
	fmt.Printf("Duration: %v\n", duration)

	// Zero timestamps return zero duration
	zeroDuration := timestamp.Between(0, end)
	fmt.Printf("With zero: %v\n", zeroDuration)

	// Output:
	// Duration: 30m0s
	// With zero: 0s
}

// ExampleMin demonstrates folding a new timestamp into a running earliest
// value, as resultSet does for the earliest search start across workers.
func ExampleMin() {
	earliest := int64(0)
	for _, ts := range []int64{1673785845123, 1673785800000, 1673785900000} {
		earliest = timestamp.Min(earliest, ts)
	}
	fmt.Println(timestamp.Format(earliest))
	// Output:
	// 2023-01-15T12:30:00Z
}
