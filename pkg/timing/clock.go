// Package timing measures wall and process CPU time for an encoding
// run. The clock is an explicitly passed object with explicit start and
// readout rather than ambient process-global state, so runs stay
// testable in isolation.
package timing

import "time"

// Clock captures a start point in wall and CPU time.
type Clock struct {
	wallStart time.Time
	cpuStart  time.Duration
}

// Start begins a measurement.
func Start() *Clock {
	return &Clock{
		wallStart: time.Now(),
		cpuStart:  processCPUTime(),
	}
}

// Elapsed returns wall and CPU time spent since Start. CPU time is zero
// on platforms without rusage support.
func (c *Clock) Elapsed() (wall, cpu time.Duration) {
	return time.Since(c.wallStart), processCPUTime() - c.cpuStart
}
