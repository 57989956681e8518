package timing_test

import (
	"testing"
	"time"

	"github.com/user/yuvenc/pkg/timing"
)

func TestClock_Elapsed(t *testing.T) {
	c := timing.Start()
	time.Sleep(10 * time.Millisecond)

	wall, cpu := c.Elapsed()
	if wall < 10*time.Millisecond {
		t.Errorf("expected at least 10ms of wall time, got %v", wall)
	}
	if cpu < 0 {
		t.Errorf("cpu time must not be negative, got %v", cpu)
	}
	// Sleeping costs almost no CPU.
	if cpu > wall {
		t.Errorf("cpu time %v exceeds wall time %v for an idle wait", cpu, wall)
	}
}

func TestClock_Monotonic(t *testing.T) {
	c := timing.Start()

	wall1, _ := c.Elapsed()
	wall2, _ := c.Elapsed()
	if wall2 < wall1 {
		t.Errorf("elapsed wall time went backwards: %v then %v", wall1, wall2)
	}
}
