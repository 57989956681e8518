package ports_test

import (
	"testing"

	"github.com/user/yuvenc/pkg/ports"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want ports.LogLevel
	}{
		{"debug", ports.LevelDebug},
		{"info", ports.LevelInfo},
		{"warn", ports.LevelWarn},
		{"error", ports.LevelError},
		{"quiet", ports.LevelQuiet},
		{"garbage", ports.LevelInfo},
		{"", ports.LevelInfo},
	}
	for _, tt := range tests {
		if got := ports.ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	for _, level := range []ports.LogLevel{
		ports.LevelDebug, ports.LevelInfo, ports.LevelWarn, ports.LevelError, ports.LevelQuiet,
	} {
		if ports.ParseLogLevel(level.String()) != level {
			t.Errorf("level %d does not round-trip through %q", level, level.String())
		}
	}
}
