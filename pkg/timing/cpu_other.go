//go:build !unix

package timing

import "time"

// processCPUTime is unavailable without rusage; the summary reports
// CPU time as zero on these platforms.
func processCPUTime() time.Duration {
	return 0
}
