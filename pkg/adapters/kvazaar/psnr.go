package kvazaar

import "math"

// maxPSNR caps the reported value for identical planes, where the mean
// squared error is zero.
const maxPSNR = 999.99

// planePSNR returns the peak signal-to-noise ratio in dB between two
// 8-bit sample planes of equal size.
func planePSNR(src, recon []byte) float64 {
	if len(src) == 0 || len(src) != len(recon) {
		return 0
	}
	var sum uint64
	for i := range src {
		d := int(src[i]) - int(recon[i])
		sum += uint64(d * d)
	}
	if sum == 0 {
		return maxPSNR
	}
	mse := float64(sum) / float64(len(src))
	return 10 * math.Log10(255*255/mse)
}
