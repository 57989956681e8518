package bitstreamsink

import (
	"github.com/Eyevinn/mp4ff/avc"
	"github.com/Eyevinn/mp4ff/hevc"
	"github.com/user/yuvenc/pkg/ports"
)

// probeLimit bounds how much of the stream head is buffered while
// looking for the SPS. Parameter sets sit at the very front of the
// stream, so this is generous.
const probeLimit = 64 * 1024

// StreamProbe watches the head of the Annex B byte stream for the HEVC
// sequence parameter set and logs the coded picture size once found.
// After that (or past probeLimit) it goes dormant and costs nothing.
type StreamProbe struct {
	logger ports.Logger
	buf    []byte
	done   bool
}

// NewStreamProbe creates a probe reporting through logger.
func NewStreamProbe(logger ports.Logger) *StreamProbe {
	return &StreamProbe{logger: logger.WithComponent("bitstream")}
}

// Scan inspects the next slice of the stream.
func (p *StreamProbe) Scan(data []byte) {
	if p.done {
		return
	}
	p.buf = append(p.buf, data...)

	// Start-code framing is shared between AVC and HEVC Annex B.
	for _, nalu := range avc.ExtractNalusFromByteStream(p.buf) {
		if len(nalu) < 2 || hevc.GetNaluType(nalu[0]) != hevc.NALU_SPS {
			continue
		}
		sps, err := hevc.ParseSPSNALUnit(nalu)
		if err != nil {
			continue
		}
		width, height := sps.ImageSize()
		p.logger.Info("Video size: %dx%d", width, height)
		p.finish()
		return
	}

	if len(p.buf) > probeLimit {
		p.finish()
	}
}

func (p *StreamProbe) finish() {
	p.done = true
	p.buf = nil
}
