// Package orchestrator wires one encoding run together: it acquires
// resources with guaranteed release, runs the pipeline driver, and
// reports the run summary to the diagnostic stream.
package orchestrator

import (
	"fmt"
	"io"

	"github.com/user/yuvenc/pkg/pipeline"
	"github.com/user/yuvenc/pkg/ports"
	"github.com/user/yuvenc/pkg/stats"
	"github.com/user/yuvenc/pkg/summarizer"
	"github.com/user/yuvenc/pkg/timing"
)

// Config contains the run parameters for the orchestrator.
type Config struct {
	// Input and Output are names for reporting only; the opened source
	// and sink are injected.
	Input  string
	Output string

	Width    int
	Height   int
	FPSNum   int
	FPSDenom int

	Frames int // 0 = until source exhaustion
	Seek   int

	QP          int
	Bitrate     int
	IntraPeriod int
	Threads     int
}

// Orchestrator coordinates a single encoding run.
type Orchestrator struct {
	source ports.FrameSource
	engine ports.Engine
	sink   ports.BitstreamSink
	recon  ports.ReconSink // nil when no reconstruction output
	logger ports.Logger
	diag   io.Writer
}

// New creates an Orchestrator. source, sink, and recon are already
// open; the orchestrator takes ownership of closing them. recon may be
// nil.
func New(
	source ports.FrameSource,
	engine ports.Engine,
	sink ports.BitstreamSink,
	recon ports.ReconSink,
	logger ports.Logger,
	diag io.Writer,
) *Orchestrator {
	return &Orchestrator{
		source: source,
		engine: engine,
		sink:   sink,
		recon:  recon,
		logger: logger,
		diag:   diag,
	}
}

// Run executes the run to completion and writes the summary. On error
// every acquired resource has still been released.
func (o *Orchestrator) Run(cfg Config) (*summarizer.Report, error) {
	total := timing.Start()

	rel := pipeline.NewReleaser(o.logger)
	defer rel.Release()
	rel.Add("input source", o.source.Close)
	rel.Add("output sink", o.sink.Close)
	if o.recon != nil {
		rel.Add("reconstruction sink", o.recon.Close)
	}

	// The skip happens before the engine exists: a failed seek must not
	// cost an encoder open.
	if cfg.Seek > 0 {
		o.logger.Info("Skipping %d frames", cfg.Seek)
		if err := o.source.Skip(cfg.Seek); err != nil {
			o.logger.Error("Failed to seek %d frames: %s", cfg.Seek, err)
			return nil, fmt.Errorf("seek %d frames: %w", cfg.Seek, err)
		}
	}

	handle, err := o.engine.Open(ports.EngineConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FPSNum:      cfg.FPSNum,
		FPSDenom:    cfg.FPSDenom,
		QP:          cfg.QP,
		Bitrate:     cfg.Bitrate,
		IntraPeriod: cfg.IntraPeriod,
		Threads:     cfg.Threads,
	})
	if err != nil {
		o.logger.Error("Failed to open encoder: %s", err)
		return nil, fmt.Errorf("open encoder: %w", err)
	}
	rel.Add("encoder", handle.Close)

	o.logger.Info("Encoding %s to %s", cfg.Input, cfg.Output)

	running := stats.NewRunning()
	driver := pipeline.New(pipeline.Config{
		Source:     o.source,
		Engine:     handle,
		Sink:       o.sink,
		Recon:      o.recon,
		Stats:      running,
		Logger:     o.logger,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FrameLimit: cfg.Frames,
	})

	encoding := timing.Start()
	runErr := driver.Run()
	encodingWall, encodingCPU := encoding.Elapsed()
	if runErr != nil {
		o.logger.Error("Encoding failed: %s", runErr)
		return nil, runErr
	}

	// Release before the summary so sink buffers are flushed and
	// counted work is durable. The deferred Release is then a no-op.
	rel.Release()

	_, totalCPU := total.Elapsed()
	report := summarizer.NewBuilder().
		WithIO(cfg.Input, cfg.Output).
		WithDimensions(cfg.Width, cfg.Height).
		WithStats(running.Finalize(), driver.Truncated()).
		WithTiming(encodingWall, encodingCPU, totalCPU).
		Build()

	writer := summarizer.NewWriter(summarizer.NewTextFormatter(), o.diag)
	if err := writer.Write(report); err != nil {
		o.logger.Warn("Failed to write summary: %s", err)
	}

	o.logger.Info("Encoding completed")
	return report, nil
}
