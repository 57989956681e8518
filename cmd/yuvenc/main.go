// Package main provides the CLI entry point for yuvenc.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/user/yuvenc/pkg/adapters/bitstreamsink"
	"github.com/user/yuvenc/pkg/adapters/kvazaar"
	"github.com/user/yuvenc/pkg/adapters/logger"
	"github.com/user/yuvenc/pkg/adapters/patternsource"
	"github.com/user/yuvenc/pkg/adapters/yuvreader"
	"github.com/user/yuvenc/pkg/adapters/yuvsink"
	"github.com/user/yuvenc/pkg/config"
	"github.com/user/yuvenc/pkg/orchestrator"
	"github.com/user/yuvenc/pkg/pipeline"
	"github.com/user/yuvenc/pkg/ports"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:           "yuvenc",
		Usage:          "Encode raw YUV 4:2:0 video to an HEVC bitstream",
		Version:        version,
		DefaultCommand: "encode",
		Commands: []*cli.Command{
			encodeCommand(),
			patternCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Encode raw frames from a file or stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Input YUV file, or - for stdin"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output HEVC file, or - for stdout"},
			&cli.StringFlag{Name: "recon", Usage: "Reconstructed YUV debug output file"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: "Frame width in pixels"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "Frame height in pixels"},
			&cli.IntFlag{Name: "fps-num", Usage: "Frame rate numerator"},
			&cli.IntFlag{Name: "fps-denom", Usage: "Frame rate denominator"},
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Usage: "Maximum frames to encode (0 = all)"},
			&cli.IntFlag{Name: "seek", Usage: "Frames to skip from the start of the input"},
			&cli.IntFlag{Name: "qp", Aliases: []string{"q"}, Usage: "Base quantization parameter"},
			&cli.IntFlag{Name: "bitrate", Usage: "Target bitrate in bps (0 = constant QP)"},
			&cli.IntFlag{Name: "intra-period", Usage: "Distance between intra frames"},
			&cli.IntFlag{Name: "threads", Usage: "Encoder worker threads (0 = auto)"},
			&cli.BoolFlag{Name: "pattern", Usage: "Encode a synthetic test pattern instead of reading input"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runEncode,
	}
}

func runEncode(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	var source ports.FrameSource
	if c.Bool("pattern") {
		source = patternsource.New(cfg.Width, cfg.Height, cfg.Frames)
	} else {
		source, err = yuvreader.Open(cfg.Input, cfg.Width, cfg.Height)
		if err != nil {
			log.Error("Failed to open input %s: %s", cfg.Input, err)
			return cli.Exit(err.Error(), 1)
		}
	}

	sink, err := bitstreamsink.Open(cfg.Output, log)
	if err != nil {
		source.Close()
		log.Error("Failed to open output %s: %s", cfg.Output, err)
		return cli.Exit(err.Error(), 1)
	}

	var recon ports.ReconSink
	if cfg.Recon != "" {
		rs, err := yuvsink.Open(cfg.Recon)
		if err != nil {
			source.Close()
			sink.Close()
			log.Error("Failed to open output %s: %s", cfg.Recon, err)
			return cli.Exit(err.Error(), 1)
		}
		recon = rs
	}

	orch := orchestrator.New(source, kvazaar.New(log), sink, recon, log, os.Stderr)
	if _, err := orch.Run(cfg.ToOrchestratorConfig()); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("recon") {
		cfg.Recon = c.String("recon")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps-num") {
		cfg.FPSNum = c.Int("fps-num")
	}
	if c.IsSet("fps-denom") {
		cfg.FPSDenom = c.Int("fps-denom")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("seek") {
		cfg.Seek = c.Int("seek")
	}
	if c.IsSet("qp") {
		cfg.QP = c.Int("qp")
	}
	if c.IsSet("bitrate") {
		cfg.Bitrate = c.Int("bitrate")
	}
	if c.IsSet("intra-period") {
		cfg.IntraPeriod = c.Int("intra-period")
	}
	if c.IsSet("threads") {
		cfg.Threads = c.Int("threads")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func patternCommand() *cli.Command {
	return &cli.Command{
		Name:  "pattern",
		Usage: "Write synthetic test-pattern frames as raw YUV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output YUV file, or - for stdout"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Value: 640, Usage: "Frame width in pixels"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Value: 360, Usage: "Frame height in pixels"},
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Value: 250, Usage: "Number of frames to generate"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runPattern,
	}
}

func runPattern(c *cli.Context) error {
	width, height, frames := c.Int("width"), c.Int("height"), c.Int("frames")
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return cli.Exit(fmt.Sprintf("frame size %dx%d must be positive and even", width, height), 1)
	}
	if frames <= 0 {
		return cli.Exit("frame count must be positive", 1)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.LevelInfo)
	}

	sink, err := yuvsink.Open(c.String("output"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info("Generating %d pattern frames", frames)

	source := patternsource.New(width, height, frames)
	alloc := pipeline.BufferAllocator{}
	for {
		frame, err := alloc.New(width, height)
		if err != nil {
			sink.Close()
			return cli.Exit(err.Error(), 1)
		}
		if err := source.Read(frame); err != nil {
			break
		}
		if err := sink.WriteFrame(frame); err != nil {
			sink.Close()
			return cli.Exit(err.Error(), 1)
		}
	}
	if err := sink.Close(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info("Output saved to %s", c.String("output"))
	return nil
}
