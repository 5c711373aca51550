/*
DESCRIPTION
  tbcdecode is a command-line driver for the composite-video chroma decode
  pipeline: it wires up logging and configuration, then hands a
  video.FieldRepresentation source to the decode orchestrator and streams
  the result through the output writer.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the tbcdecode command-line driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/tbcdecode/cc"
	tbcconfig "github.com/ausocean/tbcdecode/config"
	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/decoder/mono"
	"github.com/ausocean/tbcdecode/decoder/ntsc"
	"github.com/ausocean/tbcdecode/decoder/palcolour"
	"github.com/ausocean/tbcdecode/decoder/transformpal"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/observe"
	"github.com/ausocean/tbcdecode/orchestrator"
	"github.com/ausocean/tbcdecode/output"
	"github.com/ausocean/tbcdecode/video"
	"github.com/ausocean/utils/logging"
)

const version = "v0.1.0"

// Logging configuration, mirroring the rest of the org's CLI tooling.
const (
	logPath      = "tbcdecode.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = false
)

const pkg = "tbcdecode: "

func main() {
	showVersion := flag.Bool("version", false, "show version")
	inputPath := flag.String("input", "", "TBC input path")
	outputPath := flag.String("output", "", "pixel stream output path")
	decoderName := flag.String("decoder", "auto", "decoder kernel: auto, mono, pal2d, transform2d, transform3d, ntsc1d, ntsc2d, ntsc3d, ntsc3dnoadapt")
	startFrame := flag.Uint("start", 0, "decode range start frame (0-based, inclusive)")
	endFrame := flag.Uint("end", 0, "decode range end frame (0-based, exclusive)")
	threads := flag.Uint("threads", 0, "worker thread count (0 = hardware concurrency)")
	activeAreaOnly := flag.Bool("active-area-only", false, "center-crop to the standard 720x480/720x576 active area")
	verbosity := flag.Int("verbosity", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")
	vectorscopePath := flag.String("vectorscope", "", "if set, render an IQ vectorscope PNG of decoded chroma here")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*verbosity), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	log.Info("starting tbcdecode", "version", version)

	cfg := tbcconfig.Config{
		Logger:     log,
		InputPath:  *inputPath,
		OutputPath: *outputPath,
		StartFrame: *startFrame,
		EndFrame:   *endFrame,
		Threads:    *threads,
	}
	updates := map[string]string{tbcconfig.KeyDecoder: *decoderName}
	if *activeAreaOnly {
		updates[tbcconfig.KeyActiveAreaOnly] = "true"
	}
	if err := cfg.Update(updates); err != nil {
		log.Fatal(pkg+"invalid configuration", "error", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(pkg+"invalid configuration", "error", err.Error())
	}
	if err := cfg.RequireOutputPath(); err != nil {
		status, _ := errs.Status(err)
		log.Fatal(pkg + status)
	}

	src, err := openSource(cfg.InputPath)
	if err != nil {
		log.Fatal(pkg+"could not open input", "error", err.Error())
	}

	if cfg.ActiveAreaOnly {
		src, err = video.CropToActiveArea(src)
		if err != nil {
			log.Fatal(pkg+"could not apply active-area cropping", "error", err.Error())
		}
	}

	if cfg.Decoder == tbcconfig.DecoderAuto {
		if p, ok := src.VideoParameters(); ok {
			switch p.System {
			case video.NTSC:
				cfg.Decoder = tbcconfig.DecoderNTSC2D
			default:
				cfg.Decoder = tbcconfig.DecoderTransformPAL2D
			}
		} else {
			cfg.Decoder = tbcconfig.DecoderMono
		}
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		log.Fatal(pkg+"could not create output", "error", err.Error())
	}
	defer out.Close()

	p, _ := src.VideoParameters()
	writer, _ := output.NewWriter(p, output.Config{
		PaddingAmount: int(cfg.PaddingAmount),
		// config's Output* constants list the formats in the same order as
		// output's, starting at OutputRGB48.
		PixelFormat: output.PixelFormat(cfg.PixelFormat - tbcconfig.OutputRGB48),
		OutputY4M:   cfg.OutputY4M,
	})
	backend := output.NewRawBackend(out)
	if err := backend.WriteStreamHeader(writer.StreamHeader()); err != nil {
		log.Fatal(pkg+"could not write stream header", "error", err.Error())
	}

	var vectorscope *observe.Vectorscope
	if *vectorscopePath != "" {
		vectorscope = observe.NewVectorscope(observe.VectorscopeConfig{})
	}

	req := orchestrator.Request{
		Source:     src,
		StartFrame: int(cfg.StartFrame),
		EndFrame:   int(cfg.EndFrame),
		NewKernel:  kernelFactory(cfg.Decoder),
		KernelConfig: decoder.Config{
			ChromaGain:        cfg.ChromaGain,
			ChromaPhase:       cfg.ChromaPhase,
			LumaNRLevel:       cfg.LumaNRLevel,
			ChromaNRLevel:     cfg.ChromaNRLevel,
			FilterChroma:      cfg.FilterChroma,
			SimplePAL:         cfg.SimplePAL,
			PhaseCompensation: cfg.PhaseCompensation,
			BinThreshold:      cfg.BinThreshold,
			BinThresholds:     cfg.BinThresholds,
		},
		Threads: int(cfg.Threads),
		Progress: func(done, total int) {
			log.Debug("decode progress", "done", done, "total", total)
		},
	}
	if vectorscope != nil {
		req.Observe = vectorscope.Observe
	}

	frames, err := orchestrator.Run(req)
	if err != nil {
		log.Fatal(pkg+"decode failed", "error", err.Error())
	}

	if vectorscope != nil {
		if err := vectorscope.Render(*vectorscopePath); err != nil {
			log.Error(pkg+"could not render vectorscope", "error", err.Error())
		}
	}

	for _, frame := range frames {
		if err := backend.WriteFrame(writer.FrameHeader(), writer.Convert(frame)); err != nil {
			log.Fatal(pkg+"could not write frame", "error", err.Error())
		}
	}

	if cfg.DecodeClosedCaptions {
		cues := cc.DecodeFromSource(src, video.FieldID(cfg.StartFrame*2), video.FieldID(cfg.EndFrame*2))
		log.Info("decoded closed captions", "cues", len(cues))
		if cfg.CaptionOutputPath != "" {
			if err := writeSRT(cfg.CaptionOutputPath, cues); err != nil {
				log.Error(pkg+"could not write captions", "error", err.Error())
			}
		}
	}

	log.Info("tbcdecode finished", "frames", len(frames))
}

// kernelFactory resolves a decoder selector to a decoder.Kernel constructor.
func kernelFactory(d uint8) orchestrator.KernelFactory {
	switch d {
	case tbcconfig.DecoderPALColour:
		return func() decoder.Kernel { return palcolour.New() }
	case tbcconfig.DecoderTransformPAL2D:
		return func() decoder.Kernel { return transformpal.NewTwoD() }
	case tbcconfig.DecoderTransformPAL3D:
		return func() decoder.Kernel { return transformpal.NewThreeD() }
	case tbcconfig.DecoderNTSC1D:
		return func() decoder.Kernel { return ntsc.New1D() }
	case tbcconfig.DecoderNTSC2D:
		return func() decoder.Kernel { return ntsc.New2D() }
	case tbcconfig.DecoderNTSC3D:
		return func() decoder.Kernel { return ntsc.New3D() }
	case tbcconfig.DecoderNTSC3DNoAdapt:
		return func() decoder.Kernel { return ntsc.New3DNoAdapt() }
	default:
		return func() decoder.Kernel { return mono.New() }
	}
}

// writeSRT writes cues to path in SubRip format, the simplest timed-text
// container the encoder's subtitle channel can consume.
func writeSRT(path string, cues []cc.Cue) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, c := range cues {
		_, err := fmt.Fprintf(f, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(c.StartTime), srtTimestamp(c.EndTime), c.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// openSource constructs the upstream video.FieldRepresentation for path.
// Source-file ingestion (reading a TBC-metadata SQLite database) is an
// external collaborator whose interface, not implementation, is in scope
// here; callers embedding this pipeline supply their own.
func openSource(path string) (video.FieldRepresentation, error) {
	return nil, fmt.Errorf("tbcdecode: no built-in TBC source reader; provide a video.FieldRepresentation for %q", path)
}
