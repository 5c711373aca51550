/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyInputPath            = "InputPath"
	KeyOutputPath           = "OutputPath"
	KeyAudioOutputPath      = "AudioOutputPath"
	KeyDecoder              = "Decoder"
	KeyStartFrame           = "StartFrame"
	KeyEndFrame             = "EndFrame"
	KeyThreads              = "Threads"
	KeyChromaGain           = "ChromaGain"
	KeyChromaPhase          = "ChromaPhase"
	KeyLumaNRLevel          = "LumaNRLevel"
	KeyChromaNRLevel        = "ChromaNRLevel"
	KeyFilterChroma         = "FilterChroma"
	KeySimplePAL            = "SimplePAL"
	KeyPhaseCompensation    = "PhaseCompensation"
	KeyActiveAreaOnly       = "ActiveAreaOnly"
	KeyBinThreshold         = "BinThreshold"
	KeyPaddingAmount        = "PaddingAmount"
	KeyPixelFormat          = "PixelFormat"
	KeyOutputY4M            = "OutputY4M"
	KeyDecodeClosedCaptions = "DecodeClosedCaptions"
	KeyCaptionOutputPath    = "CaptionOutputPath"
)

// Config map parameter types.
const (
	typeString = "string"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultDecoder       = DecoderAuto
	defaultThreads       = 0 // 0 => hardware concurrency.
	defaultChromaGain    = 1.0
	defaultChromaPhase   = 0.0
	defaultLumaNRLevel   = 0.0
	defaultChromaNRLevel = 0.0
	defaultBinThreshold  = 0.4
	defaultPaddingAmount = 8
	defaultPixelFormat   = OutputRGB48
	defaultVerbosity     = logging.Error
)

// decoderNames maps the human-readable decoder selector to its enum value.
// Both the spec §6.4 contract names (auto, pal2d, transform2d,
// transform3d, ntsc3dnoadapt) and this package's longer-form aliases are
// recognized.
var decoderNames = map[string]uint8{
	"auto":           DecoderAuto,
	"mono":           DecoderMono,
	"pal2d":          DecoderPALColour,
	"palcolour":      DecoderPALColour,
	"transform2d":    DecoderTransformPAL2D,
	"transformpal2d": DecoderTransformPAL2D,
	"transform3d":    DecoderTransformPAL3D,
	"transformpal3d": DecoderTransformPAL3D,
	"ntsc1d":         DecoderNTSC1D,
	"ntsc2d":         DecoderNTSC2D,
	"ntsc3d":         DecoderNTSC3D,
	"ntsc3dnoadapt":  DecoderNTSC3DNoAdapt,
}

var pixelFormatNames = map[string]uint8{
	"rgb48":     OutputRGB48,
	"yuv444p16": OutputYUV444P16,
	"gray16":    OutputGRAY16,
}

// Variables describes the variables that can be used for tbcdecode control.
// These structs provide the name and type of variable, a function for
// updating this variable in a Config, and a function for validating the
// value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
	},
	{
		Name:   KeyOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputPath = v },
	},
	{
		Name:   KeyAudioOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.AudioOutputPath = v },
	},
	{
		Name: KeyDecoder,
		Type: "enum:auto,mono,pal2d,transform2d,transform3d,ntsc1d,ntsc2d,ntsc3d,ntsc3dnoadapt",
		Update: func(c *Config, v string) {
			d, ok := decoderNames[strings.ToLower(v)]
			if !ok {
				c.Logger.Warning("invalid Decoder param", "value", v)
				return
			}
			c.Decoder = d
		},
		Validate: func(c *Config) {
			if c.Decoder == NothingDefined {
				c.LogInvalidField(KeyDecoder, defaultDecoder)
				c.Decoder = defaultDecoder
			}
		},
	},
	{
		Name:   KeyStartFrame,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.StartFrame = parseUint(KeyStartFrame, v, c) },
	},
	{
		Name:   KeyEndFrame,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.EndFrame = parseUint(KeyEndFrame, v, c) },
	},
	{
		Name:   KeyThreads,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Threads = parseUint(KeyThreads, v, c) },
	},
	{
		Name:   KeyChromaGain,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.ChromaGain = parseFloat(KeyChromaGain, v, c) },
		Validate: func(c *Config) {
			if c.ChromaGain <= 0 {
				c.LogInvalidField(KeyChromaGain, defaultChromaGain)
				c.ChromaGain = defaultChromaGain
			}
		},
	},
	{
		Name:   KeyChromaPhase,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.ChromaPhase = parseFloat(KeyChromaPhase, v, c) },
	},
	{
		Name:   KeyLumaNRLevel,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.LumaNRLevel = parseFloat(KeyLumaNRLevel, v, c) },
	},
	{
		Name:   KeyChromaNRLevel,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.ChromaNRLevel = parseFloat(KeyChromaNRLevel, v, c) },
	},
	{
		Name:   KeyFilterChroma,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.FilterChroma = parseBool(KeyFilterChroma, v, c) },
	},
	{
		Name:   KeySimplePAL,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.SimplePAL = parseBool(KeySimplePAL, v, c) },
	},
	{
		Name:   KeyPhaseCompensation,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.PhaseCompensation = parseBool(KeyPhaseCompensation, v, c) },
	},
	{
		Name:   KeyActiveAreaOnly,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.ActiveAreaOnly = parseBool(KeyActiveAreaOnly, v, c) },
	},
	{
		Name:   KeyBinThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.BinThreshold = parseFloat(KeyBinThreshold, v, c) },
		Validate: func(c *Config) {
			if c.BinThreshold <= 0 {
				c.LogInvalidField(KeyBinThreshold, defaultBinThreshold)
				c.BinThreshold = defaultBinThreshold
			}
		},
	},
	{
		Name:   KeyPaddingAmount,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.PaddingAmount = parseUint(KeyPaddingAmount, v, c) },
		Validate: func(c *Config) {
			if c.PaddingAmount == 0 {
				c.LogInvalidField(KeyPaddingAmount, defaultPaddingAmount)
				c.PaddingAmount = defaultPaddingAmount
			}
		},
	},
	{
		Name: KeyPixelFormat,
		Type: "enum:rgb48,yuv444p16,gray16",
		Update: func(c *Config, v string) {
			f, ok := pixelFormatNames[strings.ToLower(v)]
			if !ok {
				c.Logger.Warning("invalid PixelFormat param", "value", v)
				return
			}
			c.PixelFormat = f
		},
		Validate: func(c *Config) {
			if c.PixelFormat == NothingDefined {
				c.LogInvalidField(KeyPixelFormat, defaultPixelFormat)
				c.PixelFormat = defaultPixelFormat
			}
		},
	},
	{
		Name:   KeyOutputY4M,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.OutputY4M = parseBool(KeyOutputY4M, v, c) },
	},
	{
		Name:   KeyDecodeClosedCaptions,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.DecodeClosedCaptions = parseBool(KeyDecodeClosedCaptions, v, c) },
	},
	{
		Name:   KeyCaptionOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.CaptionOutputPath = v },
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

// parseBool accepts the config-file-compatible boolean spellings spec §6.4
// names explicitly ("true"/"1"/"yes", "false"/"0"/"no"), case-insensitive.
func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		b = true
	case "false", "0", "no":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}
