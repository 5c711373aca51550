/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and Update).

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/tbcdecode/errs"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidateDefaults(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:        dl,
		Decoder:       defaultDecoder,
		ChromaGain:    defaultChromaGain,
		BinThreshold:  defaultBinThreshold,
		PaddingAmount: defaultPaddingAmount,
		PixelFormat:   defaultPixelFormat,
	}

	got := Config{Logger: dl}
	if err := (&got).Validate(); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %+v\ngot: %+v", want, got)
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"InputPath":     "in.tbc",
		"OutputPath":    "out.y4m",
		"Decoder":       "transformpal2d",
		"StartFrame":    "10",
		"EndFrame":      "20",
		"Threads":       "4",
		"ChromaGain":    "1.5",
		"ChromaPhase":   "2.0",
		"LumaNRLevel":   "0.5",
		"ChromaNRLevel": "0.25",
		"FilterChroma":  "true",
		"SimplePAL":     "false",
		"BinThreshold":  "0.3",
		"PaddingAmount": "16",
		"PixelFormat":   "rgb48",
		"OutputY4M":     "true",
	}

	want := Config{
		InputPath:     "in.tbc",
		OutputPath:    "out.y4m",
		Decoder:       DecoderTransformPAL2D,
		StartFrame:    10,
		EndFrame:      20,
		Threads:       4,
		ChromaGain:    1.5,
		ChromaPhase:   2.0,
		LumaNRLevel:   0.5,
		ChromaNRLevel: 0.25,
		FilterChroma:  true,
		SimplePAL:     false,
		BinThreshold:  0.3,
		PaddingAmount: 16,
		PixelFormat:   OutputRGB48,
		OutputY4M:     true,
	}

	got := Config{}
	if err := got.Update(updateMap); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %+v\ngot: %+v", want, got)
	}
}

func TestUpdateRejectsUnknownParameter(t *testing.T) {
	got := Config{}
	err := got.Update(map[string]string{"NotARealParam": "1"})
	if err == nil {
		t.Fatal("expected an error for an unknown configuration parameter")
	}
}

// TestRequireOutputPathStatus checks that an empty OutputPath produces the
// exact trigger status named by spec §8 scenario S6.
func TestRequireOutputPathStatus(t *testing.T) {
	c := &Config{}
	err := c.RequireOutputPath()
	if err == nil {
		t.Fatal("expected an error for an unset output path")
	}

	status, success := errs.Status(err)
	if success {
		t.Fatal("expected success = false")
	}
	const want = "Error: No output path specified"
	if status != want {
		t.Errorf("status = %q, want %q", status, want)
	}

	c.OutputPath = "out.y4m"
	if err := c.RequireOutputPath(); err != nil {
		t.Fatalf("did not expect error with OutputPath set: %v", err)
	}
}

func TestParseBoolAcceptsConfigFileSpellings(t *testing.T) {
	dl := &dumbLogger{}
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"true", true}, {"1", true}, {"yes", true}, {"TRUE", true},
		{"false", false}, {"0", false}, {"no", false},
	} {
		c := &Config{Logger: dl}
		if got := parseBool("Test", tc.in, c); got != tc.want {
			t.Errorf("parseBool(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
