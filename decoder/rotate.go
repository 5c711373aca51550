package decoder

import "math"

// RotateUV scales (u, v) by gain and rotates it phaseDegrees about the UV
// origin, as the final step of both the PALColour (C6) and NTSC comb (C8)
// chroma pipelines before the result is written to the component frame.
func RotateUV(u, v, gain, phaseDegrees float64) (float64, float64) {
	u *= gain
	v *= gain

	if phaseDegrees == 0 {
		return u, v
	}

	rad := phaseDegrees * math.Pi / 180
	s, c := math.Sincos(rad)
	return u*c - v*s, u*s + v*c
}
