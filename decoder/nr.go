package decoder

import "github.com/ausocean/tbcdecode/dsp"

// ApplyNR implements the shared luma/chroma noise-reduction pass used by
// the mono (C5) and NTSC comb (C8) kernels: a band-limited high-pass FIR
// extracts the noise estimate, which is cored to [-L*r, +L*r] before being
// subtracted from the input, where r = ireRange/100 and L is the user NR
// level in IRE. levelIRE <= 0 disables the pass (out is left equal to in).
func ApplyNR(in []float64, out []float64, filt dsp.FIR, levelIRE, ireRange float64) {
	if levelIRE <= 0 {
		copy(out, in)
		return
	}

	limit := levelIRE * (ireRange / 100)

	hp := make([]float64, len(in))
	filt.Apply(in, hp)

	for i, v := range hp {
		if v > limit {
			v = limit
		} else if v < -limit {
			v = -limit
		}
		out[i] = in[i] - v
	}
}
