package wsq

// floatsToBytes applies spec.md §4.7: p = f*r_scale + m_shift + 0.5, clamped
// to [0,255] and truncated to an integer pixel.
func floatsToBytes(raster []float64, mShift, rScale float64) []byte {
	out := make([]byte, len(raster))
	for i, f := range raster {
		p := f*rScale + mShift + 0.5
		switch {
		case p < 0:
			p = 0
		case p > 255:
			p = 255
		}
		out[i] = byte(p)
	}
	return out
}
