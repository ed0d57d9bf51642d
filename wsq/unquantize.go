package wsq

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// unquantizeCursor tracks progress unquantizing the qtree's active subbands
// across however many SOB blocks the bitstream carries. spec.md §4.4
// describes decoding as continuing, block after block, until the whole
// raster is filled; nothing in the bitstream states up front which
// subbands belong to which block, so the cursor simply resumes wherever
// the previous block's data left off.
type unquantizeCursor struct {
	qtree   []quantNode
	idx     int // index into qtree of the subband currently being filled
	written int // cells already written within qtree[idx]
	total   int // cells written across the whole raster so far
}

func newUnquantizeCursor(qtree []quantNode) *unquantizeCursor {
	return &unquantizeCursor{qtree: qtree}
}

// done reports whether every cell of every active subband has been filled.
func (cur *unquantizeCursor) done(width, height int) bool {
	return cur.total >= width*height
}

// unquantizeBlock decodes Huffman tokens from one SOB block's coded data
// into raster, using canonical table c, advancing cur across as many active
// subbands as the block's data covers (spec.md §4.5). It returns when the
// cursor reaches the end of the raster, or when the bitstream hits the next
// marker - that block's coded data is exhausted, which is the expected way
// a block ends, not a failure. The caller (Decode) reads the next marker
// and, if it is another SOB, calls unquantizeBlock again with that block's
// own Huffman table; the cursor itself carries the "which subband comes
// next" state across that boundary.
func unquantizeBlock(r *bitReader, c *canonicalHuffman, qt *quantTable, raster []float64, width, height int, cur *unquantizeCursor) error {
	for !cur.done(width, height) {
		if cur.idx >= len(cur.qtree) {
			return decodeErr("unquantizeBlock", r.offset(), errors.New("subband cursor ran past the last subband before the raster was filled"))
		}
		sb := cur.qtree[cur.idx]
		if sb.unused() {
			cur.idx++
			cur.written = 0
			continue
		}
		total := sb.lenx * sb.leny
		if qt.qBin[cur.idx] == 0 {
			// A zero q_bin subband contributes no Huffman-coded bits; its
			// cells stay at the raster's zero value but still count toward
			// the image being fully accounted for.
			cur.total += total - cur.written
			cur.idx++
			cur.written = 0
			continue
		}
		after, err := unquantizeSubband(r, c, raster, width, sb, qt.qBin[cur.idx], qt.zBin[cur.idx], qt.binCenter, cur.written)
		cur.total += after - cur.written
		cur.written = after
		if err != nil {
			return err
		}

		if cur.written >= total {
			cur.idx++
			cur.written = 0
			continue
		}
		// Ran into a marker before this subband was full: this block's
		// coded data is exhausted. Leave the cursor exactly where it is so
		// the next call (for the next SOB block) resumes mid-subband.
		return nil
	}
	return nil
}

// unquantizeSubband fills sb's cells from written..sb.lenx*sb.leny-1,
// consuming Huffman tokens (zero runs or literals) until either the
// rectangle is full or the bitstream runs into a marker. It returns the
// updated written count; reaching a marker before the rectangle is full is
// reported by a written count below sb.lenx*sb.leny with a nil error, not
// by the error itself, so callers can tell "block ended" from "bitstream
// corrupt".
func unquantizeSubband(r *bitReader, c *canonicalHuffman, raster []float64, width int, sb quantNode, qBin, zBin, binCenter float64, written int) (int, error) {
	total := sb.lenx * sb.leny

	for written < total {
		tok, err := decodeToken(r, c)
		if err != nil {
			if errors.Is(err, errMarkerHit) {
				return written, nil
			}
			return written, err
		}

		if tok.zeroRun > 0 {
			n := tok.zeroRun
			if written+n > total {
				n = total - written
			}
			written += n
			continue
		}

		row := written / sb.lenx
		col := written % sb.lenx
		x := sb.x + col
		y := sb.y + row
		raster[y*width+x] = unquantizeSample(tok.literal, qBin, zBin, binCenter)
		written++
	}
	return written, nil
}

// unquantizeSample applies spec.md §4.5's three-way dead-zone formula to a
// single quantized value s.
func unquantizeSample(s int32, qBin, zBin, binCenter float64) float64 {
	switch {
	case s == 0:
		return 0
	case s > 0:
		return qBin*(float64(s)-binCenter) + zBin/2
	default:
		return qBin*(float64(s)+binCenter) - zBin/2
	}
}

// subbandMeans is a small diagnostic helper computing the average
// reconstructed value per active subband, using gonum's floats package
// rather than a hand-rolled mean loop. No decode path or test calls it.
func subbandMeans(raster []float64, width int, qtree []quantNode) []float64 {
	means := make([]float64, 0, len(qtree))
	for _, sb := range qtree {
		if sb.unused() {
			means = append(means, 0)
			continue
		}
		vals := make([]float64, 0, sb.lenx*sb.leny)
		for y := sb.y; y < sb.y+sb.leny; y++ {
			vals = append(vals, raster[y*width+sb.x:y*width+sb.x+sb.lenx]...)
		}
		if len(vals) == 0 {
			means = append(means, 0)
			continue
		}
		means = append(means, floats.Sum(vals)/float64(len(vals)))
	}
	return means
}
