package wsq

import "github.com/pkg/errors"

// DecodedImage is the result of Decode: a width*height 8-bit grayscale
// pixel plane, row-major.
type DecodedImage struct {
	Width, Height int
	Pixels        []byte
}

// decodeState carries all per-call mutable state, allocated fresh on every
// Decode and discarded at return, per spec.md §3's lifecycle note: no
// package-level decode state is ever retained between calls.
type decodeState struct {
	dqt   *quantTable
	dht   [8]*huffTable
	dtt   *filterPair
	frame *frameHeader
}

// Decode parses a WSQ bitstream into a DecodedImage, per spec.md §4.2's
// top-level flow: SOI, pre-frame tables, SOF, subband tree construction,
// Huffman-driven unquantization, inverse wavelet synthesis, and finally
// float-to-byte conversion.
func Decode(data []byte, opts ...Option) (*DecodedImage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := newBitReader(data, 0)
	st := &decodeState{}

	if _, err := readMarker(r, ctxSOI); err != nil {
		return nil, decodeErr("Decode", r.offset(), errors.Wrap(err, "missing SOI"))
	}
	o.debugf("wsq: SOI", "offset", r.offset())

	if err := readPreFrameTables(r, st, &o); err != nil {
		return nil, err
	}
	if st.frame == nil {
		return nil, decodeErr("Decode", r.offset(), errors.New("SOF never appeared"))
	}
	if st.dqt == nil || st.dtt == nil {
		return nil, decodeErr("Decode", r.offset(), errors.New("frame reconstruction requires exactly one DQT and one DTT"))
	}

	width, height := st.frame.width, st.frame.height
	wtree, qtree := buildSubbandTrees(width, height)
	if len(qtree) != 64 {
		return nil, decodeErr("Decode", r.offset(), errors.Errorf("built %d quantization subbands, want 64", len(qtree)))
	}

	raster := make([]float64, width*height)
	cur := newUnquantizeCursor(qtree)

	// spec.md §4.4: an encoder may split its entropy-coded data across any
	// number of SOB blocks, each with its own huff_id; decoding continues
	// across all of them until the raster is full, not just the first one.
	sawBlock := false
	for !cur.done(width, height) {
		marker, err := readMarker(r, ctxTblsNSOB)
		if err != nil {
			return nil, err
		}
		switch marker {
		case markerEOI:
			if !sawBlock {
				return nil, decodeErr("Decode", r.offset(), errors.New("EOI before any SOB block"))
			}
			return nil, decodeErr("Decode", r.offset(),
				errors.Errorf("EOI with only %d of %d pixels decoded", cur.total, width*height))
		case markerSOB:
			sawBlock = true
			if _, err := r.readU16Direct(); err != nil { // block_size, advance only
				return nil, err
			}
			huffID, err := r.readByteDirect()
			if err != nil {
				return nil, err
			}
			ht := st.dht[huffID]
			if ht == nil {
				return nil, decodeErr("Decode", r.offset(), errors.Errorf("undefined Huffman table id %d", huffID))
			}
			table := buildCanonical(ht)

			if err := unquantizeBlock(r, table, st.dqt, raster, width, height, cur); err != nil {
				return nil, err
			}
		default:
			if err := dispatchTable(r, marker, st); err != nil {
				return nil, err
			}
		}
	}

	// Consume the terminating EOI now that every active subband is full.
	if m, err := readMarker(r, ctxTblsNSOB); err != nil {
		return nil, err
	} else if m != markerEOI {
		return nil, decodeErr("Decode", r.offset(), errors.Errorf("expected EOI, found marker 0x%04X", m))
	}

	g := &raster2D{data: raster, width: width, height: height}
	inverseWaveletSynthesis(g, wtree, st.dtt)

	pixels := floatsToBytes(g.data, st.frame.mShift, st.frame.rScale)
	if len(pixels) != width*height {
		return nil, decodeErr("Decode", r.offset(), errors.Errorf("decoded %d pixels, want %d", len(pixels), width*height))
	}

	o.debugf("wsq: decoded image", "width", width, "height", height)
	return &DecodedImage{Width: width, Height: height, Pixels: pixels}, nil
}

// readPreFrameTables loops over TBLS_N_SOF markers, dispatching table
// handlers, until SOF is found and parsed into st.frame.
func readPreFrameTables(r *bitReader, st *decodeState, o *options) error {
	for {
		marker, err := readMarker(r, ctxTblsNSOF)
		if err != nil {
			return err
		}
		if marker == markerSOF {
			fh, err := readSOF(r)
			if err != nil {
				return err
			}
			st.frame = fh
			o.debugf("wsq: SOF", "width", fh.width, "height", fh.height)
			return nil
		}
		if marker == markerEOI {
			return decodeErr("readPreFrameTables", r.offset(), errors.New("EOI before SOF"))
		}
		if err := dispatchTable(r, marker, st); err != nil {
			return err
		}
	}
}

// dispatchTable reads the body of a DTT/DQT/DHT/COM marker already
// consumed from r, updating st accordingly.
func dispatchTable(r *bitReader, marker uint16, st *decodeState) error {
	switch marker {
	case markerDTT:
		f, err := readDTT(r)
		if err != nil {
			return err
		}
		st.dtt = f
		return nil
	case markerDQT:
		q, err := readDQT(r)
		if err != nil {
			return err
		}
		st.dqt = q
		return nil
	case markerDHT:
		return readDHT(r, &st.dht)
	case markerCOM:
		return readCOM(r)
	default:
		return decodeErr("dispatchTable", r.offset(), errors.Errorf("unexpected marker 0x%04X", marker))
	}
}
