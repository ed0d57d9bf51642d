package wsq

import "github.com/pkg/errors"

// Table bodies (DTT/DQT/DHT/COM) are plain byte structures following their
// marker and are always read byte-aligned, so they are pulled directly out
// of the underlying buffer rather than through the bit cursor.

func (r *bitReader) readByteDirect() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, decodeErr("readByteDirect", r.pos, errUnexpectedEOD)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *bitReader) readU16Direct() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, decodeErr("readU16Direct", r.pos, errUnexpectedEOD)
	}
	v := uint16(r.buf[r.pos])<<8 | uint16(r.buf[r.pos+1])
	r.pos += 2
	return v, nil
}

func (r *bitReader) readU32Direct() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, decodeErr("readU32Direct", r.pos, errUnexpectedEOD)
	}
	v := uint32(r.buf[r.pos])<<24 | uint32(r.buf[r.pos+1])<<16 | uint32(r.buf[r.pos+2])<<8 | uint32(r.buf[r.pos+3])
	r.pos += 4
	return v, nil
}

// scaledValue reads a sign/scale/magnitude compact float as used by DTT:
// sign:u8, scale:u8, magnitude:u32BE -> sign ? -magnitude/10^scale : magnitude/10^scale.
func (r *bitReader) scaledValue() (float64, error) {
	sign, err := r.readByteDirect()
	if err != nil {
		return 0, err
	}
	scale, err := r.readByteDirect()
	if err != nil {
		return 0, err
	}
	mag, err := r.readU32Direct()
	if err != nil {
		return 0, err
	}
	v := float64(mag) / pow10(int(scale))
	if sign != 0 {
		v = -v
	}
	return v, nil
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// filterPair holds the lo-pass and hi-pass filter coefficient arrays
// decoded from a DTT table, fully mirror-expanded.
type filterPair struct {
	lo []float64
	hi []float64
}

// readDTT decodes a Define Transform Table body: a 16-bit table-size
// prefix, hisz/losz sizes, then the compact coefficients for the hi-pass
// filter followed by the lo-pass filter, each mirror-expanded to its full
// length.
func readDTT(r *bitReader) (*filterPair, error) {
	if _, err := r.readU16Direct(); err != nil { // table-size prefix, unused
		return nil, err
	}
	hisz, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	losz, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}

	hi, err := readMirroredFilter(r, int(hisz))
	if err != nil {
		return nil, errors.Wrap(err, "DTT hi-pass filter coefficients not defined")
	}
	lo, err := readMirroredFilter(r, int(losz))
	if err != nil {
		return nil, errors.Wrap(err, "DTT lo-pass filter coefficients not defined")
	}
	return &filterPair{lo: lo, hi: hi}, nil
}

// readMirroredFilter reads ceil(size/2) compact coefficients and
// mirror-expands them into a full filter of length size, per spec.md
// §4.2's DTT mirroring rule. With aSize = size/2: for an odd-length filter,
// compact value i lands at aSize+i (sign (-1)^i) and is reflected unchanged
// to aSize-i for i>0; for an even-length filter, compact value i lands at
// aSize+i (sign (-1)^i) with a negated reflected counterpart at aSize-1-i.
func readMirroredFilter(r *bitReader, size int) ([]float64, error) {
	if size <= 0 {
		return nil, nil
	}
	n := (size + 1) / 2
	compact := make([]float64, n)
	for i := range compact {
		v, err := r.scaledValue()
		if err != nil {
			return nil, err
		}
		compact[i] = v
	}

	out := make([]float64, size)
	aSize := size / 2

	if size%2 == 1 {
		for i, v := range compact {
			sign := 1.0
			if i%2 == 1 {
				sign = -1.0
			}
			out[aSize+i] = sign * v
			if i > 0 {
				out[aSize-i] = sign * v
			}
		}
	} else {
		evenBase := aSize - 1
		for i, v := range compact {
			sign := 1.0
			if i%2 == 1 {
				sign = -1.0
			}
			if evenBase+1+i < size {
				out[evenBase+1+i] = sign * v
			}
			if evenBase-i >= 0 {
				out[evenBase-i] = -sign * v
			}
		}
	}
	return out, nil
}

// quantTable holds the DQT-decoded per-subband quantization parameters.
type quantTable struct {
	binCenter float64
	qBin      [64]float64
	zBin      [64]float64
}

// readDQT decodes a Define Quantization Table body: scale/bin_center
// prefix followed by 64 (q_bin, z_bin) scaled-short pairs.
func readDQT(r *bitReader) (*quantTable, error) {
	scale, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	raw, err := r.readU16Direct()
	if err != nil {
		return nil, err
	}
	qt := &quantTable{binCenter: float64(raw) / pow10(int(scale))}

	for i := 0; i < 64; i++ {
		q, err := r.readScaledShort()
		if err != nil {
			return nil, err
		}
		z, err := r.readScaledShort()
		if err != nil {
			return nil, err
		}
		qt.qBin[i] = q
		qt.zBin[i] = z
	}
	return qt, nil
}

// readScaledShort reads a scale:u8 followed by a signed 16-bit value,
// returning value/10^scale. DQT's q_bin/z_bin entries use this shorter
// (no explicit sign byte, two's-complement) encoding, distinct from DTT's
// sign/scale/magnitude triples.
func (r *bitReader) readScaledShort() (float64, error) {
	scale, err := r.readByteDirect()
	if err != nil {
		return 0, err
	}
	raw, err := r.readU16Direct()
	if err != nil {
		return 0, err
	}
	return float64(int16(raw)) / pow10(int(scale)), nil
}

// huffTable is one canonical Huffman table as defined by a DHT sub-table.
type huffTable struct {
	bits   [17]int // huffbits[1..16], index 0 unused
	values []byte
}

// readDHT decodes a Define Huffman Table body, which may define multiple
// sub-tables within one declared block length. tables is indexed by
// table_id (0..7 per spec.md §3).
func readDHT(r *bitReader, tables *[8]*huffTable) error {
	blockLen, err := r.readU16Direct()
	if err != nil {
		return err
	}
	end := r.pos + int(blockLen) - 2

	for r.pos < end {
		id, err := r.readByteDirect()
		if err != nil {
			return err
		}
		if int(id) >= len(tables) {
			return decodeErr("readDHT", r.pos, errors.Errorf("undefined Huffman table id %d", id))
		}

		ht := &huffTable{}
		total := 0
		for l := 1; l <= 16; l++ {
			b, err := r.readByteDirect()
			if err != nil {
				return err
			}
			ht.bits[l] = int(b)
			total += int(b)
		}
		ht.values = make([]byte, total)
		for i := 0; i < total; i++ {
			v, err := r.readByteDirect()
			if err != nil {
				return err
			}
			ht.values[i] = v
		}
		tables[id] = ht
	}
	return nil
}

// readCOM consumes and discards a Comment table body.
func readCOM(r *bitReader) error {
	n, err := r.readU16Direct()
	if err != nil {
		return err
	}
	for i := 0; i < int(n)-2; i++ {
		if _, err := r.readByteDirect(); err != nil {
			return err
		}
	}
	return nil
}

// frameHeader holds the SOF-decoded frame parameters.
type frameHeader struct {
	black, white   byte
	width, height  int
	mShift, rScale float64
}

// readSOF decodes the Start Of Frame header, after its 16-bit table-size
// prefix: black:u8, white:u8, height:u16, width:u16, scale:u8,
// mShiftRaw:u16, scale:u8, rScaleRaw:u16, encoder:u8, software:u16.
func readSOF(r *bitReader) (*frameHeader, error) {
	if _, err := r.readU16Direct(); err != nil {
		return nil, err
	}
	black, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	white, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	height, err := r.readU16Direct()
	if err != nil {
		return nil, err
	}
	width, err := r.readU16Direct()
	if err != nil {
		return nil, err
	}
	mScale, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	mShiftRaw, err := r.readU16Direct()
	if err != nil {
		return nil, err
	}
	rScaleExp, err := r.readByteDirect()
	if err != nil {
		return nil, err
	}
	rScaleRaw, err := r.readU16Direct()
	if err != nil {
		return nil, err
	}
	if _, err := r.readByteDirect(); err != nil { // encoder, unused
		return nil, err
	}
	if _, err := r.readU16Direct(); err != nil { // software version, unused
		return nil, err
	}

	return &frameHeader{
		black:  black,
		white:  white,
		width:  int(width),
		height: int(height),
		mShift: float64(mShiftRaw) / pow10(int(mScale)),
		rScale: float64(rScaleRaw) / pow10(int(rScaleExp)),
	}, nil
}
