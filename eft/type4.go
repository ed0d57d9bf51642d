package eft

import "github.com/pkg/errors"

// Type4 is one Type-4 high-resolution grayscale fingerprint image record.
type Type4 struct {
	Length         int
	IDC            int
	ImpressionType int
	FingerPosition int
	ISR            int
	Width          int // HLL
	Height         int // VLL
	Compression    int
	ImageData      []byte // aliases the input buffer until decoded

	ImpressionName   string
	FingerName       string
	CompressionName  string
	PPI              int
}

// readType4 parses a Type-4 binary record starting at offset o in buf,
// cross-checking its declared idc against the CNT entry that announced it.
// It returns the record and the offset of the byte following the record.
func readType4(buf []byte, o int, wantIDC int) (*Type4, int, error) {
	const headerSize = 18

	if o+headerSize > len(buf) {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4,
			errors.New("Type-4 header runs past end of buffer"))
	}

	length, err := readU32(buf, o)
	if err != nil {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4, err)
	}
	if length < headerSize {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4,
			errors.New("Type-4 record smaller than header"))
	}
	if o+int(length) > len(buf) {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4,
			errors.New("Type-4 record exceeds buffer"))
	}

	idc := int(buf[o+4])
	if idc != wantIDC {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4, errors.New("IDC mismatch"))
	}

	rec := &Type4{
		Length:         int(length),
		IDC:            idc,
		ImpressionType: int(buf[o+5]),
		FingerPosition: int(buf[o+6]), // first byte of the 6-byte FGP field
		ISR:            int(buf[o+12]),
	}

	hll, err := readU16(buf, o+13)
	if err != nil {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4, err)
	}
	vll, err := readU16(buf, o+15)
	if err != nil {
		off := o
		return nil, 0, parseErrRecord("readType4", &off, 4, err)
	}
	rec.Width = int(hll)
	rec.Height = int(vll)
	rec.Compression = int(buf[o+17])
	rec.ImageData = buf[o+headerSize : o+int(length)]

	if rec.ISR == 0 {
		rec.PPI = 500
	} else {
		rec.PPI = rec.ISR
	}

	rec.ImpressionName = impressionName(rec.ImpressionType)
	rec.FingerName = FingerName(rec.FingerPosition)
	rec.CompressionName = compressionName(rec.Compression)

	return rec, o + int(length), nil
}
