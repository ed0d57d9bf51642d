package eft

import (
	"github.com/pkg/errors"
)

// EftFile is the top-level result of parsing an ANSI/NIST-ITL (EFT)
// transmission file.
type EftFile struct {
	Type1        TagMap
	Type2        *Type2
	Type4Records []*Type4
	FileSize     int
}

// tagCNT is the Type-1 field ("1.03") holding the content manifest.
const tagCNT = "1.03"

// Parse decodes an EFT byte sequence into an EftFile, or fails with a
// ParseError identifying the offset and, where applicable, the ANSI/NIST
// record type responsible.
func Parse(data []byte, opts ...Option) (*EftFile, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	o.debugf("parsing EFT file", "bytes", len(data))

	t1, err := readAsciiRecord(data, 0, 1)
	if err != nil {
		return nil, err
	}

	cntRaw, ok := t1.get(tagCNT)
	if !ok {
		off := 0
		return nil, parseErrRecord("Parse", &off, 1, errors.New("missing CNT field 1.03"))
	}
	entries, err := parseCNT(cntRaw)
	if err != nil {
		off := 0
		return nil, parseErrRecord("Parse", &off, 1, err)
	}
	o.debugf("parsed CNT manifest", "entries", len(entries))

	offset := t1.end
	file := &EftFile{
		Type1:    t1.toTagMap(),
		FileSize: len(data),
	}

	for _, e := range entries {
		switch e.recordType {
		case 2:
			t2, err := readAsciiRecord(data, offset, 2)
			if err != nil {
				return nil, err
			}
			file.Type2 = shapeType2(t2.fields)
			offset = t2.end
			o.debugf("parsed Type-2 record", "offset", offset)

		case 4:
			rec, next, err := readType4(data, offset, e.idc)
			if err != nil {
				return nil, err
			}
			file.Type4Records = append(file.Type4Records, rec)
			offset = next
			o.debugf("parsed Type-4 record", "finger", rec.FingerPosition, "offset", offset)

		default:
			off := offset
			rt := e.recordType
			return nil, parseErrRecord("Parse", &off, rt,
				errors.Errorf("Unsupported record type %d", rt))
		}
	}

	return file, nil
}
