package wsq

import "github.com/pkg/errors"

// Marker values, all 16 bits with high byte 0xFF, per spec.md §4.2.
const (
	markerSOI = 0xFFA0 // Start Of Image
	markerEOI = 0xFFA1 // End Of Image
	markerSOF = 0xFFA2 // Start Of Frame
	markerSOB = 0xFFA3 // Start Of Block
	markerDTT = 0xFFA4 // Define Transform Table
	markerDQT = 0xFFA5 // Define Quantization Table
	markerDHT = 0xFFA6 // Define Huffman Table
	markerCOM = 0xFFA8 // Comment
)

// markerContext identifies which point in the decode state machine a
// marker is being read at, and therefore which markers are legal there.
type markerContext int

const (
	ctxSOI       markerContext = iota // expecting exactly SOI
	ctxTblsNSOF                       // pre-frame: tables, SOF, COM or EOI
	ctxTblsNSOB                       // pre-block: tables, SOB, COM or EOI
)

func (c markerContext) allowed() []uint16 {
	switch c {
	case ctxSOI:
		return []uint16{markerSOI}
	case ctxTblsNSOF:
		return []uint16{markerDTT, markerDQT, markerDHT, markerSOF, markerCOM, markerEOI}
	case ctxTblsNSOB:
		return []uint16{markerDTT, markerDQT, markerDHT, markerSOB, markerCOM, markerEOI}
	default:
		return nil
	}
}

func (c markerContext) name() string {
	switch c {
	case ctxSOI:
		return "SOI"
	case ctxTblsNSOF:
		return "tables-or-SOF"
	case ctxTblsNSOB:
		return "tables-or-SOB"
	default:
		return "unknown"
	}
}

// readMarker reads the next 16-bit marker from r and fails unless it is one
// of the markers legal in context ctx.
func readMarker(r *bitReader, ctx markerContext) (uint16, error) {
	m, err := r.takeMarker()
	if err != nil {
		return 0, err
	}
	for _, want := range ctx.allowed() {
		if m == want {
			return m, nil
		}
	}
	return 0, decodeErr("readMarker", r.offset(),
		errors.Errorf("No SOF, Table, or comment: unexpected marker 0x%04X in context %s", m, ctx.name()))
}
