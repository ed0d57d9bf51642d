// Package eft decodes ANSI/NIST-ITL biometric transmission files (EFT): a
// mixed text/binary container whose Type-1 and Type-2 records are
// delimited ASCII and whose Type-4 records are fixed-width binary frames,
// linked together by the Type-1 CNT (content manifest) field.
package eft

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ANSI/NIST-ITL separator bytes used throughout Type-1 and Type-2 records.
const (
	FS = 0x1C // field separator: terminates a logical record
	GS = 0x1D // group separator: separates tag:value segments
	RS = 0x1E // record separator: separates CNT subfields
	US = 0x1F // unit separator: separates values within a CNT subfield
)

// readU16 reads a big-endian uint16 at offset off in buf, failing if the
// read would run past the end of buf.
func readU16(buf []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, errors.Errorf("readU16: out of bounds at offset %d (len %d)", off, len(buf))
	}
	return binary.BigEndian.Uint16(buf[off : off+2]), nil
}

// readU32 reads a big-endian uint32 at offset off in buf, failing if the
// read would run past the end of buf.
func readU32(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, errors.Errorf("readU32: out of bounds at offset %d (len %d)", off, len(buf))
	}
	return binary.BigEndian.Uint32(buf[off : off+4]), nil
}

// indexByte returns the offset of the first occurrence of b in buf at or
// after start, or -1 if not found.
func indexByte(buf []byte, start int, b byte) int {
	for i := start; i < len(buf); i++ {
		if buf[i] == b {
			return i
		}
	}
	return -1
}
