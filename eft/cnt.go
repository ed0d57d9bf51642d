package eft

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// cntEntry is one (record type, idc) pair from the Type-1 CNT field.
type cntEntry struct {
	recordType int
	idc        int
}

// parseCNT decodes the "1.03" field into an ordered list of (record type,
// idc) entries. Subfield 0 (which describes the Type-1 record itself and
// the total record count) is discarded without being validated against the
// number of records actually present in the file, per spec.md §9.
func parseCNT(raw string) ([]cntEntry, error) {
	subfields := strings.Split(raw, string(rune(RS)))
	if len(subfields) == 0 {
		return nil, errors.New("Malformed CNT")
	}
	// subfields[0] describes the Type-1 record itself; discard it.
	rest := subfields[1:]

	entries := make([]cntEntry, 0, len(rest))
	for _, sf := range rest {
		if sf == "" {
			continue
		}
		parts := strings.Split(sf, string(rune(US)))
		if len(parts) != 2 {
			return nil, errors.New("Malformed CNT")
		}
		rt, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, errors.Wrap(err, "Malformed CNT")
		}
		idc, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.Wrap(err, "Malformed CNT")
		}
		entries = append(entries, cntEntry{recordType: rt, idc: idc})
	}
	return entries, nil
}
