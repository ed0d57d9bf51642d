package eft

import (
	"strings"

	"github.com/pkg/errors"
)

// asciiRecord is the result of splitting one GS-delimited, FS-terminated
// ANSI/NIST record into its tag:value segments.
type asciiRecord struct {
	fields map[string]string
	// order preserves the sequence tags were encountered in, since spec.md's
	// EftFile.type1 is an ordered mapping.
	order []string
	// end is the offset one past the record's terminating FS byte.
	end int
}

func newAsciiRecord() *asciiRecord {
	return &asciiRecord{fields: make(map[string]string)}
}

func (r *asciiRecord) set(tag, value string) {
	if _, ok := r.fields[tag]; !ok {
		r.order = append(r.order, tag)
	}
	r.fields[tag] = value
}

func (r *asciiRecord) get(tag string) (string, bool) {
	v, ok := r.fields[tag]
	return v, ok
}

// readAsciiRecord splits one GS-delimited, FS-terminated ANSI/NIST record
// starting at offset start. recordType is used only for error reporting.
//
// The record spans [start, fsPos] inclusive of the terminating FS byte.
// Content (FS excluded) is split on GS; each segment's first ':' separates
// tag from value, and segments without a colon are silently skipped. If a
// "T.01" tag is present (e.g. "1.01", "2.01") its value is the declared
// record length and is used to compute the returned offset instead of
// fsPos+1; otherwise the fallback is fsPos+1.
func readAsciiRecord(buf []byte, start, recordType int) (*asciiRecord, error) {
	fsPos := indexByte(buf, start, FS)
	if fsPos < 0 {
		off := start
		return nil, parseErrRecord("readAsciiRecord", &off, recordType, errors.New("No FS terminator"))
	}

	content := string(buf[start:fsPos])
	rec := newAsciiRecord()
	for _, seg := range strings.Split(content, string(rune(GS))) {
		idx := strings.IndexByte(seg, ':')
		if idx < 0 {
			continue
		}
		tag := seg[:idx]
		value := seg[idx+1:]
		rec.set(tag, value)
	}

	lengthTag := lengthTagFor(recordType)
	if v, ok := rec.get(lengthTag); ok {
		n, err := parseInt(v)
		if err != nil {
			off := start
			return nil, parseErrRecord("readAsciiRecord", &off, recordType,
				errors.Wrapf(err, "malformed %s length field", lengthTag))
		}
		rec.end = start + n
	} else {
		rec.end = fsPos + 1
	}
	return rec, nil
}

// lengthTagFor returns the "T.01" tag (declared record length) for a given
// ANSI/NIST record type, e.g. "1.01" for type 1.
func lengthTagFor(recordType int) string {
	return itoa(recordType) + ".01"
}

// TagMap is an ordered tag-to-value mapping, preserving the sequence in
// which tags were encountered in an ANSI/NIST ASCII record.
type TagMap struct {
	order  []string
	values map[string]string
}

// Get returns the value for tag and whether it was present.
func (m TagMap) Get(tag string) (string, bool) {
	v, ok := m.values[tag]
	return v, ok
}

// Keys returns the tags in the order they were first encountered.
func (m TagMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len reports the number of distinct tags held.
func (m TagMap) Len() int { return len(m.order) }

func (r *asciiRecord) toTagMap() TagMap {
	return TagMap{order: r.order, values: r.fields}
}
