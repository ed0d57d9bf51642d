package eft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/romainwurtz/nist-fingerprint/errs"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var heightPattern = regexp.MustCompile(`^\d{3}$`)

// FormatHeight renders a raw "2.027" height code such as "511" as
// F'II" (5'11"). Non-numeric, too-short, or longer-than-3-digit inputs
// (and the empty string) pass through unchanged, since only the 3-digit
// "FII" encoding is rendered by this helper.
func FormatHeight(raw string) string {
	if !heightPattern.MatchString(raw) {
		return raw
	}
	return raw[0:1] + "'" + raw[1:3] + "\""
}

// FormatDate renders a Date as "<Month> <day>, <year>". A nil date, or one
// whose month falls outside 1..12, renders "Unknown" in the month slot.
func FormatDate(d *Date) string {
	if d == nil {
		return "Unknown"
	}
	month := "Unknown"
	if d.Month >= 1 && d.Month <= 12 {
		month = monthNames[d.Month-1]
	}
	return fmt.Sprintf("%s %d, %d", month, d.Day, d.Year)
}

// ResolveFinger accepts a nil pointer (returning nil), a decimal string
// "1".."14", or a case-insensitive alias such as "right_thumb",
// "Right-Thumb" or "RIGHT THUMB" (hyphens and spaces are normalized to
// underscores). Any other input fails with a ValidationError.
func ResolveFinger(input *string) (*int, error) {
	if input == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*input)

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 14 {
			return nil, errs.NewValidation("ResolveFinger", errors.Errorf("finger position %d out of range", n))
		}
		return &n, nil
	}

	normalized := slugify(s, '_')
	if pos, ok := fingerAliases[normalized]; ok {
		return &pos, nil
	}
	return nil, errs.NewValidation("ResolveFinger", errors.Errorf("unknown finger designation %q", s))
}

// FilterRecords returns all of records when selector is empty, otherwise
// resolves selector to a finger position and returns only the records whose
// FingerPosition matches. It fails with a ValidationError if selector does
// not resolve, or if it resolves but no record matches.
func FilterRecords(records []*Type4, selector string) ([]*Type4, error) {
	if selector == "" {
		return records, nil
	}
	pos, err := ResolveFinger(&selector)
	if err != nil {
		return nil, err
	}

	var out []*Type4
	for _, r := range records {
		if pos != nil && r.FingerPosition == *pos {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, errs.NewValidation("FilterRecords", errors.Errorf("no record matches finger designation %q", selector))
	}
	return out, nil
}

// ExportFilename builds a filename of the shape "<pos padded to 2>-<slug>.
// <format>" for a given finger position, falling back to "finger-<pos>" for
// unrecognized positions. format defaults to "tiff" when empty.
func ExportFilename(pos int, format string) string {
	if format == "" {
		format = "tiff"
	}
	name, ok := fingerNames[pos]
	slug := "finger-" + strconv.Itoa(pos)
	if ok {
		slug = slugify(name, '-')
	}
	return fmt.Sprintf("%02d-%s.%s", pos, slug, format)
}
