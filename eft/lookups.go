package eft

import (
	"fmt"
	"strings"
)

// fingerNames maps a Type-4 finger-position (FGP) code to its display name,
// per the ANSI/NIST-ITL finger position code table. Only byte 0 of the
// 6-byte FGP field is modeled; see spec.md §9.
var fingerNames = map[int]string{
	1:  "Right Thumb",
	2:  "Right Index",
	3:  "Right Middle",
	4:  "Right Ring",
	5:  "Right Little",
	6:  "Left Thumb",
	7:  "Left Index",
	8:  "Left Middle",
	9:  "Left Ring",
	10: "Left Little",
	11: "Plain Right Thumb",
	12: "Plain Left Thumb",
	13: "Plain Right Four",
	14: "Plain Left Four",
}

// impressionNames maps a Type-4 impression-type code to its display name.
var impressionNames = map[int]string{
	0: "Live-scan rolled",
	1: "Live-scan plain",
	2: "Nonlive-scan rolled",
	3: "Nonlive-scan plain",
	4: "Latent impression",
	8: "Live-scan vertical swipe",
}

// compressionNames maps a Type-4 compression-algorithm code to its display
// name.
var compressionNames = map[int]string{
	0: "Uncompressed",
	1: "WSQ",
}

// FingerName returns the display name for a finger-position code, falling
// back to "Unknown (N)" for unrecognized codes. It never fails: unknown
// codes are a labeling miss, not a parse error.
func FingerName(pos int) string {
	if n, ok := fingerNames[pos]; ok {
		return n
	}
	return unknownLabel(pos)
}

func impressionName(code int) string {
	if n, ok := impressionNames[code]; ok {
		return n
	}
	return unknownLabel(code)
}

func compressionName(code int) string {
	if n, ok := compressionNames[code]; ok {
		return n
	}
	return unknownLabel(code)
}

func unknownLabel(code int) string {
	return fmt.Sprintf("Unknown (%d)", code)
}

// fingerAliases maps a normalized (lowercase, snake_case) alias to its
// finger-position code, built once from fingerNames.
var fingerAliases = buildFingerAliases()

func buildFingerAliases() map[string]int {
	m := make(map[string]int, len(fingerNames))
	for pos, name := range fingerNames {
		m[slugify(name, '_')] = pos
	}
	return m
}

// slugify lowercases s and replaces runs of whitespace/hyphen with sep.
func slugify(s string, sep rune) string {
	var b strings.Builder
	prevSep := false
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '-' || r == '_' {
			if !prevSep && b.Len() > 0 {
				b.WriteRune(sep)
				prevSep = true
			}
			continue
		}
		b.WriteRune(r)
		prevSep = false
	}
	return strings.TrimRight(b.String(), string(sep))
}
