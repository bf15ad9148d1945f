// Package normalize provides the canonical text and document forms used
// by the reconciliation engine. All functions are pure and stateless so
// they can be unit-tested in isolation.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes to NFD, drops combining marks and recomposes,
// so "José" becomes "Jose".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text folds a name into its canonical comparable form: accents removed,
// uppercased, runs of whitespace (including line breaks) collapsed to a
// single space, leading/trailing space trimmed. Empty input yields "".
// Idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw
		// string so comparison still degrades gracefully.
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// Digits strips every non-digit character from a document value.
// Empty or absent input yields "".
func Digits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fragmentWidths mirrors the CPF display grouping: 111.222.333-44.
var fragmentWidths = []int{3, 3, 3, 2}

// Fragments derives the fixed-width digit groups of an 11-digit document
// number, used for partial corroboration when one side is masked or
// truncated. A value with fewer than 11 digits yields nil: the document
// is unusable as evidence, which is a valid state, not an error.
func Fragments(s string) []string {
	digits := Digits(s)
	if len(digits) < 11 {
		return nil
	}
	frags := make([]string, 0, len(fragmentWidths))
	offset := 0
	for _, w := range fragmentWidths {
		frags = append(frags, digits[offset:offset+w])
		offset += w
	}
	return frags
}
