// Package sniffer guesses the shape of uploaded rosters: the field
// delimiter of character-delimited files and which columns carry the
// candidate name and document number.
package sniffer

import (
	"bytes"
	"strings"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile/normalize"
)

// Header keywords, matched accent- and case-insensitively (substring).
var (
	nameKeywords = []string{"nome", "name", "candidato", "aluno", "student"}
	docKeywords  = []string{"cpf", "doc", "inscricao", "codigo", "registro", "registration", "matricula"}
)

// DetectDelimiter inspects the first line of a sample and picks the
// delimiter with the most occurrences, defaulting to comma.
func DetectDelimiter(sample []byte) rune {
	line := sample
	if idx := bytes.IndexByte(sample, '\n'); idx >= 0 {
		line = sample[:idx]
	}

	best := ','
	bestCount := bytes.Count(line, []byte{','})
	for _, delim := range []byte{';', '\t'} {
		if count := bytes.Count(line, []byte{delim}); count > bestCount {
			best = rune(delim)
			bestCount = count
		}
	}
	return best
}

// NameColumn returns the header most likely to hold a person's name.
// It scans for known keywords and falls back to the first non-empty
// header, since rosters conventionally lead with the name.
func NameColumn(headers []string) (string, bool) {
	if col, ok := findByKeyword(headers, nameKeywords); ok {
		return col, true
	}
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			return h, true
		}
	}
	return "", false
}

// DocumentColumn returns the header most likely to hold a document
// number. There is no fallback: absence means the dataset cannot
// support document validation.
func DocumentColumn(headers []string) (string, bool) {
	return findByKeyword(headers, docKeywords)
}

func findByKeyword(headers []string, keywords []string) (string, bool) {
	for _, h := range headers {
		folded := strings.ToLower(normalize.Text(h))
		if folded == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(folded, kw) {
				return h, true
			}
		}
	}
	return "", false
}
