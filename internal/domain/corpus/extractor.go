// Package corpus loads the reference side of a reconciliation when it
// arrives as a paginated document instead of a table. Extraction is
// best effort: pages without a text layer contribute nothing, and a
// document with no extractable text at all is a recoverable condition
// for the caller, never a crash.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/parser"
)

// ErrNoText indicates a document with no text layer (e.g. scanned images).
var ErrNoText = errors.New("document has no extractable text")

// ExtractText concatenates the text of every page of a PDF.
func ExtractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or damaged page; keep going.
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}

// Column names of datasets recovered from document text.
const (
	DocumentHeader = "Documento"
	NameHeader     = "Nome"
)

// docToken matches document-number-looking runs: digits with optional
// separators and masking asterisks, at least three characters.
var docToken = regexp.MustCompile(`[\d.\-*]{3,}`)

// columnSplit breaks list-style lines laid out with wide gaps.
var columnSplit = regexp.MustCompile(`\s{2,}`)

// ExtractTable recovers (document, name) rows from a PDF so a
// result-list document can also feed the structured route.
func ExtractTable(data []byte) (*parser.Dataset, error) {
	text, err := ExtractText(data)
	if err != nil {
		return nil, err
	}
	return TableFromText(text), nil
}

// TableFromText scans document text line by line. Lines carrying
// document-number tokens yield (document, name) pairs from the text
// between consecutive tokens; lines without them are treated as
// name-only listings split on column gaps. Duplicate rows collapse.
func TableFromText(text string) *parser.Dataset {
	ds := &parser.Dataset{Headers: []string{DocumentHeader, NameHeader}}
	seen := make(map[string]bool)

	add := func(doc, name string) {
		name = strings.TrimSpace(name)
		if len(name) <= 3 {
			return
		}
		key := doc + "\x00" + name
		if seen[key] {
			return
		}
		seen[key] = true
		ds.Rows = append(ds.Rows, parser.Record{DocumentHeader: doc, NameHeader: name})
	}

	for _, line := range strings.Split(text, "\n") {
		tokens := docToken.FindAllStringIndex(line, -1)
		if len(tokens) == 0 {
			// Page numbers and headers aside, a bare line is a column
			// of names.
			clean := docToken.ReplaceAllString(line, "")
			for _, name := range columnSplit.Split(clean, -1) {
				if len(strings.TrimSpace(name)) > 4 && !strings.Contains(name, "Página") {
					add("", name)
				}
			}
			continue
		}

		for i, tok := range tokens {
			end := len(line)
			if i+1 < len(tokens) {
				end = tokens[i+1][0]
			}
			add(strings.TrimSpace(line[tok[0]:tok[1]]), line[tok[1]:end])
		}
	}
	return ds
}
