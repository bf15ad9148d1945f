// Package parser loads candidate and reference rosters from CSV and
// XLSX files into a uniform dataset of named string fields.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/sniffer"
)

// ErrUnsupportedFormat indicates a file extension the loader cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// ErrEmptyDataset indicates a file with no header row.
var ErrEmptyDataset = errors.New("dataset has no header row")

// Record is one roster row, keyed by header name. Missing cells read as "".
type Record map[string]string

// Dataset is an ordered sequence of records sharing one header set.
type Dataset struct {
	Headers []string
	Rows    []Record
}

// Load parses data according to the file extension: .csv goes through
// the delimiter-tolerant CSV path, .xlsx/.xlsm through excelize.
func Load(data []byte, filename string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ParseCSV(data)
	case ".xlsx", ".xlsm":
		return ParseExcel(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ParseCSV parses character-delimited data. It starts from the sniffed
// delimiter and retries with the alternate convention (comma vs
// semicolon) when parsing fails or collapses into a single column.
func ParseCSV(data []byte) (*Dataset, error) {
	delim := sniffer.DetectDelimiter(data)

	ds, err := parseCSVWith(data, delim)
	if err == nil && len(ds.Headers) > 1 {
		return ds, nil
	}

	alternate := ';'
	if delim == ';' {
		alternate = ','
	}
	retry, retryErr := parseCSVWith(data, alternate)
	if retryErr == nil && (err != nil || len(retry.Headers) > len(ds.Headers)) {
		return retry, nil
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func parseCSVWith(data []byte, delim rune) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Headers: headers}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		ds.Rows = append(ds.Rows, makeRecord(headers, record))
	}
	return ds, nil
}

// readHeaders returns the first non-blank record, trimmed.
func readHeaders(r *csv.Reader) ([]string, error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil, ErrEmptyDataset
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		if isBlank(record) {
			continue
		}
		headers := make([]string, len(record))
		for i, h := range record {
			headers[i] = strings.TrimSpace(h)
		}
		return headers, nil
	}
}

func makeRecord(headers, values []string) Record {
	rec := make(Record, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(values) {
			rec[h] = strings.TrimSpace(values[i])
		} else {
			rec[h] = ""
		}
	}
	return rec
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
