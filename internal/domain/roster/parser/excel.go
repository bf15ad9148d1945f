package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseExcel reads the first sheet of an XLSX workbook. The first
// non-blank row is the header; every following row becomes a record.
func ParseExcel(data []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyDataset
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	start := -1
	for i, row := range rows {
		if !isBlank(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrEmptyDataset
	}

	headers := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		headers[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Headers: headers}
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		ds.Rows = append(ds.Rows, makeRecord(headers, row))
	}
	return ds, nil
}
