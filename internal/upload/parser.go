// Package upload parses trade spreadsheets and imports their rows into
// the journal.
package upload

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// keyColumns must all be present on a row for it to count as the header.
var keyColumns = []string{"name", "setup", "type", "market", "kite", "position"}

// ErrNoHeaderRow is returned when no row carries the full key-column set.
var ErrNoHeaderRow = errors.New("could not find a valid header row in the spreadsheet")

// RawRow is one data row keyed by normalized header names. Line is the
// 1-based spreadsheet row number, kept for error reporting.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed cell under a normalized header name.
func (r RawRow) Get(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// Parse reads the first sheet of an xlsx workbook. The header row is the
// first row containing every key column (case-insensitive); headers are
// lowercased with spaces collapsed to underscores, and every following
// row becomes a RawRow.
func Parse(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	headerIndex := -1
	for i, row := range rows {
		if hasKeyColumns(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, ErrNoHeaderRow
	}

	headers := make([]string, len(rows[headerIndex]))
	for i, h := range rows[headerIndex] {
		headers[i] = normalizeHeader(h)
	}

	var out []RawRow
	for i, row := range rows[headerIndex+1:] {
		fields := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(row) {
				fields[header] = row[j]
			} else {
				fields[header] = ""
			}
		}
		out = append(out, RawRow{Line: headerIndex + i + 2, Fields: fields})
	}
	return out, nil
}

func hasKeyColumns(row []string) bool {
	present := make(map[string]bool, len(row))
	for _, cell := range row {
		present[strings.ToLower(strings.TrimSpace(cell))] = true
	}
	for _, key := range keyColumns {
		if !present[key] {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// dateLayouts are the string formats accepted for buy and sell dates.
// Spreadsheet cells may also carry raw Excel serial numbers.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/2006",
	"02-Jan-06",
	time.RFC3339,
}

// parseDate converts a cell into a date. Numeric cells are Excel serial
// days (epoch 1899-12-30). The boolean reports success.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		secs := (serial - 25569) * 86400
		return time.Unix(int64(secs), 0).UTC(), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloat reads a number that may carry a currency prefix or
// thousands separators. Blank or unparseable cells come back as 0.
func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "₹")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// parsePercent normalizes a percent cell to percent units: values below 1
// are fractions and scale up by 100, everything else is already percent.
func parsePercent(value string) float64 {
	f := parseFloat(value)
	if f != 0 && f < 1 {
		return f * 100
	}
	return f
}
