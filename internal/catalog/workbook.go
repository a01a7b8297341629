// Package catalog imports courses and lessons from a spreadsheet.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column order of the catalog sheet. The first row is a header.
const (
	colTitle = iota
	colDescription
	colPrice
	colDuration
	colLecturer
	colImage
	colLessons
)

const lessonSeparator = "|"

// Entry is one course row of the catalog.
type Entry struct {
	Row              int
	Title            string
	Description      string
	PriceCents       int64
	Duration         uint
	LecturerUsername string
	ImageFile        string
	Lessons          []string
}

// SkippedRow is a row left out of the import and why.
type SkippedRow struct {
	Row    int
	Reason string
}

type ParseResult struct {
	Entries []Entry
	Skipped []SkippedRow
}

// ReadWorkbook parses the first sheet of the XLSX file at path.
func ReadWorkbook(path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return parseFile(f)
}

// ParseWorkbook parses the first sheet of an XLSX document.
func ParseWorkbook(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return parseFile(f)
}

func parseFile(f *excelize.File) (*ParseResult, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no data found in XLSX file")
	}
	return parseRows(rows), nil
}

func parseRows(rows [][]string) *ParseResult {
	result := &ParseResult{}
	seen := make(map[string]bool)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNumber := i + 1

		entry, reason := parseRow(row)
		if reason == "" {
			key := strings.ToLower(entry.Title) + "|" + strings.ToLower(entry.LecturerUsername)
			if seen[key] {
				reason = "duplicate course"
			}
			seen[key] = true
		}
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNumber, Reason: reason})
			continue
		}

		entry.Row = rowNumber
		result.Entries = append(result.Entries, entry)
	}
	return result
}

func parseRow(row []string) (Entry, string) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	entry := Entry{
		Title:            cell(colTitle),
		Description:      cell(colDescription),
		LecturerUsername: cell(colLecturer),
		ImageFile:        cell(colImage),
	}
	if entry.Title == "" {
		return entry, "missing title"
	}
	if entry.LecturerUsername == "" {
		return entry, "missing lecturer"
	}

	price, err := ParseCents(cell(colPrice))
	if err != nil {
		return entry, "invalid price"
	}
	entry.PriceCents = price

	if raw := cell(colDuration); raw != "" {
		hours, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return entry, "invalid duration"
		}
		entry.Duration = uint(hours)
	}

	for _, title := range strings.Split(cell(colLessons), lessonSeparator) {
		if title = strings.TrimSpace(title); title != "" {
			entry.Lessons = append(entry.Lessons, title)
		}
	}
	return entry, ""
}

// ParseCents reads a non-negative decimal amount with at most two fraction digits.
func ParseCents(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty amount")
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || strings.HasPrefix(whole, "+") {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	var cents int64
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || strings.HasPrefix(frac, "-") || strings.HasPrefix(frac, "+") {
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
	}
	return units*100 + cents, nil
}
