// Package importer parses Excel spreadsheets of news sources for bulk import.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/butlerian/directory/internal/models"
)

// sheetName is the worksheet sources are read from.
const sheetName = "Sources"

// columnMap holds the resolved 0-based column index for each known header.
// A value of -1 means the column is absent.
type columnMap struct {
	name    int
	feedURL int
	typ     int
	enabled int
}

// SourceRow represents a parsed row from the Excel spreadsheet.
type SourceRow struct {
	Row     int // Excel row number (for error reporting)
	Name    string
	FeedURL string
	Type    string
	Enabled bool
}

// ImportError represents a validation error for a specific row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParseExcelFile reads the Sources sheet and returns the parsed rows plus
// per-row validation errors. A file-level problem (missing sheet, missing
// required columns) is returned as an error instead.
func ParseExcelFile(r io.Reader) ([]SourceRow, []ImportError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q not found", sheetName)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	colMap := resolveColumns(rows[0])
	if err := validateRequiredColumns(colMap); err != nil {
		return nil, nil, err
	}

	var (
		parsed    []SourceRow
		rowErrors []ImportError
	)

	for i, cells := range rows[1:] {
		rowNum := i + 2 // 1-based, after header

		if isBlankRow(cells) {
			continue
		}

		row := SourceRow{
			Row:     rowNum,
			Name:    cellAt(cells, colMap.name),
			FeedURL: cellAt(cells, colMap.feedURL),
			Type:    cellAt(cells, colMap.typ),
			Enabled: parseBoolCell(cellAt(cells, colMap.enabled)),
		}

		if msg := ValidateRow(row); msg != "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Error: msg})
			continue
		}

		parsed = append(parsed, row)
	}

	return parsed, rowErrors, nil
}

// ValidateRow validates a single row and returns an error message or empty string.
func ValidateRow(row SourceRow) string {
	if strings.TrimSpace(row.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(row.FeedURL) == "" {
		return "feed_url is required"
	}
	if !strings.HasPrefix(row.FeedURL, "http://") && !strings.HasPrefix(row.FeedURL, "https://") {
		return "feed_url must start with http:// or https://"
	}
	if row.Type != "" && !models.ValidSourceType(models.SourceType(row.Type)) {
		return "type must be rss or api"
	}
	return ""
}

// ToSource converts a validated row into a news source model.
func (r SourceRow) ToSource() *models.NewsSource {
	typ := models.SourceType(r.Type)
	if r.Type == "" {
		typ = models.SourceTypeRSS
	}

	return &models.NewsSource{
		Name:    strings.TrimSpace(r.Name),
		FeedURL: strings.TrimSpace(r.FeedURL),
		Type:    typ,
		Enabled: r.Enabled,
	}
}

// resolveColumns maps header names to column indices. Headers are matched
// case-insensitively with surrounding whitespace ignored.
func resolveColumns(header []string) columnMap {
	colMap := columnMap{name: -1, feedURL: -1, typ: -1, enabled: -1}

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			colMap.name = i
		case "feed_url":
			colMap.feedURL = i
		case "type":
			colMap.typ = i
		case "enabled":
			colMap.enabled = i
		}
	}

	return colMap
}

// validateRequiredColumns ensures the required headers are present.
func validateRequiredColumns(colMap columnMap) error {
	var missing []string
	if colMap.name == -1 {
		missing = append(missing, "name")
	}
	if colMap.feedURL == -1 {
		missing = append(missing, "feed_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// cellAt returns the trimmed cell value at the given index.
// excelize omits trailing empty cells, so short rows are expected.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// parseBoolCell accepts the spreadsheet-friendly boolean spellings.
// Anything unrecognized is false.
func parseBoolCell(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// isBlankRow reports whether every cell in the row is empty.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
