package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/butlerian/directory/internal/models"
)

// buildWorkbook writes a Sources sheet with the given header and rows and
// returns the serialized workbook.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Sources"))
	require.NoError(t, f.SetSheetRow("Sources", "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sources", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseExcelFile(t *testing.T) {
	buf := buildWorkbook(t,
		[]string{"Name", "feed_url", "Type", "Enabled"},
		[][]string{
			{"TechCrunch AI", "https://techcrunch.com/feed/", "rss", "true"},
			{"", "", "", ""},
			{"Plain Source", "https://example.com/rss", "", "yes"},
			{"Disabled Source", "https://example.com/other", "rss", "nope"},
		},
	)

	rows, rowErrors, err := ParseExcelFile(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "TechCrunch AI", rows[0].Name)
	assert.Equal(t, "https://techcrunch.com/feed/", rows[0].FeedURL)
	assert.True(t, rows[0].Enabled)

	// blank row skipped, row numbers keep counting
	assert.Equal(t, 4, rows[1].Row)
	assert.True(t, rows[1].Enabled)

	assert.False(t, rows[2].Enabled)
}

func TestParseExcelFile_RowErrors(t *testing.T) {
	buf := buildWorkbook(t,
		[]string{"name", "feed_url", "type"},
		[][]string{
			{"", "https://example.com/feed", ""},
			{"No URL", "", ""},
			{"Bad Scheme", "ftp://example.com/feed", ""},
			{"Bad Type", "https://example.com/feed", "scraper"},
			{"Good", "https://example.com/feed", "api"},
		},
	)

	rows, rowErrors, err := ParseExcelFile(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Good", rows[0].Name)

	require.Len(t, rowErrors, 4)
	assert.Equal(t, ImportError{Row: 2, Error: "name is required"}, rowErrors[0])
	assert.Equal(t, ImportError{Row: 3, Error: "feed_url is required"}, rowErrors[1])
	assert.Equal(t, ImportError{Row: 4, Error: "feed_url must start with http:// or https://"}, rowErrors[2])
	assert.Equal(t, ImportError{Row: 5, Error: "type must be rss or api"}, rowErrors[3])
}

func TestParseExcelFile_MissingColumns(t *testing.T) {
	buf := buildWorkbook(t,
		[]string{"name", "type"},
		[][]string{{"X", "rss"}},
	)

	_, _, err := ParseExcelFile(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed_url")
}

func TestParseExcelFile_NotAWorkbook(t *testing.T) {
	_, _, err := ParseExcelFile(bytes.NewReader([]byte("plain text, not xlsx")))
	assert.Error(t, err)
}

func TestParseBoolCell(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", "Y"} {
		assert.True(t, parseBoolCell(s), s)
	}
	for _, s := range []string{"", "false", "0", "no", "enabled"} {
		assert.False(t, parseBoolCell(s), s)
	}
}

func TestToSource_DefaultsTypeRSS(t *testing.T) {
	row := SourceRow{Name: "  Spaced  ", FeedURL: " https://example.com/feed ", Enabled: true}

	src := row.ToSource()
	assert.Equal(t, "Spaced", src.Name)
	assert.Equal(t, "https://example.com/feed", src.FeedURL)
	assert.Equal(t, models.SourceTypeRSS, src.Type)
	assert.True(t, src.Enabled)
}
