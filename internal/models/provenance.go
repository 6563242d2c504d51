package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Citation is a provenance record attached to a claim or controversy.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Controversy is a free-text incident record with optional citations.
type Controversy struct {
	Text      string     `json:"text"`
	Date      string     `json:"date,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
}

// ControversyList stores controversies in a JSON text column.
type ControversyList []Controversy

func (l ControversyList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ControversyList) Scan(value any) error {
	return scanJSON(value, l)
}

// CitationMap maps a company field name to the citations backing it.
// Citations for controversies live inside each controversy entry, so the
// reserved key "controversies" is never persisted here.
type CitationMap map[string][]Citation

func (m CitationMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *CitationMap) Scan(value any) error {
	return scanJSON(value, m)
}

func scanJSON(value any, dest any) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

// CleanCitations drops citations whose URL is empty after trimming and trims
// the fields of the survivors. Returns nil when nothing survives so callers
// can drop the key entirely.
func CleanCitations(citations []Citation) []Citation {
	var cleaned []Citation
	for _, c := range citations {
		url := strings.TrimSpace(c.URL)
		if url == "" {
			continue
		}
		cleaned = append(cleaned, Citation{
			URL:   url,
			Title: strings.TrimSpace(c.Title),
			Date:  strings.TrimSpace(c.Date),
		})
	}
	return cleaned
}

// CleanControversies drops entries whose text is empty after trimming, trims
// the rest, keeps dates only when non-empty, and filters each citation list
// through CleanCitations. It is idempotent: both the create and update paths
// run it on whatever the client sent.
func CleanControversies(controversies []Controversy) ControversyList {
	cleaned := make(ControversyList, 0, len(controversies))
	for _, entry := range controversies {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		cleaned = append(cleaned, Controversy{
			Text:      text,
			Date:      strings.TrimSpace(entry.Date),
			Citations: CleanCitations(entry.Citations),
		})
	}
	return cleaned
}

// CleanCitationMap removes the reserved "controversies" key and any field
// whose citation list filters to empty. Idempotent for the same reason as
// CleanControversies.
func CleanCitationMap(citations CitationMap) CitationMap {
	cleaned := make(CitationMap, len(citations))
	for field, list := range citations {
		if field == "controversies" {
			continue
		}
		filtered := CleanCitations(list)
		if len(filtered) == 0 {
			continue
		}
		cleaned[field] = filtered
	}
	return cleaned
}
