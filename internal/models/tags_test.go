package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"tool", true},
		{"browser-extension", true},
		{"blocklist", true},
		{"article", true},
		{"community", true},
		{"legal", true},
		{"", false},
		{"Tool", false},
		{"malware", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCategory(tt.category))
		})
	}
}

func TestFilterTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want StringArray
	}{
		{
			name: "keeps known tags in order",
			tags: []string{"privacy", "free", "open-source"},
			want: StringArray{"privacy", "free", "open-source"},
		},
		{
			name: "drops unknown tags silently",
			tags: []string{"privacy", "blockchain", "free"},
			want: StringArray{"privacy", "free"},
		},
		{
			name: "all unknown",
			tags: []string{"x", "y"},
			want: StringArray{},
		},
		{
			name: "nil input yields empty, not nil",
			tags: nil,
			want: StringArray{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTags(tt.tags)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestNewSubmissionID(t *testing.T) {
	id := NewSubmissionID()
	assert.Regexp(t, regexp.MustCompile(`^\d{13,}-[0-9a-f]{6}$`), id)

	// Two IDs generated back to back should differ
	assert.NotEqual(t, id, NewSubmissionID())
}

func TestEditsEmpty(t *testing.T) {
	title := "t"
	tags := StringArray{"privacy"}

	var nilEdits *ResourceEdits
	assert.True(t, nilEdits.Empty())
	assert.True(t, (&ResourceEdits{}).Empty())
	assert.False(t, (&ResourceEdits{Title: &title}).Empty())
	assert.False(t, (&ResourceEdits{Tags: &tags}).Empty())

	var nilCompanyEdits *CompanyEdits
	assert.True(t, nilCompanyEdits.Empty())
	assert.True(t, (&CompanyEdits{}).Empty())
	assert.False(t, (&CompanyEdits{Name: &title}).Empty())
}
