package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	s := New()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain text passes", "just a message", "just a message", false},
		{"strips tags", "hello <b>world</b>", "hello world", false},
		{"strips script entirely", "before<script>alert(1)</script>after", "beforeafter", false},
		{"trims whitespace", "  padded  ", "padded", false},
		{"empty input stays empty", "", "", false},
		{"markup-only input rejected", "<script>alert(1)</script>", "", true},
		{"over length rejected", strings.Repeat("a", MaxTextLength+1), "", true},
		{"exactly max length passes", strings.Repeat("a", MaxTextLength), strings.Repeat("a", MaxTextLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Clean(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_LengthCapAppliesBeforeStripping(t *testing.T) {
	s := New()

	// Markup inflates the raw input past the cap even though the visible
	// text is short.
	input := "<i>" + strings.Repeat("a", MaxTextLength) + "</i>"
	_, err := s.Clean(input)
	require.Error(t, err)
}

func TestCleanRequired(t *testing.T) {
	s := New()

	_, err := s.CleanRequired("", "message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is required")

	_, err = s.CleanRequired("   ", "title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")

	got, err := s.CleanRequired("fine", "message")
	require.NoError(t, err)
	assert.Equal(t, "fine", got)
}
