package badge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Width(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantWidth string
	}{
		{"empty text gives minimum width", "", `width="40"`},
		{"width grows with text", "abc", `width="61"`},
		{"default text", DefaultText, `width="145"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := Render(tt.text, "cyberpunk", "")
			assert.Contains(t, svg, tt.wantWidth)
			assert.Contains(t, svg, `height="28"`)
		})
	}
}

func TestRender_UnknownStyleFallsBack(t *testing.T) {
	known := Render("x", "cyberpunk", "")
	unknown := Render("x", "vaporwave", "")
	empty := Render("x", "", "")

	assert.Equal(t, known, unknown)
	assert.Equal(t, known, empty)
	assert.Contains(t, unknown, "#00e5ff")
}

func TestRender_Palettes(t *testing.T) {
	assert.Contains(t, Render("x", "dark", ""), "#1a1a1a")
	assert.Contains(t, Render("x", "red", ""), "#cc0000")
}

func TestRender_EscapesText(t *testing.T) {
	svg := Render(`<script>"&'`, "cyberpunk", "")

	assert.NotContains(t, svg, "<script>")
	assert.Contains(t, svg, "&lt;script&gt;")
	assert.Contains(t, svg, "&quot;")
	assert.Contains(t, svg, "&amp;")
	assert.Contains(t, svg, "&apos;")
}

func TestRender_Link(t *testing.T) {
	withLink := Render("x", "cyberpunk", "https://butlerian.directory")
	assert.Contains(t, withLink, `<a href="https://butlerian.directory">`)
	assert.Contains(t, withLink, "</a>")

	withoutLink := Render("x", "cyberpunk", "")
	assert.NotContains(t, withoutLink, "<a ")
}

func TestRender_WellFormed(t *testing.T) {
	svg := Render("", "nope", "")
	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}
