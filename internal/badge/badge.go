// Package badge renders the embeddable SVG site badge.
package badge

import "strings"

// Badge geometry. Width grows linearly with the text; the height is fixed.
const (
	charWidth  = 7
	basePad    = 40
	height     = 28
	textOffset = 20
)

// DefaultText is rendered when the caller supplies none.
const DefaultText = "Butlerian Jihad"

// Palette is a badge color scheme.
type Palette struct {
	Background string
	Border     string
	Text       string
}

var palettes = map[string]Palette{
	"cyberpunk": {Background: "#0d0d1a", Border: "#00e5ff", Text: "#00e5ff"},
	"dark":      {Background: "#1a1a1a", Border: "#444444", Text: "#e0e0e0"},
	"red":       {Background: "#1a0000", Border: "#cc0000", Text: "#ff4444"},
}

const defaultStyle = "cyberpunk"

// Render produces a complete SVG document for the badge. Pure: any input
// yields valid SVG. Unknown styles fall back to cyberpunk; empty text is
// legal and produces a minimum-width badge.
func Render(text, style, link string) string {
	palette, ok := palettes[style]
	if !ok {
		palette = palettes[defaultStyle]
	}

	width := charWidth*len(text) + basePad
	escaped := escapeXML(text)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	writeInt(&b, width)
	b.WriteString(`" height="`)
	writeInt(&b, height)
	b.WriteString(`" role="img" aria-label="`)
	b.WriteString(escaped)
	b.WriteString(`">`)
	if link != "" {
		b.WriteString(`<a href="`)
		b.WriteString(escapeXML(link))
		b.WriteString(`">`)
	}
	b.WriteString(`<rect width="`)
	writeInt(&b, width)
	b.WriteString(`" height="`)
	writeInt(&b, height)
	b.WriteString(`" rx="4" fill="`)
	b.WriteString(palette.Background)
	b.WriteString(`" stroke="`)
	b.WriteString(palette.Border)
	b.WriteString(`" stroke-width="1"/>`)
	b.WriteString(`<text x="`)
	writeInt(&b, width/2)
	b.WriteString(`" y="`)
	writeInt(&b, textOffset)
	b.WriteString(`" text-anchor="middle" font-family="monospace" font-size="12" fill="`)
	b.WriteString(palette.Text)
	b.WriteString(`">`)
	b.WriteString(escaped)
	b.WriteString(`</text>`)
	if link != "" {
		b.WriteString(`</a>`)
	}
	b.WriteString(`</svg>`)

	return b.String()
}

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}

func writeInt(b *strings.Builder, n int) {
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [10]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}
