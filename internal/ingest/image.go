package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ExtractImageURL picks an image for a feed item. Precedence: an enclosure
// declaring an image/* MIME type, then a media:thumbnail extension, then the
// first <img src> inside the item's HTML description.
func ExtractImageURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	if mediaExt, ok := item.Extensions["media"]; ok {
		if thumbnails, ok := mediaExt["thumbnail"]; ok {
			for _, thumb := range thumbnails {
				if u := thumb.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	return firstImageInHTML(item.Description)
}

// firstImageInHTML returns the src of the first <img> in an HTML fragment,
// or "" when there is none or the fragment does not parse.
func firstImageInHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
