package models

// Resource categories form a closed set. A submission with an unknown
// category is rejected.
var validCategories = map[string]bool{
	"tool":              true,
	"browser-extension": true,
	"blocklist":         true,
	"article":           true,
	"community":         true,
	"legal":             true,
}

// Tags also form a closed set, but unknown tags are dropped silently rather
// than rejected. Submitters copy tag lists between forms; failing the whole
// submission over a stray tag is not worth it.
var validTags = map[string]bool{
	"privacy":     true,
	"open-source": true,
	"free":        true,
	"paid":        true,
	"self-hosted": true,
	"browser":     true,
	"email":       true,
	"research":    true,
}

// ValidCategory reports whether category is in the closed set.
func ValidCategory(category string) bool {
	return validCategories[category]
}

// FilterTags returns tags restricted to the closed set, preserving order.
// Unknown tags are dropped. The result is never nil.
func FilterTags(tags []string) StringArray {
	filtered := make(StringArray, 0, len(tags))
	for _, tag := range tags {
		if validTags[tag] {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}
