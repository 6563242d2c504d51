package models

import "time"

// SourceType distinguishes how a news source is fetched.
type SourceType string

const (
	SourceTypeRSS SourceType = "rss"
	SourceTypeAPI SourceType = "api"
)

// ValidSourceType reports whether t is a recognized source type.
func ValidSourceType(t SourceType) bool {
	return t == SourceTypeRSS || t == SourceTypeAPI
}

// NewsSource drives the ingestion run. LastFetched is stamped by the run;
// everything else is admin-managed.
type NewsSource struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	FeedURL     string     `json:"feed_url" db:"feed_url"`
	Type        SourceType `json:"type" db:"type"`
	Enabled     bool       `json:"enabled" db:"enabled"`
	LastFetched *time.Time `json:"last_fetched,omitempty" db:"last_fetched"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewsArticle is a published news entry. URL is the dedup key for ingestion.
type NewsArticle struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Summary     string    `json:"summary" db:"summary"`
	URL         string    `json:"url" db:"url"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Source      string    `json:"source" db:"source"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	Approved    bool      `json:"approved" db:"approved"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
