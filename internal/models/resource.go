package models

import "time"

// Resource is a published directory entry.
type Resource struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	URL         string      `json:"url" db:"url"`
	Category    string      `json:"category" db:"category"`
	Tags        StringArray `json:"tags" db:"tags"`
	Approved    bool        `json:"approved" db:"approved"`
	Featured    bool        `json:"featured" db:"featured"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}
