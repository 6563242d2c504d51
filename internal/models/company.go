package models

import "time"

// Company is a published directory entry for an AI company, with per-field
// provenance tracking.
type Company struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Website       *string         `json:"website,omitempty" db:"website"`
	Founders      StringArray     `json:"founders" db:"founders"`
	Products      StringArray     `json:"products" db:"products"`
	Approved      bool            `json:"approved" db:"approved"`
	Featured      bool            `json:"featured" db:"featured"`
	Controversies ControversyList `json:"controversies" db:"controversies"`
	Citations     CitationMap     `json:"citations" db:"citations"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Clean applies the write-path normalizer to the provenance fields. Safe to
// run repeatedly.
func (c *Company) Clean() {
	c.Controversies = CleanControversies(c.Controversies)
	c.Citations = CleanCitationMap(c.Citations)
}
