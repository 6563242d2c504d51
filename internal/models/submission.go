// Package models defines the directory's entities and their write-path
// normalization rules.
package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SubmissionStatus is the moderation state of a user submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// DefaultReviewer is recorded when a moderation action carries no reviewer.
const DefaultReviewer = "Admin"

// DefaultRejectionReason is recorded when a rejection carries no reason.
const DefaultRejectionReason = "Does not meet listing criteria"

// ResourceSubmission is a user-proposed resource awaiting review.
// ReviewedAt and ReviewedBy are set exactly when Status leaves pending.
type ResourceSubmission struct {
	ID              string           `json:"id" db:"id"`
	Title           string           `json:"title" db:"title"`
	Description     string           `json:"description" db:"description"`
	URL             string           `json:"url" db:"url"`
	Category        string           `json:"category" db:"category"`
	Tags            StringArray      `json:"tags" db:"tags"`
	Status          SubmissionStatus `json:"status" db:"status"`
	SubmittedAt     time.Time        `json:"submitted_at" db:"submitted_at"`
	SubmittedBy     *string          `json:"submitted_by,omitempty" db:"submitted_by"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy      *string          `json:"reviewed_by,omitempty" db:"reviewed_by"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

// CompanySubmission is a user-proposed company awaiting review.
type CompanySubmission struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Description     string           `json:"description" db:"description"`
	Website         *string          `json:"website,omitempty" db:"website"`
	Founders        StringArray      `json:"founders" db:"founders"`
	Products        StringArray      `json:"products" db:"products"`
	Status          SubmissionStatus `json:"status" db:"status"`
	SubmittedAt     time.Time        `json:"submitted_at" db:"submitted_at"`
	SubmittedBy     *string          `json:"submitted_by,omitempty" db:"submitted_by"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy      *string          `json:"reviewed_by,omitempty" db:"reviewed_by"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

// ResourceEdits is a partial update for a resource submission. A nil field
// means "not supplied, leave untouched"; a supplied field fully replaces the
// stored value.
type ResourceEdits struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	URL         *string      `json:"url,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Tags        *StringArray `json:"tags,omitempty"`
}

// Empty reports whether no field is supplied.
func (e *ResourceEdits) Empty() bool {
	if e == nil {
		return true
	}
	return e.Title == nil && e.Description == nil && e.URL == nil &&
		e.Category == nil && e.Tags == nil
}

// CompanyEdits is a partial update for a company submission.
type CompanyEdits struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Founders    *StringArray `json:"founders,omitempty"`
	Products    *StringArray `json:"products,omitempty"`
}

// Empty reports whether no field is supplied.
func (e *CompanyEdits) Empty() bool {
	if e == nil {
		return true
	}
	return e.Name == nil && e.Description == nil && e.Website == nil &&
		e.Founders == nil && e.Products == nil
}

const submissionIDSuffixBytes = 3

// NewSubmissionID builds a resource submission identifier from the current
// time and a random suffix, e.g. "1735689600123-a3f9c1".
func NewSubmissionID() string {
	suffix := make([]byte, submissionIDSuffixBytes)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
