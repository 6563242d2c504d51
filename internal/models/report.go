package models

import "time"

// ReportType names the kind of entity a report targets.
type ReportType string

const (
	ReportTargetCompany  ReportType = "company"
	ReportTargetResource ReportType = "resource"
)

// ValidReportType reports whether t is a known target kind.
func ValidReportType(t ReportType) bool {
	return t == ReportTargetCompany || t == ReportTargetResource
}

// ReportStatus is the triage state of a report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ValidReportTransition reports whether s is a status an admin may set.
// Reports are created pending; they never go back.
func ValidReportTransition(s ReportStatus) bool {
	return s == ReportReviewed || s == ReportResolved || s == ReportDismissed
}

// Report is a user-filed correction against a published entity. TargetID is
// not checked against the target table at write time.
type Report struct {
	ID            string       `json:"id" db:"id"`
	Type          ReportType   `json:"type" db:"type"`
	TargetID      string       `json:"target_id" db:"target_id"`
	ReporterEmail *string      `json:"reporter_email,omitempty" db:"reporter_email"`
	FieldName     *string      `json:"field_name,omitempty" db:"field_name"`
	ProposedValue *string      `json:"proposed_value,omitempty" db:"proposed_value"`
	SourceURL     *string      `json:"source_url,omitempty" db:"source_url"`
	Message       string       `json:"message" db:"message"`
	Status        ReportStatus `json:"status" db:"status"`
	ReviewedBy    *string      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	AdminNotes    *string      `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
