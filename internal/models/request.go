package models

import "time"

// RequestStatus represents a travel request's position in its lifecycle.
type RequestStatus string

const (
	StatusDraft       RequestStatus = "draft"
	StatusSubmitted   RequestStatus = "submitted"
	StatusUnderReview RequestStatus = "under_review"
	StatusApproved    RequestStatus = "approved"
	StatusRejected    RequestStatus = "rejected"
	StatusCancelled   RequestStatus = "cancelled"
)

// IsTerminal reports whether no further lifecycle transition is permitted.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Request represents a conference travel request. Rows are never physically
// deleted; terminal states are retained for audit.
type Request struct {
	Base
	ReferenceID string `gorm:"size:36;uniqueIndex;not null" json:"reference_id"`
	FacultyID   uint   `gorm:"not null;index" json:"faculty_id"`

	ConferenceName string    `gorm:"not null" json:"conference_name"`
	Purpose        string    `json:"purpose"`
	ConferenceURL  string    `json:"conference_url"`
	Destination    string    `gorm:"not null" json:"destination"`
	City           string    `json:"city"`
	DateFrom       time.Time `gorm:"not null" json:"date_from"`
	DateTo         time.Time `gorm:"not null" json:"date_to"`
	IndexType      string    `json:"index_type"`

	// Amounts are in cents. PerDiem is a daily rate.
	RegistrationFee int64 `gorm:"not null" json:"registration_fee"`
	PerDiem         int64 `gorm:"not null" json:"per_diem"`
	VisaFee         int64 `gorm:"not null" json:"visa_fee"`

	// Opaque outputs of the document-analysis collaborator. Stored as
	// provided; the core only checks structural presence.
	ConferenceSummary string   `json:"conference_summary,omitempty"`
	ResearchSummary   string   `json:"research_summary,omitempty"`
	LegitimacyScore   *float64 `json:"legitimacy_score,omitempty"`

	Status        RequestStatus `gorm:"not null;index;default:submitted" json:"status"`
	ReviewerID    *uint         `json:"reviewer_id,omitempty"`
	DecisionNotes string        `json:"decision_notes,omitempty"`
	DecidedBy     *uint         `json:"decided_by,omitempty"`
	DecidedAt     *time.Time    `json:"decided_at,omitempty"`

	Faculty Faculty `gorm:"foreignKey:FacultyID" json:"-"`
}

// DurationDays returns the trip length in days, inclusive of both travel dates.
func (r *Request) DurationDays() int64 {
	days := int64(r.DateTo.Sub(r.DateFrom).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// TotalCost returns the full cost the ledger is debited on approval:
// registration fee plus per diem for every travel day plus visa fee.
func (r *Request) TotalCost() int64 {
	return r.RegistrationFee + r.PerDiem*r.DurationDays() + r.VisaFee
}
