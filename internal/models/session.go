package models

import "time"

// Session is the server-side record backing an issued token. The token itself
// is a signed JWT; the row carries the sliding idle-timeout clock and the
// revocation flag, both checked lazily at validation time.
type Session struct {
	Base
	FacultyID      uint       `gorm:"not null;index" json:"faculty_id"`
	TokenHash      string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	LastActivityAt time.Time  `gorm:"not null" json:"last_activity_at"`
	RevokedAt      *time.Time `json:"-"`

	Faculty Faculty `gorm:"foreignKey:FacultyID" json:"-"`
}
