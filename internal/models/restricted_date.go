package models

import "time"

// RestrictedDate is a blocked travel period. The state machine only reads
// these; they are administered by accountants.
type RestrictedDate struct {
	Base
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Reason    string    `gorm:"not null" json:"reason"`
}

// Overlaps reports whether the given travel dates intersect this period.
func (r *RestrictedDate) Overlaps(from, to time.Time) bool {
	return !from.After(r.EndDate) && !to.Before(r.StartDate)
}
