package models

import "time"

// FacultyRole determines which workflow operations a faculty member may perform.
type FacultyRole string

const (
	RoleProfessor  FacultyRole = "professor"
	RoleAccountant FacultyRole = "accountant"
	RoleApprover   FacultyRole = "approver"
)

// Faculty represents a faculty member account. Accounts are created through
// provisioning and are deactivated rather than deleted.
type Faculty struct {
	Base
	Username            string      `gorm:"uniqueIndex;not null" json:"username"`
	Name                string      `gorm:"not null" json:"name"`
	Role                FacultyRole `gorm:"not null" json:"role"`
	PasswordHash        string      `gorm:"not null" json:"-"`
	Department          string      `json:"department"`
	IsActive            bool        `gorm:"default:true" json:"is_active"`
	FailedLoginAttempts int         `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time  `json:"-"`
	LastLoginAt         *time.Time  `json:"last_login_at,omitempty"`

	Requests []Request `gorm:"foreignKey:FacultyID" json:"requests,omitempty"`
}

// IsLocked reports whether the account is currently locked out.
func (f *Faculty) IsLocked(now time.Time) bool {
	return f.LockedUntil != nil && now.Before(*f.LockedUntil)
}
