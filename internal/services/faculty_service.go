package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
)

// facultyService handles faculty account provisioning and lookup.
type facultyService struct {
	db *gorm.DB
}

// NewFacultyService creates a new FacultyServicer.
func NewFacultyService(db *gorm.DB) FacultyServicer {
	return &facultyService{db: db}
}

// CreateFaculty provisions a new faculty account.
func (s *facultyService) CreateFaculty(username, password, name string, role models.FacultyRole, department string) (*models.Faculty, error) {
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}
	switch role {
	case models.RoleProfessor, models.RoleAccountant, models.RoleApprover:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown faculty role")
	}

	var count int64
	s.db.Model(&models.Faculty{}).Where("username = ?", strings.ToLower(username)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	faculty := &models.Faculty{
		Username:     strings.ToLower(username),
		Name:         name,
		Role:         role,
		PasswordHash: string(hashed),
		Department:   department,
		IsActive:     true,
	}

	if err := s.db.Create(faculty).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return faculty, nil
}

// GetFacultyByID retrieves a faculty member by ID.
func (s *facultyService) GetFacultyByID(id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.First(&faculty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &faculty, nil
}

// GetFacultyByUsername retrieves an active faculty member by username.
func (s *facultyService) GetFacultyByUsername(username string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.Where("username = ? AND is_active = ?", strings.ToLower(username), true).
		First(&faculty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &faculty, nil
}

// Deactivate disables an account. Faculty rows are never deleted, only
// deactivated; their requests and audit trail remain.
func (s *facultyService) Deactivate(id uint) error {
	result := s.db.Model(&models.Faculty{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}
