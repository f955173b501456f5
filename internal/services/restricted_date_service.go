package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
)

// restrictedDateService manages blocked travel periods.
type restrictedDateService struct {
	db *gorm.DB
}

// NewRestrictedDateService creates a new RestrictedDateServicer.
func NewRestrictedDateService(db *gorm.DB) RestrictedDateServicer {
	return &restrictedDateService{db: db}
}

// IsBlocked reports whether the travel dates intersect any restricted period
// and returns the conflicting periods. Pure read, no side effects.
func (s *restrictedDateService) IsBlocked(from, to time.Time) (bool, []models.RestrictedDate, error) {
	var periods []models.RestrictedDate
	if err := s.db.Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date").
		Find(&periods).Error; err != nil {
		return false, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return len(periods) > 0, periods, nil
}

// List returns all restricted periods ordered by start date.
func (s *restrictedDateService) List() ([]models.RestrictedDate, error) {
	var periods []models.RestrictedDate
	if err := s.db.Order("start_date").Find(&periods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return periods, nil
}

// Create adds a new restricted period.
func (s *restrictedDateService) Create(from, to time.Time, reason string) (*models.RestrictedDate, error) {
	if reason == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "reason is required")
	}
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not precede start date")
	}

	period := &models.RestrictedDate{StartDate: from, EndDate: to, Reason: reason}
	if err := s.db.Create(period).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return period, nil
}

// Delete removes a restricted period.
func (s *restrictedDateService) Delete(id uint) error {
	var period models.RestrictedDate
	if err := s.db.First(&period, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRestrictedDateNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&period).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
