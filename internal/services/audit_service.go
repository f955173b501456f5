package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
)

// auditService handles user activity log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

func buildLogRow(entry AuditEntry) *models.UserActivityLog {
	var detailsJSON string
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			logger.Get().Errorw("failed to marshal activity log details", "error", err, "action", entry.Action)
			detailsJSON = "{}"
		} else {
			detailsJSON = string(data)
		}
	}

	return &models.UserActivityLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Outcome:    entry.Outcome,
		Details:    detailsJSON,
		IPAddress:  entry.IPAddress,
	}
}

// Log records an activity event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(entry AuditEntry) {
	row := buildLogRow(entry)
	if err := s.db.Create(row).Error; err != nil {
		logger.Get().Errorw("failed to create activity log entry",
			"error", err,
			"actor_id", entry.ActorID,
			"action", entry.Action,
			"target_type", entry.TargetType,
			"target_id", entry.TargetID,
		)
	}
}

// RecordIn appends an activity event inside the caller's transaction, so the
// entry commits or rolls back together with the state change it documents.
func (s *auditService) RecordIn(tx *gorm.DB, entry AuditEntry) error {
	return tx.Create(buildLogRow(entry)).Error
}

// List returns activity log entries, newest first.
func (s *auditService) List(page pagination.PageRequest, filter ActivityFilter) (*pagination.PageResponse[models.UserActivityLog], error) {
	page.Defaults()

	base := s.db.Model(&models.UserActivityLog{})
	if filter.ActorID != nil {
		base = base.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != nil {
		base = base.Where("action = ?", *filter.Action)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.UserActivityLog
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
