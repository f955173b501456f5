package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/notify"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/uuid"
)

// requestService owns the travel request lifecycle:
//
//	Submitted -> UnderReview -> Approved | Rejected
//	Submitted | UnderReview -> Cancelled (owner only)
//
// Approved and Rejected are terminal; an approval debits the budget ledger in
// the same transaction as the status change. Conflicting transitions on one
// request serialize on the row lock, so the second decider always observes
// the terminal state instead of double-debiting.
type requestService struct {
	db              *gorm.DB
	ledger          LedgerServicer
	restrictedDates RestrictedDateServicer
	audit           AuditServicer
	notifier        notify.Notifier
}

// NewRequestService creates a new RequestServicer.
func NewRequestService(db *gorm.DB, ledger LedgerServicer, restrictedDates RestrictedDateServicer, audit AuditServicer, notifier notify.Notifier) RequestServicer {
	return &requestService{
		db:              db,
		ledger:          ledger,
		restrictedDates: restrictedDates,
		audit:           audit,
		notifier:        notifier,
	}
}

// requireRole rejects actors whose role is not in the allowed set. Denied
// attempts are audit-logged.
func (s *requestService) requireRole(actor *models.Faculty, action string, requestID uint, roles ...models.FacultyRole) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	s.audit.Log(AuditEntry{
		ActorID:    actor.ID,
		Action:     action,
		TargetType: "request",
		TargetID:   requestID,
		Outcome:    models.OutcomeDenied,
		Details:    map[string]interface{}{"role": actor.Role},
	})
	return apperrors.ErrForbidden
}

// lockRequest loads a request row with a row-level write lock.
func lockRequest(tx *gorm.DB, requestID uint) (*models.Request, error) {
	var request models.Request
	if err := withUpdateLock(tx).
		First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &request, nil
}

func validateSubmitInput(input SubmitRequestInput) error {
	switch {
	case strings.TrimSpace(input.ConferenceName) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "conference name is required")
	case strings.TrimSpace(input.Destination) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "destination is required")
	case input.DateFrom.IsZero() || input.DateTo.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "travel dates are required")
	case input.DateTo.Before(input.DateFrom):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not precede start date")
	case input.RegistrationFee < 0 || input.PerDiem < 0 || input.VisaFee < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fee amounts must not be negative")
	}
	return nil
}

// Submit validates a draft and creates it in the Submitted state. Travel
// dates intersecting a restricted period are rejected before any write.
func (s *requestService) Submit(actor *models.Faculty, input SubmitRequestInput) (*models.Request, error) {
	if err := s.requireRole(actor, models.ActionSubmitRequest, 0, models.RoleProfessor); err != nil {
		return nil, err
	}

	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	blocked, periods, err := s.restrictedDates.IsBlocked(input.DateFrom, input.DateTo)
	if err != nil {
		return nil, err
	}
	if blocked {
		reasons := make([]string, 0, len(periods))
		for _, p := range periods {
			reasons = append(reasons, fmt.Sprintf("%s (%s to %s)",
				p.Reason, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02")))
		}
		return nil, apperrors.WithMessage(apperrors.ErrRestrictedPeriod,
			"Travel dates overlap with restricted periods: "+strings.Join(reasons, ", "))
	}

	request := &models.Request{
		ReferenceID:       uuid.New(),
		FacultyID:         actor.ID,
		ConferenceName:    input.ConferenceName,
		Purpose:           input.Purpose,
		ConferenceURL:     input.ConferenceURL,
		Destination:       input.Destination,
		City:              input.City,
		DateFrom:          input.DateFrom,
		DateTo:            input.DateTo,
		IndexType:         input.IndexType,
		RegistrationFee:   input.RegistrationFee,
		PerDiem:           input.PerDiem,
		VisaFee:           input.VisaFee,
		ConferenceSummary: input.ConferenceSummary,
		ResearchSummary:   input.ResearchSummary,
		LegitimacyScore:   input.LegitimacyScore,
		Status:            models.StatusSubmitted,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(AuditEntry{
		ActorID:    actor.ID,
		Action:     models.ActionSubmitRequest,
		TargetType: "request",
		TargetID:   request.ID,
		Outcome:    models.OutcomeSuccess,
		Details:    map[string]interface{}{"reference": request.ReferenceID, "total_cost": request.TotalCost()},
	})

	return request, nil
}

// BeginReview claims a submitted request for a single reviewer. Re-entry by
// the same reviewer is a no-op; a second reviewer is rejected.
func (s *requestService) BeginReview(actor *models.Faculty, requestID uint) (*models.Request, error) {
	if err := s.requireRole(actor, models.ActionBeginReview, requestID, models.RoleApprover); err != nil {
		return nil, err
	}

	var request *models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		request, txErr = lockRequest(tx, requestID)
		if txErr != nil {
			return txErr
		}

		switch {
		case request.Status.IsTerminal():
			return apperrors.ErrAlreadyDecided
		case request.Status == models.StatusUnderReview:
			if request.ReviewerID != nil && *request.ReviewerID == actor.ID {
				return nil // idempotent re-entry
			}
			return apperrors.ErrAlreadyUnderReview
		case request.Status != models.StatusSubmitted:
			return apperrors.ErrInvalidTransition
		}

		request.Status = models.StatusUnderReview
		request.ReviewerID = &actor.ID
		return tx.Model(&models.Request{}).Where("id = ?", request.ID).Updates(map[string]interface{}{
			"status":      models.StatusUnderReview,
			"reviewer_id": actor.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(AuditEntry{
		ActorID:    actor.ID,
		Action:     models.ActionBeginReview,
		TargetType: "request",
		TargetID:   request.ID,
		Outcome:    models.OutcomeSuccess,
	})

	return request, nil
}

// Decide resolves a request under review. An approval debits the ledger, sets
// the terminal state, and appends the audit entry in one transaction; if the
// budget is insufficient, nothing changes and the request stays under review.
// Duplicate decisions observe the terminal state and fail.
func (s *requestService) Decide(actor *models.Faculty, requestID uint, decision Decision, notes string) (*models.Request, error) {
	action := models.ActionApproveRequest
	if decision == DecisionReject {
		action = models.ActionRejectRequest
	}

	if err := s.requireRole(actor, action, requestID, models.RoleApprover); err != nil {
		return nil, err
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "decision must be approve or reject")
	}

	now := time.Now()
	var request *models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		request, txErr = lockRequest(tx, requestID)
		if txErr != nil {
			return txErr
		}

		if request.Status.IsTerminal() {
			return apperrors.ErrAlreadyDecided
		}
		if request.Status != models.StatusUnderReview {
			return apperrors.ErrInvalidTransition
		}

		newStatus := models.StatusRejected
		if decision == DecisionApprove {
			newStatus = models.StatusApproved
			reason := fmt.Sprintf("Deduction for approved request %s", request.ReferenceID)
			if _, txErr = s.ledger.DebitIn(tx, request.TotalCost(), reason, actor.ID); txErr != nil {
				return txErr
			}
		}

		request.Status = newStatus
		request.DecisionNotes = notes
		request.DecidedBy = &actor.ID
		request.DecidedAt = &now
		if txErr = tx.Model(&models.Request{}).Where("id = ?", request.ID).Updates(map[string]interface{}{
			"status":         newStatus,
			"decision_notes": notes,
			"decided_by":     actor.ID,
			"decided_at":     now,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		// Log-then-commit: the audit entry is part of the atomic unit.
		return s.audit.RecordIn(tx, AuditEntry{
			ActorID:    actor.ID,
			Action:     action,
			TargetType: "request",
			TargetID:   request.ID,
			Outcome:    models.OutcomeSuccess,
			Details:    map[string]interface{}{"reference": request.ReferenceID, "total_cost": request.TotalCost()},
		})
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: delivery failure never rolls back the decision.
	s.notifier.Notify(notify.Event{
		RequestID: request.ID,
		Reference: request.ReferenceID,
		NewStatus: request.Status,
		ActorID:   actor.ID,
	})

	return request, nil
}

// Cancel withdraws a request before a decision. Only the owning professor may
// cancel, and only from Submitted or UnderReview. No ledger effect: nothing
// was debited pre-approval.
func (s *requestService) Cancel(actor *models.Faculty, requestID uint) (*models.Request, error) {
	if err := s.requireRole(actor, models.ActionCancelRequest, requestID, models.RoleProfessor); err != nil {
		return nil, err
	}

	var request *models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		request, txErr = lockRequest(tx, requestID)
		if txErr != nil {
			return txErr
		}

		if request.FacultyID != actor.ID {
			return apperrors.ErrForbidden
		}
		if request.Status.IsTerminal() {
			return apperrors.ErrAlreadyDecided
		}
		if request.Status != models.StatusSubmitted && request.Status != models.StatusUnderReview {
			return apperrors.ErrInvalidTransition
		}

		request.Status = models.StatusCancelled
		return tx.Model(&models.Request{}).Where("id = ?", request.ID).
			Update("status", models.StatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(AuditEntry{
		ActorID:    actor.ID,
		Action:     models.ActionCancelRequest,
		TargetType: "request",
		TargetID:   request.ID,
		Outcome:    models.OutcomeSuccess,
	})

	return request, nil
}

// Reverse administratively rolls back an approval, crediting the committed
// total back to the budget in the same transaction as the status change.
func (s *requestService) Reverse(actor *models.Faculty, requestID uint, reason string) (*models.Request, error) {
	if err := s.requireRole(actor, models.ActionReverseRequest, requestID, models.RoleAccountant); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a reversal reason is required")
	}

	var request *models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		request, txErr = lockRequest(tx, requestID)
		if txErr != nil {
			return txErr
		}

		if request.Status != models.StatusApproved {
			return apperrors.ErrNotReversible
		}

		creditReason := fmt.Sprintf("Refund for reversed request %s: %s", request.ReferenceID, reason)
		if _, txErr = s.ledger.CreditIn(tx, request.TotalCost(), creditReason, actor.ID); txErr != nil {
			return txErr
		}

		notes := reason
		if request.DecisionNotes != "" {
			notes = request.DecisionNotes + " | Reversed: " + reason
		}
		request.Status = models.StatusCancelled
		request.DecisionNotes = notes
		if txErr = tx.Model(&models.Request{}).Where("id = ?", request.ID).Updates(map[string]interface{}{
			"status":         models.StatusCancelled,
			"decision_notes": notes,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return s.audit.RecordIn(tx, AuditEntry{
			ActorID:    actor.ID,
			Action:     models.ActionReverseRequest,
			TargetType: "request",
			TargetID:   request.ID,
			Outcome:    models.OutcomeSuccess,
			Details:    map[string]interface{}{"reference": request.ReferenceID, "refund": request.TotalCost()},
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{
		RequestID: request.ID,
		Reference: request.ReferenceID,
		NewStatus: request.Status,
		ActorID:   actor.ID,
	})

	return request, nil
}

// GetByID returns a request visible to the actor: owners see their own,
// approvers and accountants see everything.
func (s *requestService) GetByID(actor *models.Faculty, requestID uint) (*models.Request, error) {
	var request models.Request
	if err := s.db.Preload("Faculty").First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if actor.Role == models.RoleProfessor && request.FacultyID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	return &request, nil
}

func applyRequestFilters(q *gorm.DB, f RequestFilter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.FromDate != nil {
		q = q.Where("date_from >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date_to <= ?", *f.ToDate)
	}
	return q
}

// ListByFaculty returns a faculty member's own requests, newest first.
func (s *requestService) ListByFaculty(facultyID uint, page pagination.PageRequest, filter RequestFilter) (*pagination.PageResponse[models.Request], error) {
	page.Defaults()

	base := applyRequestFilters(s.db.Model(&models.Request{}).Where("faculty_id = ?", facultyID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.Request
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(requests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListPending returns requests awaiting review, oldest first so the queue is
// worked in submission order.
func (s *requestService) ListPending(page pagination.PageRequest) (*pagination.PageResponse[models.Request], error) {
	page.Defaults()

	base := s.db.Model(&models.Request{}).
		Where("status IN ?", []models.RequestStatus{models.StatusSubmitted, models.StatusUnderReview})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.Request
	if err := base.Preload("Faculty").Scopes(pagination.Paginate(page)).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(requests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Search matches requests by conference name, destination, or city.
func (s *requestService) Search(term string, status *models.RequestStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Request], error) {
	page.Defaults()

	pattern := "%" + term + "%"
	base := s.db.Model(&models.Request{}).
		Where("conference_name LIKE ? OR destination LIKE ? OR city LIKE ?", pattern, pattern, pattern)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.Request
	if err := base.Preload("Faculty").Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(requests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// HasTraveledThisYear reports whether the faculty member already has an
// approved trip starting in the current calendar year.
func (s *requestService) HasTraveledThisYear(facultyID uint) (bool, error) {
	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var count int64
	if err := s.db.Model(&models.Request{}).
		Where("faculty_id = ? AND status = ? AND date_from >= ? AND date_from < ?",
			facultyID, models.StatusApproved, yearStart, yearEnd).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
