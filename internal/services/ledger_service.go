package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
)

// ledgerService guards the singleton budget row. Every mutation locks the row,
// re-reads the balance, and writes the new value plus one history entry inside
// a single transaction, so concurrent approvals serialize instead of both
// passing a stale balance check.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// EnsureBudget initializes the singleton budget row if it does not exist yet.
func (s *ledgerService) EnsureBudget() error {
	budget := &models.Budget{Base: models.Base{ID: models.BudgetID}}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// lockBudget loads the budget row with a row-level write lock.
func lockBudget(tx *gorm.DB) (*models.Budget, error) {
	var budget models.Budget
	if err := withUpdateLock(tx).
		First(&budget, models.BudgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Summary returns the current allocation, committed spend, and remainder.
func (s *ledgerService) Summary() (*BudgetSummary, error) {
	var budget models.Budget
	if err := s.db.First(&budget, models.BudgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &BudgetSummary{
		Total:     budget.TotalAmount,
		Spent:     budget.SpentAmount,
		Remaining: budget.Remaining(),
	}, nil
}

// Debit commits funds against the allocation in its own transaction.
func (s *ledgerService) Debit(amount int64, reason string, actorID uint) (*BudgetSummary, error) {
	var summary *BudgetSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = s.DebitIn(tx, amount, reason, actorID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DebitIn commits funds against the allocation inside the caller's
// transaction. The balance check and update are indivisible relative to
// concurrent mutations; an insufficient balance leaves everything unchanged.
func (s *ledgerService) DebitIn(tx *gorm.DB, amount int64, reason string, actorID uint) (*BudgetSummary, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debit amount must not be negative")
	}

	budget, err := lockBudget(tx)
	if err != nil {
		return nil, err
	}

	if budget.SpentAmount+amount > budget.TotalAmount {
		return nil, apperrors.ErrInsufficientBudget
	}

	budget.SpentAmount += amount
	if err := tx.Model(&models.Budget{}).Where("id = ?", models.BudgetID).
		Update("spent_amount", budget.SpentAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.appendHistory(tx, -amount, models.AdjustmentDeduction, reason, actorID, budget.SpentAmount); err != nil {
		return nil, err
	}

	return &BudgetSummary{Total: budget.TotalAmount, Spent: budget.SpentAmount, Remaining: budget.Remaining()}, nil
}

// Credit releases previously committed funds in its own transaction.
func (s *ledgerService) Credit(amount int64, reason string, actorID uint) (*BudgetSummary, error) {
	var summary *BudgetSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = s.CreditIn(tx, amount, reason, actorID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// CreditIn releases previously committed funds inside the caller's
// transaction. It fails only on a negative amount; the committed spend never
// drops below zero.
func (s *ledgerService) CreditIn(tx *gorm.DB, amount int64, reason string, actorID uint) (*BudgetSummary, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "credit amount must not be negative")
	}

	budget, err := lockBudget(tx)
	if err != nil {
		return nil, err
	}

	budget.SpentAmount -= amount
	if budget.SpentAmount < 0 {
		budget.SpentAmount = 0
	}
	if err := tx.Model(&models.Budget{}).Where("id = ?", models.BudgetID).
		Update("spent_amount", budget.SpentAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.appendHistory(tx, amount, models.AdjustmentRefund, reason, actorID, budget.SpentAmount); err != nil {
		return nil, err
	}

	return &BudgetSummary{Total: budget.TotalAmount, Spent: budget.SpentAmount, Remaining: budget.Remaining()}, nil
}

// SetAllocation replaces the total allocation. It refuses to shrink the
// allocation below the already committed spend.
func (s *ledgerService) SetAllocation(newTotal int64, reason string, actorID uint) (*BudgetSummary, error) {
	if newTotal < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation must not be negative")
	}

	var summary *BudgetSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := lockBudget(tx)
		if err != nil {
			return err
		}

		if newTotal < budget.SpentAmount {
			return apperrors.ErrBelowCommitted
		}

		delta := newTotal - budget.TotalAmount
		budget.TotalAmount = newTotal
		if err := tx.Model(&models.Budget{}).Where("id = ?", models.BudgetID).
			Update("total_amount", newTotal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.appendHistory(tx, delta, models.AdjustmentAllocation, reason, actorID, budget.SpentAmount); err != nil {
			return err
		}

		summary = &BudgetSummary{Total: budget.TotalAmount, Spent: budget.SpentAmount, Remaining: budget.Remaining()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// appendHistory writes the single ledger entry for a balance change. It runs
// inside the same transaction as the change itself.
func (s *ledgerService) appendHistory(tx *gorm.DB, delta int64, kind models.AdjustmentType, reason string, actorID uint, balanceAfter int64) error {
	entry := &models.BudgetHistory{
		Delta:          delta,
		AdjustmentType: kind,
		Reason:         reason,
		ActorID:        actorID,
		BalanceAfter:   balanceAfter,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// History returns budget adjustments, newest first.
func (s *ledgerService) History(page pagination.PageRequest, filter HistoryFilter) (*pagination.PageResponse[models.BudgetHistory], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetHistory{})
	if filter.AdjustmentType != nil {
		base = base.Where("adjustment_type = ?", *filter.AdjustmentType)
	}
	if filter.ActorID != nil {
		base = base.Where("actor_id = ?", *filter.ActorID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.BudgetHistory
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
