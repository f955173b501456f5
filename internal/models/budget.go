package models

// BudgetID is the primary key of the single active budget row. All ledger
// operations serialize on this row.
const BudgetID uint = 1

// Budget is the singleton travel budget allocation for the current period.
// Amounts are in cents. Invariant: 0 <= SpentAmount <= TotalAmount, enforced
// inside every ledger transaction.
type Budget struct {
	Base
	TotalAmount int64 `gorm:"not null" json:"total_amount"`
	SpentAmount int64 `gorm:"not null;default:0" json:"spent_amount"`
}

// Remaining returns the funds still available for approvals.
func (b *Budget) Remaining() int64 {
	return b.TotalAmount - b.SpentAmount
}

// AdjustmentType classifies a budget history entry.
type AdjustmentType string

const (
	AdjustmentDeduction  AdjustmentType = "deduction"
	AdjustmentRefund     AdjustmentType = "refund"
	AdjustmentAllocation AdjustmentType = "allocation"
)

// BudgetHistory is the append-only ledger of budget adjustments. Exactly one
// row is written in the same transaction as every balance change. Delta is
// signed from the available-funds perspective: a deduction carries a negative
// delta. BalanceAfter snapshots the committed spend after the operation.
type BudgetHistory struct {
	Base
	Delta          int64          `gorm:"not null" json:"delta"`
	AdjustmentType AdjustmentType `gorm:"not null" json:"adjustment_type"`
	Reason         string         `gorm:"not null" json:"reason"`
	ActorID        uint           `gorm:"not null;index" json:"actor_id"`
	BalanceAfter   int64          `gorm:"not null" json:"balance_after"`

	Actor Faculty `gorm:"foreignKey:ActorID" json:"-"`
}
