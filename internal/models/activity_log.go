package models

// Actions recorded in the user activity log.
const (
	ActionLogin          = "LOGIN"
	ActionLoginFailed    = "LOGIN_FAILED"
	ActionAccountLocked  = "ACCOUNT_LOCKED"
	ActionLogout         = "LOGOUT"
	ActionSubmitRequest  = "SUBMIT_REQUEST"
	ActionBeginReview    = "BEGIN_REVIEW"
	ActionApproveRequest = "APPROVE_REQUEST"
	ActionRejectRequest  = "REJECT_REQUEST"
	ActionCancelRequest  = "CANCEL_REQUEST"
	ActionReverseRequest = "REVERSE_REQUEST"
	ActionSetBudget      = "SET_BUDGET"
	ActionBudgetDebit    = "BUDGET_DEBIT"
	ActionBudgetCredit   = "BUDGET_CREDIT"
)

// Outcomes recorded in the user activity log.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDenied  = "denied"
)

// UserActivityLog records security- and workflow-relevant events for audit
// purposes. Rows are append-only and never mutated.
type UserActivityLog struct {
	Base
	ActorID    uint   `gorm:"not null;index" json:"actor_id"`
	Action     string `gorm:"not null" json:"action"`
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	Outcome    string `gorm:"not null" json:"outcome"`
	Details    string `json:"details,omitempty"`
	IPAddress  string `json:"ip_address"`
}
