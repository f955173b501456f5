package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
)

// AuthServicer defines the contract for the authentication guard: credential
// checks with lockout, and token sessions with a sliding idle timeout.
type AuthServicer interface {
	Authenticate(username, password, ipAddress string) (string, *models.Faculty, error)
	ValidateSession(token string) (*models.Faculty, error)
	Invalidate(token string) error
}

// FacultyServicer defines the contract for faculty account management.
type FacultyServicer interface {
	CreateFaculty(username, password, name string, role models.FacultyRole, department string) (*models.Faculty, error)
	GetFacultyByID(id uint) (*models.Faculty, error)
	GetFacultyByUsername(username string) (*models.Faculty, error)
	Deactivate(id uint) error
}

// SubmitRequestInput carries everything a professor provides at submission,
// including the opaque outputs of the document-analysis collaborator.
type SubmitRequestInput struct {
	ConferenceName    string
	Purpose           string
	ConferenceURL     string
	Destination       string
	City              string
	DateFrom          time.Time
	DateTo            time.Time
	IndexType         string
	RegistrationFee   int64
	PerDiem           int64
	VisaFee           int64
	ConferenceSummary string
	ResearchSummary   string
	LegitimacyScore   *float64
}

// Decision is the approver's verdict on a request under review.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// RequestFilter holds optional filter parameters for listing requests.
type RequestFilter struct {
	Status   *models.RequestStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// RequestServicer owns the travel request lifecycle. Every operation checks
// the actor's role at entry and serializes conflicting transitions on the
// request row.
type RequestServicer interface {
	Submit(actor *models.Faculty, input SubmitRequestInput) (*models.Request, error)
	BeginReview(actor *models.Faculty, requestID uint) (*models.Request, error)
	Decide(actor *models.Faculty, requestID uint, decision Decision, notes string) (*models.Request, error)
	Cancel(actor *models.Faculty, requestID uint) (*models.Request, error)
	Reverse(actor *models.Faculty, requestID uint, reason string) (*models.Request, error)
	GetByID(actor *models.Faculty, requestID uint) (*models.Request, error)
	ListByFaculty(facultyID uint, page pagination.PageRequest, filter RequestFilter) (*pagination.PageResponse[models.Request], error)
	ListPending(page pagination.PageRequest) (*pagination.PageResponse[models.Request], error)
	Search(term string, status *models.RequestStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Request], error)
	HasTraveledThisYear(facultyID uint) (bool, error)
}

// BudgetSummary is the read model for the current allocation.
type BudgetSummary struct {
	Total     int64 `json:"total"`
	Spent     int64 `json:"spent"`
	Remaining int64 `json:"remaining"`
}

// HistoryFilter holds optional filter parameters for the budget history.
type HistoryFilter struct {
	AdjustmentType *models.AdjustmentType
	ActorID        *uint
}

// LedgerServicer is the transactional budget ledger. Mutations serialize on
// the singleton budget row and append exactly one history entry in the same
// transaction as the balance change.
type LedgerServicer interface {
	EnsureBudget() error
	Summary() (*BudgetSummary, error)
	Debit(amount int64, reason string, actorID uint) (*BudgetSummary, error)
	DebitIn(tx *gorm.DB, amount int64, reason string, actorID uint) (*BudgetSummary, error)
	Credit(amount int64, reason string, actorID uint) (*BudgetSummary, error)
	CreditIn(tx *gorm.DB, amount int64, reason string, actorID uint) (*BudgetSummary, error)
	SetAllocation(newTotal int64, reason string, actorID uint) (*BudgetSummary, error)
	History(page pagination.PageRequest, filter HistoryFilter) (*pagination.PageResponse[models.BudgetHistory], error)
}

// RestrictedDateServicer is the pure validation helper consulted by the state
// machine, plus the accountant-facing administration of blocked periods.
type RestrictedDateServicer interface {
	IsBlocked(from, to time.Time) (bool, []models.RestrictedDate, error)
	List() ([]models.RestrictedDate, error)
	Create(from, to time.Time, reason string) (*models.RestrictedDate, error)
	Delete(id uint) error
}

// AuditEntry is one security- or workflow-relevant event.
type AuditEntry struct {
	ActorID    uint
	Action     string
	TargetType string
	TargetID   uint
	Outcome    string
	Details    map[string]interface{}
	IPAddress  string
}

// ActivityFilter holds optional filter parameters for the activity log.
type ActivityFilter struct {
	ActorID *uint
	Action  *string
}

// AuditServicer defines the contract for audit logging. Log is fire-and-forget
// and never fails the primary operation; RecordIn participates in the caller's
// transaction for operations whose audit entry must commit atomically with the
// state change.
type AuditServicer interface {
	Log(entry AuditEntry)
	RecordIn(tx *gorm.DB, entry AuditEntry) error
	List(page pagination.PageRequest, filter ActivityFilter) (*pagination.PageResponse[models.UserActivityLog], error)
}
