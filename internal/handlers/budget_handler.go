package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// BudgetHandler handles budget ledger operations.
type BudgetHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{ledgerService: ledgerService, auditService: auditService}
}

// SetAllocationPayload represents the request payload for setting the allocation.
type SetAllocationPayload struct {
	Total  int64  `json:"total" binding:"min=0"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// HistoryQuery holds query parameters for the budget history.
type HistoryQuery struct {
	pagination.PageRequest
	AdjustmentType string `form:"adjustment_type" binding:"omitempty,oneof=deduction refund allocation"`
	ActorID        *uint  `form:"actor_id"`
}

// GetSummary returns the current budget allocation and spend.
// @Summary     Get budget summary
// @Description Get the current allocation, committed spend, and remainder
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BudgetSummary "Budget summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not initialized"
// @Router      /budget [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	summary, err := h.ledgerService.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SetAllocation replaces the total allocation.
// @Summary     Set budget allocation
// @Description Set the total allocation; refuses to drop below committed spend
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetAllocationPayload true "New allocation"
// @Success     200 {object} services.BudgetSummary "Updated summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an accountant"
// @Failure     409 {object} ErrorResponse "Below committed spend"
// @Router      /budget [put]
func (h *BudgetHandler) SetAllocation(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetAllocationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.ledgerService.SetAllocation(req.Total, req.Reason, faculty.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditEntry{
		ActorID:    faculty.ID,
		Action:     models.ActionSetBudget,
		TargetType: "budget",
		TargetID:   models.BudgetID,
		Outcome:    models.OutcomeSuccess,
		Details:    map[string]interface{}{"total": req.Total, "reason": req.Reason},
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, summary)
}

// GetHistory returns budget adjustments, newest first.
// @Summary     Get budget history
// @Description List budget adjustments, newest first
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       adjustment_type query string false "Filter by adjustment type"
// @Param       actor_id query int false "Filter by actor"
// @Success     200 {object} pagination.PageResponse[models.BudgetHistory] "History entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budget/history [get]
func (h *BudgetHandler) GetHistory(c *gin.Context) {
	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.HistoryFilter{ActorID: query.ActorID}
	if query.AdjustmentType != "" {
		kind := models.AdjustmentType(query.AdjustmentType)
		filter.AdjustmentType = &kind
	}

	result, err := h.ledgerService.History(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
