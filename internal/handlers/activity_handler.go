package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// ActivityHandler exposes the user activity log to accountants.
type ActivityHandler struct {
	auditService services.AuditServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(auditService services.AuditServicer) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// ActivityQuery holds query parameters for the activity log.
type ActivityQuery struct {
	pagination.PageRequest
	ActorID *uint  `form:"actor_id"`
	Action  string `form:"action"`
}

// List returns activity log entries, newest first.
// @Summary     List activity log
// @Description List user activity entries, newest first
// @Tags        activity
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       actor_id query int false "Filter by actor"
// @Param       action query string false "Filter by action"
// @Success     200 {object} pagination.PageResponse[models.UserActivityLog] "Activity entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	var query ActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ActivityFilter{ActorID: query.ActorID}
	if query.Action != "" {
		filter.Action = &query.Action
	}

	result, err := h.auditService.List(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
