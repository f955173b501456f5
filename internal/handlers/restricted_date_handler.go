package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// RestrictedDateHandler handles blocked travel period administration.
type RestrictedDateHandler struct {
	restrictedDateService services.RestrictedDateServicer
}

// NewRestrictedDateHandler creates a new RestrictedDateHandler.
func NewRestrictedDateHandler(restrictedDateService services.RestrictedDateServicer) *RestrictedDateHandler {
	return &RestrictedDateHandler{restrictedDateService: restrictedDateService}
}

// CreateRestrictedDatePayload represents the request payload for blocking a period.
type CreateRestrictedDatePayload struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"required,min=1,max=255"`
}

// List returns all restricted periods.
// @Summary     List restricted dates
// @Description List all blocked travel periods
// @Tags        restricted-dates
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.RestrictedDate "Restricted periods"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /restricted-dates [get]
func (h *RestrictedDateHandler) List(c *gin.Context) {
	periods, err := h.restrictedDateService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restricted_dates": periods})
}

// Create blocks a new travel period.
// @Summary     Create restricted date
// @Description Block a travel period
// @Tags        restricted-dates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRestrictedDatePayload true "Period to block"
// @Success     201 {object} models.RestrictedDate "Period blocked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an accountant"
// @Router      /restricted-dates [post]
func (h *RestrictedDateHandler) Create(c *gin.Context) {
	var req CreateRestrictedDatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	from, _ := time.Parse("2006-01-02", req.StartDate)
	to, _ := time.Parse("2006-01-02", req.EndDate)

	period, err := h.restrictedDateService.Create(from, to, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, period)
}

// Delete unblocks a travel period.
// @Summary     Delete restricted date
// @Description Remove a blocked travel period
// @Tags        restricted-dates
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Restricted date ID"
// @Success     204 "Period removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an accountant"
// @Failure     404 {object} ErrorResponse "Restricted date not found"
// @Router      /restricted-dates/{id} [delete]
func (h *RestrictedDateHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.restrictedDateService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
