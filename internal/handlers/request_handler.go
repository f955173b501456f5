package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// RequestHandler handles travel request lifecycle operations.
type RequestHandler struct {
	requestService services.RequestServicer
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService services.RequestServicer) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// SubmitRequestPayload represents the request payload for submitting a travel request.
type SubmitRequestPayload struct {
	ConferenceName    string   `json:"conference_name" binding:"required,min=1,max=255"`
	Purpose           string   `json:"purpose" binding:"max=255"`
	ConferenceURL     string   `json:"conference_url" binding:"omitempty,url"`
	Destination       string   `json:"destination" binding:"required,min=1,max=100"`
	City              string   `json:"city" binding:"max=100"`
	DateFrom          string   `json:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo            string   `json:"date_to" binding:"required,datetime=2006-01-02"`
	IndexType         string   `json:"index_type" binding:"max=50"`
	RegistrationFee   int64    `json:"registration_fee" binding:"min=0"`
	PerDiem           int64    `json:"per_diem" binding:"min=0"`
	VisaFee           int64    `json:"visa_fee" binding:"min=0"`
	ConferenceSummary string   `json:"conference_summary"`
	ResearchSummary   string   `json:"research_summary"`
	LegitimacyScore   *float64 `json:"legitimacy_score"`
}

// DecisionPayload represents the request payload for deciding a request.
type DecisionPayload struct {
	Decision string `json:"decision" binding:"required,decision"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// ReversePayload represents the request payload for reversing an approval.
type ReversePayload struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ListRequestsQuery holds query parameters for listing requests.
type ListRequestsQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,request_status"`
}

// Submit handles the submission of a new travel request.
// @Summary     Submit a travel request
// @Description Submit a new conference travel request for review
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubmitRequestPayload true "Travel request details"
// @Success     201 {object} models.Request "Request submitted"
// @Failure     400 {object} ErrorResponse "Invalid input or restricted period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a professor"
// @Router      /requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)

	request, err := h.requestService.Submit(faculty, services.SubmitRequestInput{
		ConferenceName:    req.ConferenceName,
		Purpose:           req.Purpose,
		ConferenceURL:     req.ConferenceURL,
		Destination:       req.Destination,
		City:              req.City,
		DateFrom:          dateFrom,
		DateTo:            dateTo,
		IndexType:         req.IndexType,
		RegistrationFee:   req.RegistrationFee,
		PerDiem:           req.PerDiem,
		VisaFee:           req.VisaFee,
		ConferenceSummary: req.ConferenceSummary,
		ResearchSummary:   req.ResearchSummary,
		LegitimacyScore:   req.LegitimacyScore,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// BeginReview claims a submitted request for review.
// @Summary     Begin review
// @Description Claim a submitted request for review by the calling approver
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Success     200 {object} models.Request "Request under review"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an approver"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     409 {object} ErrorResponse "Already under review or decided"
// @Router      /requests/{id}/review [post]
func (h *RequestHandler) BeginReview(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.requestService.BeginReview(faculty, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Decide resolves a request under review.
// @Summary     Decide a request
// @Description Approve or reject a request under review; approval debits the budget atomically
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Param       request body DecisionPayload true "Decision"
// @Success     200 {object} models.Request "Decision recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an approver"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     409 {object} ErrorResponse "Already decided or insufficient budget"
// @Router      /requests/{id}/decision [post]
func (h *RequestHandler) Decide(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DecisionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.requestService.Decide(faculty, id, services.Decision(req.Decision), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Cancel withdraws a request before a decision.
// @Summary     Cancel a request
// @Description Withdraw an undecided request; only the owning professor may cancel
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Success     200 {object} models.Request "Request cancelled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     409 {object} ErrorResponse "Already decided"
// @Router      /requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.requestService.Cancel(faculty, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Reverse administratively rolls back an approved request.
// @Summary     Reverse an approval
// @Description Credit an approved request's cost back to the budget and cancel it
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Param       request body ReversePayload true "Reversal reason"
// @Success     200 {object} models.Request "Approval reversed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an accountant"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     409 {object} ErrorResponse "Request not approved"
// @Router      /requests/{id}/reverse [post]
func (h *RequestHandler) Reverse(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReversePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.requestService.Reverse(faculty, id, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// GetByID returns a single request.
// @Summary     Get a request
// @Description Get a travel request; professors only see their own
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Success     200 {object} models.Request "Request"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Router      /requests/{id} [get]
func (h *RequestHandler) GetByID(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.requestService.GetByID(faculty, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListOwn returns the caller's requests.
// @Summary     List own requests
// @Description List the caller's travel requests, newest first
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Success     200 {object} pagination.PageResponse[models.Request] "Requests"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.RequestFilter{}
	if query.Status != "" {
		status := models.RequestStatus(query.Status)
		filter.Status = &status
	}

	result, err := h.requestService.ListByFaculty(faculty.ID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPending returns requests awaiting review.
// @Summary     List pending requests
// @Description List submitted and under-review requests, oldest first
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Request] "Pending requests"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /requests/pending [get]
func (h *RequestHandler) ListPending(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.requestService.ListPending(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TravelStatus reports whether the caller already traveled this year.
// @Summary     Get travel status
// @Description Report whether the caller already has an approved trip this calendar year
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Travel status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /requests/travel-status [get]
func (h *RequestHandler) TravelStatus(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	traveled, err := h.requestService.HasTraveledThisYear(faculty.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_traveled_this_year": traveled})
}

// Search finds requests by conference name, destination, or city.
// @Summary     Search requests
// @Description Search requests by conference name, destination, or city
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search term"
// @Param       status query string false "Filter by status"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Request] "Matching requests"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /requests/search [get]
func (h *RequestHandler) Search(c *gin.Context) {
	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	term := c.Query("q")
	if term == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "search term is required"))
		return
	}

	var status *models.RequestStatus
	if query.Status != "" {
		s := models.RequestStatus(query.Status)
		status = &s
	}

	result, err := h.requestService.Search(term, status, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
