package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/middleware"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// FacultyResponse represents the faculty data in the response
type FacultyResponse struct {
	ID         uint               `json:"id"`
	Username   string             `json:"username"`
	Name       string             `json:"name"`
	Role       models.FacultyRole `json:"role"`
	Department string             `json:"department"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token   string          `json:"token"`
	Faculty FacultyResponse `json:"faculty"`
}

func facultyResponse(faculty *models.Faculty) FacultyResponse {
	return FacultyResponse{
		ID:         faculty.ID,
		Username:   faculty.Username,
		Name:       faculty.Name,
		Role:       faculty.Role,
		Department: faculty.Department,
	}
}

// Login handles faculty login
// @Summary     Login
// @Description Authenticate a faculty member and get a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} AuthResponse "Authenticated, session token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, faculty, err := h.authService.Authenticate(req.Username, req.Password, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:   token,
		Faculty: facultyResponse(faculty),
	})
}

// Logout invalidates the current session
// @Summary     Logout
// @Description Invalidate the current session token
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Session invalidated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFrom(c)
	if token == "" {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Invalidate(token); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProfile returns the authenticated faculty member's profile
// @Summary     Get profile
// @Description Get the authenticated faculty member's profile information
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} FacultyResponse "Faculty profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	faculty, err := getFaculty(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"faculty": facultyResponse(faculty)})
}
