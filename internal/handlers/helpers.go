package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/middleware"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
)

// getFaculty extracts the authenticated faculty member from the Gin context.
// Returns ErrUnauthorized if not present.
func getFaculty(c *gin.Context) (*models.Faculty, error) {
	faculty := middleware.FacultyFrom(c)
	if faculty == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return faculty, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
