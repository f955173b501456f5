package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// Context keys set by the session middleware.
const (
	ContextFacultyKey = "faculty"
	ContextTokenKey   = "sessionToken"
)

// SessionAuth validates the bearer token against the session store and puts
// the authenticated faculty member in the context. Validation refreshes the
// session's sliding idle-timeout clock.
func SessionAuth(authService services.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithAppError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		token := parts[1]
		faculty, err := authService.ValidateSession(token)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				abortWithAppError(c, appErr)
			} else {
				abortWithAppError(c, apperrors.ErrSessionInvalid)
			}
			return
		}

		c.Set(ContextFacultyKey, faculty)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose faculty role is not in the
// allowed set. It must run after SessionAuth.
func RequireRole(roles ...models.FacultyRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		faculty := FacultyFrom(c)
		if faculty == nil {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if faculty.Role == role {
				c.Next()
				return
			}
		}
		abortWithAppError(c, apperrors.ErrForbidden)
	}
}

// FacultyFrom returns the authenticated faculty member from the context, or
// nil when the session middleware has not run.
func FacultyFrom(c *gin.Context) *models.Faculty {
	value, exists := c.Get(ContextFacultyKey)
	if !exists {
		return nil
	}
	faculty, ok := value.(*models.Faculty)
	if !ok {
		return nil
	}
	return faculty
}

// TokenFrom returns the raw session token from the context.
func TokenFrom(c *gin.Context) string {
	value, exists := c.Get(ContextTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
	c.Abort()
}
