package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/config"
	apperrors "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/errors"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
)

// SessionClaims represents the claims in a session token.
type SessionClaims struct {
	FacultyID uint               `json:"faculty_id"`
	Role      models.FacultyRole `json:"role"`
	jwt.RegisteredClaims
}

// authService implements the authentication guard: credential verification
// with per-identity lockout, and server-side sessions with a sliding idle
// timeout. The token is a signed JWT; expiry and revocation live on the
// session row and are checked lazily at validation time.
type authService struct {
	db    *gorm.DB
	cfg   *config.Config
	audit AuditServicer
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, cfg *config.Config, audit AuditServicer) AuthServicer {
	return &authService{db: db, cfg: cfg, audit: audit}
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func (s *authService) signToken(faculty *models.Faculty, now time.Time) (string, error) {
	claims := &SessionClaims{
		FacultyID: faculty.ID,
		Role:      faculty.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "fcts-api",
			Subject:   fmt.Sprintf("%d", faculty.ID),
			ID:        fmt.Sprintf("%d-%d", faculty.ID, now.UnixNano()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) parseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrSessionInvalid
	}
	return claims, nil
}

// Authenticate verifies credentials for a faculty member. Failed attempts
// increment a per-identity counter under row-level serialization; reaching
// the lockout threshold locks the account for the configured duration, during
// which every attempt fails regardless of credential correctness. A success
// resets the counter and issues a token backed by a session row.
func (s *authService) Authenticate(username, password, ipAddress string) (string, *models.Faculty, error) {
	if username == "" || password == "" {
		return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	now := time.Now()
	var faculty models.Faculty
	var authErr *apperrors.AppError
	var lockedOut bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withUpdateLock(tx).
			Where("username = ? AND is_active = ?", strings.ToLower(username), true).
			First(&faculty).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				authErr = apperrors.ErrInvalidCredentials
				return nil
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Active lockout rejects even a correct credential.
		if faculty.IsLocked(now) {
			authErr = apperrors.ErrAccountLocked
			return nil
		}

		// Expired lockout clears the slate before this attempt is judged.
		if faculty.LockedUntil != nil {
			faculty.LockedUntil = nil
			faculty.FailedLoginAttempts = 0
		}

		if bcrypt.CompareHashAndPassword([]byte(faculty.PasswordHash), []byte(password)) != nil {
			faculty.FailedLoginAttempts++
			updates := map[string]interface{}{"failed_login_attempts": faculty.FailedLoginAttempts, "locked_until": nil}
			if faculty.FailedLoginAttempts >= s.cfg.LockoutThreshold {
				until := now.Add(s.cfg.LockoutDuration)
				faculty.LockedUntil = &until
				faculty.FailedLoginAttempts = 0
				updates["failed_login_attempts"] = 0
				updates["locked_until"] = until
				lockedOut = true
			}
			if err := tx.Model(&models.Faculty{}).Where("id = ?", faculty.ID).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			authErr = apperrors.ErrInvalidCredentials
			return nil
		}

		// Success resets the failure counter.
		if err := tx.Model(&models.Faculty{}).Where("id = ?", faculty.ID).Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
			"last_login_at":         now,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		faculty.FailedLoginAttempts = 0
		faculty.LockedUntil = nil
		faculty.LastLoginAt = &now
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	if authErr != nil {
		if faculty.ID != 0 {
			s.audit.Log(AuditEntry{
				ActorID:    faculty.ID,
				Action:     models.ActionLoginFailed,
				TargetType: "faculty",
				TargetID:   faculty.ID,
				Outcome:    models.OutcomeDenied,
				IPAddress:  ipAddress,
			})
			if lockedOut {
				s.audit.Log(AuditEntry{
					ActorID:    faculty.ID,
					Action:     models.ActionAccountLocked,
					TargetType: "faculty",
					TargetID:   faculty.ID,
					Outcome:    models.OutcomeDenied,
					Details:    map[string]interface{}{"locked_until": faculty.LockedUntil},
					IPAddress:  ipAddress,
				})
			}
		} else {
			logger.Get().Warnw("login attempt for unknown identity", "username", username, "ip", ipAddress)
		}
		return "", nil, authErr
	}

	token, err := s.signToken(&faculty, now)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	session := &models.Session{
		FacultyID:      faculty.ID,
		TokenHash:      HashToken(token),
		LastActivityAt: now,
	}
	if err := s.db.Create(session).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(AuditEntry{
		ActorID:    faculty.ID,
		Action:     models.ActionLogin,
		TargetType: "faculty",
		TargetID:   faculty.ID,
		Outcome:    models.OutcomeSuccess,
		IPAddress:  ipAddress,
	})

	return token, &faculty, nil
}

// ValidateSession checks a token against its session row. Idle expiry uses a
// sliding window: each successful validation refreshes the activity clock.
// A stale refresh under concurrent validations is last-writer-wins, which is
// acceptable since validation never mutates identity data.
func (s *authService) ValidateSession(token string) (*models.Faculty, error) {
	if _, err := s.parseToken(token); err != nil {
		return nil, err
	}

	var session models.Session
	if err := s.db.Preload("Faculty").
		Where("token_hash = ?", HashToken(token)).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionInvalid
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if session.RevokedAt != nil {
		return nil, apperrors.ErrSessionInvalid
	}

	now := time.Now()
	if now.Sub(session.LastActivityAt) > s.cfg.SessionIdleTimeout {
		// Lazy expiry: mark the session dead instead of sweeping in the background.
		if err := s.db.Model(&models.Session{}).Where("id = ?", session.ID).
			Update("revoked_at", now).Error; err != nil {
			logger.Get().Warnw("failed to revoke expired session", "error", err, "session_id", session.ID)
		}
		return nil, apperrors.ErrSessionExpired
	}

	if !session.Faculty.IsActive {
		return nil, apperrors.ErrSessionInvalid
	}

	if err := s.db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("last_activity_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	faculty := session.Faculty
	return &faculty, nil
}

// Invalidate revokes the session backing a token. Logging out an unknown or
// already revoked token is a no-op.
func (s *authService) Invalidate(token string) error {
	var session models.Session
	err := s.db.Where("token_hash = ? AND revoked_at IS NULL", HashToken(token)).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("revoked_at", time.Now()).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(AuditEntry{
		ActorID:    session.FacultyID,
		Action:     models.ActionLogout,
		TargetType: "faculty",
		TargetID:   session.FacultyID,
		Outcome:    models.OutcomeSuccess,
	})
	return nil
}
