// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("faculty_role", validateFacultyRole)
		_ = v.RegisterValidation("decision", validateDecision)
		_ = v.RegisterValidation("request_status", validateRequestStatus)
	}
}

// validateFacultyRole checks that the value is a known faculty role.
func validateFacultyRole(fl validator.FieldLevel) bool {
	switch models.FacultyRole(fl.Field().String()) {
	case models.RoleProfessor, models.RoleAccountant, models.RoleApprover:
		return true
	}
	return false
}

// validateDecision checks that the value is a valid review decision.
func validateDecision(fl validator.FieldLevel) bool {
	switch services.Decision(fl.Field().String()) {
	case services.DecisionApprove, services.DecisionReject:
		return true
	}
	return false
}

// validateRequestStatus checks that the value is a known request status.
func validateRequestStatus(fl validator.FieldLevel) bool {
	switch models.RequestStatus(fl.Field().String()) {
	case models.StatusDraft, models.StatusSubmitted, models.StatusUnderReview,
		models.StatusApproved, models.StatusRejected, models.StatusCancelled:
		return true
	}
	return false
}
