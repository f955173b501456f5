package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestFaculty creates an active faculty member with a unique username
// and the password "password123".
func CreateTestFaculty(t *testing.T, db *gorm.DB, role models.FacultyRole) *models.Faculty {
	t.Helper()
	username := fmt.Sprintf("faculty%d", nextID())
	return CreateTestFacultyWithUsername(t, db, username, role)
}

// CreateTestFacultyWithUsername creates a faculty member with the given username.
func CreateTestFacultyWithUsername(t *testing.T, db *gorm.DB, username string, role models.FacultyRole) *models.Faculty {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	faculty := &models.Faculty{
		Username:     username,
		Name:         fmt.Sprintf("Test Faculty %s", username),
		Role:         role,
		PasswordHash: string(hash),
		Department:   "Computer Science",
		IsActive:     true,
	}
	if err := db.Create(faculty).Error; err != nil {
		t.Fatalf("failed to create test faculty: %v", err)
	}
	return faculty
}

// CreateTestBudget replaces the singleton budget row with the given amounts (in cents).
func CreateTestBudget(t *testing.T, db *gorm.DB, total, spent int64) *models.Budget {
	t.Helper()

	if err := db.Unscoped().Where("id = ?", models.BudgetID).Delete(&models.Budget{}).Error; err != nil {
		t.Fatalf("failed to clear budget row: %v", err)
	}
	budget := &models.Budget{
		Base:        models.Base{ID: models.BudgetID},
		TotalAmount: total,
		SpentAmount: spent,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestRequest creates a request in the given status with a week-long
// trip next month. Costs: registration 10000, per diem 5000/day, no visa fee.
func CreateTestRequest(t *testing.T, db *gorm.DB, facultyID uint, status models.RequestStatus) *models.Request {
	t.Helper()

	from := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	request := &models.Request{
		ReferenceID:     uuid.New(),
		FacultyID:       facultyID,
		ConferenceName:  fmt.Sprintf("Test Conference %d", nextID()),
		Purpose:         "Presenting accepted paper",
		ConferenceURL:   "https://conf.example.org",
		Destination:     "Germany",
		City:            "Berlin",
		DateFrom:        from,
		DateTo:          from.AddDate(0, 0, 6),
		IndexType:       "scopus",
		RegistrationFee: 10000,
		PerDiem:         5000,
		VisaFee:         0,
		Status:          status,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create test request: %v", err)
	}
	return request
}

// CreateTestRestrictedDate blocks the given period.
func CreateTestRestrictedDate(t *testing.T, db *gorm.DB, start, end time.Time) *models.RestrictedDate {
	t.Helper()

	rd := &models.RestrictedDate{
		StartDate: start,
		EndDate:   end,
		Reason:    fmt.Sprintf("Test blackout %d", nextID()),
	}
	if err := db.Create(rd).Error; err != nil {
		t.Fatalf("failed to create test restricted date: %v", err)
	}
	return rd
}
