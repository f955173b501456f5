package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/config"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/handlers"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/middleware"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/notify"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Faculties services.FacultyServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "integration-test-secret",
		SessionIdleTimeout: 30 * time.Minute,
		LockoutThreshold:   5,
		LockoutDuration:    15 * time.Minute,
	}
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Faculty{},
		&models.Session{},
		&models.Request{},
		&models.Budget{},
		&models.BudgetHistory{},
		&models.RestrictedDate{},
		&models.UserActivityLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	cfg := testConfig()

	// Services
	auditService := services.NewAuditService(db)
	authService := services.NewAuthService(db, cfg, auditService)
	facultyService := services.NewFacultyService(db)
	ledgerService := services.NewLedgerService(db)
	restrictedDateService := services.NewRestrictedDateService(db)
	requestService := services.NewRequestService(db, ledgerService, restrictedDateService, auditService, notify.NewLogNotifier())

	if err := ledgerService.EnsureBudget(); err != nil {
		t.Fatalf("failed to ensure budget row: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	requestHandler := handlers.NewRequestHandler(requestService)
	budgetHandler := handlers.NewBudgetHandler(ledgerService, auditService)
	restrictedDateHandler := handlers.NewRestrictedDateHandler(restrictedDateService)
	activityHandler := handlers.NewActivityHandler(auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth(authService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	requests := protected.Group("/requests")
	requests.POST("", middleware.RequireRole(models.RoleProfessor), requestHandler.Submit)
	requests.GET("", requestHandler.ListOwn)
	requests.GET("/pending", middleware.RequireRole(models.RoleApprover, models.RoleAccountant), requestHandler.ListPending)
	requests.GET("/search", requestHandler.Search)
	requests.GET("/travel-status", requestHandler.TravelStatus)
	requests.GET("/:id", requestHandler.GetByID)
	requests.POST("/:id/review", middleware.RequireRole(models.RoleApprover), requestHandler.BeginReview)
	requests.POST("/:id/decision", middleware.RequireRole(models.RoleApprover), requestHandler.Decide)
	requests.POST("/:id/cancel", middleware.RequireRole(models.RoleProfessor), requestHandler.Cancel)
	requests.POST("/:id/reverse", middleware.RequireRole(models.RoleAccountant), requestHandler.Reverse)

	budget := protected.Group("/budget")
	budget.GET("", budgetHandler.GetSummary)
	budget.PUT("", middleware.RequireRole(models.RoleAccountant), budgetHandler.SetAllocation)
	budget.GET("/history", middleware.RequireRole(models.RoleAccountant, models.RoleApprover), budgetHandler.GetHistory)

	restricted := protected.Group("/restricted-dates")
	restricted.GET("", restrictedDateHandler.List)
	restricted.POST("", middleware.RequireRole(models.RoleAccountant), restrictedDateHandler.Create)
	restricted.DELETE("/:id", middleware.RequireRole(models.RoleAccountant), restrictedDateHandler.Delete)

	protected.GET("/activity", middleware.RequireRole(models.RoleAccountant, models.RoleApprover), activityHandler.List)

	return &testApp{DB: db, Router: router, Faculties: facultyService}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// provisionFaculty creates a faculty account directly, the way the provisioning
// CLI would, and returns it. Accounts cannot self-register.
func (app *testApp) provisionFaculty(t *testing.T, username string, role models.FacultyRole) *models.Faculty {
	t.Helper()
	faculty, err := app.Faculties.CreateFaculty(username, "password123", "Test "+username, role, "Computer Science")
	if err != nil {
		t.Fatalf("failed to provision faculty %s: %v", username, err)
	}
	return faculty
}

// login authenticates a provisioned account and returns the session token.
func (app *testApp) login(t *testing.T, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"password123"}`, username)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed for %s: %d %s", username, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// loginAs provisions an account with the given role and logs it in.
func (app *testApp) loginAs(t *testing.T, username string, role models.FacultyRole) string {
	t.Helper()
	app.provisionFaculty(t, username, role)
	return app.login(t, username)
}

// submitRequestBody builds a valid submission payload for a trip next month.
// Seven inclusive travel days at the given per diem.
func submitRequestBody(registrationFee, perDiem int64) string {
	from := time.Now().AddDate(0, 1, 0)
	to := from.AddDate(0, 0, 6)
	return fmt.Sprintf(`{
		"conference_name": "International Conference on Software Engineering",
		"purpose": "Presenting accepted paper",
		"destination": "Germany",
		"city": "Berlin",
		"date_from": %q,
		"date_to": %q,
		"registration_fee": %d,
		"per_diem": %d,
		"visa_fee": 0
	}`, from.Format("2006-01-02"), to.Format("2006-01-02"), registrationFee, perDiem)
}

// submitRequest submits a travel request and returns its ID.
func (app *testApp) submitRequest(t *testing.T, token string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/requests", submitRequestBody(10000, 5000), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}

// setAllocation sets the budget total as the given accountant.
func (app *testApp) setAllocation(t *testing.T, token string, total int64) {
	t.Helper()
	body := fmt.Sprintf(`{"total":%d,"reason":"Annual allocation"}`, total)
	rec := app.request("PUT", "/api/v1/budget", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set allocation failed: %d %s", rec.Code, rec.Body.String())
	}
}
