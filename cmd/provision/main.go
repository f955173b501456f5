package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/database"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
)

// Faculty accounts are provisioned by an administrator, not self-registered,
// so account creation lives in this CLI rather than the HTTP surface.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Provision error: %v", err)
	}
}

func run() error {
	username := flag.String("username", "", "login username (required)")
	password := flag.String("password", "", "initial password (required)")
	name := flag.String("name", "", "full name (required)")
	role := flag.String("role", string(models.RoleProfessor), "role: professor, accountant, or approver")
	department := flag.String("department", "", "department name")
	deactivate := flag.Bool("deactivate", false, "deactivate the account with the given username instead of creating one")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		return fmt.Errorf("username is required")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	facultyService := services.NewFacultyService(dbManager.DB())

	if *deactivate {
		faculty, err := facultyService.GetFacultyByUsername(*username)
		if err != nil {
			return fmt.Errorf("failed to look up faculty: %w", err)
		}
		if err := facultyService.Deactivate(faculty.ID); err != nil {
			return fmt.Errorf("failed to deactivate faculty: %w", err)
		}
		logger.Get().Infof("Deactivated faculty %s (ID %d)", faculty.Username, faculty.ID)
		return nil
	}

	if *password == "" || *name == "" {
		flag.Usage()
		return fmt.Errorf("password and name are required")
	}

	faculty, err := facultyService.CreateFaculty(*username, *password, *name, models.FacultyRole(*role), *department)
	if err != nil {
		return fmt.Errorf("failed to create faculty: %w", err)
	}

	logger.Get().Infof("Created faculty %s (ID %d, role %s)", faculty.Username, faculty.ID, faculty.Role)
	return nil
}
