package services

import (
	"fmt"
	"log"
	"time"

	"github.com/localnerve/animgen/internal/config"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Generator    string            `json:"generator"`
	Renderer     string            `json:"renderer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service and its
// collaborators: database, Authorizer, and the generation/render services.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check Authorizer connectivity
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Status = "unhealthy"
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		appendError(&result, fmt.Sprintf("Authorizer ping failed: %v", err))
		log.Printf("Health check failed - authorizer ping: %v", err)
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	// Check generation service connectivity
	if err := utils.PingService(cfg.GenAPIURL, 1500*time.Millisecond); err != nil {
		result.Status = "unhealthy"
		result.Generator = "unreachable"
		result.Details["generator_error"] = err.Error()
		appendError(&result, fmt.Sprintf("Generator ping failed: %v", err))
		log.Printf("Health check failed - generator ping: %v", err)
	} else {
		result.Generator = "ok"
	}

	// Check render service connectivity
	if err := utils.PingService(cfg.RenderAPIURL, 1500*time.Millisecond); err != nil {
		result.Status = "unhealthy"
		result.Renderer = "unreachable"
		result.Details["renderer_error"] = err.Error()
		appendError(&result, fmt.Sprintf("Renderer ping failed: %v", err))
		log.Printf("Health check failed - renderer ping: %v", err)
	} else {
		result.Renderer = "ok"
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}

func appendError(result *HealthCheckResult, msg string) {
	if result.ErrorMessage == "" {
		result.ErrorMessage = msg
	} else {
		result.ErrorMessage += "; " + msg
	}
}
