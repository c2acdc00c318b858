package application

import (
	"context"

	"github.com/alorle/tvdesk/internal/port/driven"
)

// HealthService orchestrates health checks for the application and its dependencies.
type HealthService struct {
	db driven.SettingsRepository
}

// NewHealthService creates a new health check service.
func NewHealthService(db driven.SettingsRepository) *HealthService {
	return &HealthService{db: db}
}

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Status string // "ok" or "error"
	Error  string // empty if status is "ok", otherwise contains error message
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string          // "ok" if all components are healthy, "degraded" otherwise
	DB     ComponentHealth // database health
}

// Check performs health checks on all dependencies.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status: "ok",
		DB:     ComponentHealth{Status: "ok"},
	}

	if err := s.db.Ping(ctx); err != nil {
		status.DB = ComponentHealth{
			Status: "error",
			Error:  err.Error(),
		}
		status.Status = "degraded"
	}

	return status
}
