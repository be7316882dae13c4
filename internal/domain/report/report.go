// Package report holds the read models behind the admin reporting surface.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MonthlyTrend struct {
	Month  string `json:"month"`
	Count  int64  `json:"count"`
	Placed int64  `json:"placed"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type ExportFilter struct {
	DriveID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type Store interface {
	CountApplications(ctx context.Context) (int64, error)
	CountApplicationsWithStatus(ctx context.Context, status application.Status) (int64, error)
	StatusBreakdown(ctx context.Context) ([]StatusCount, error)
	RecentApplications(ctx context.Context, limit int) ([]application.Application, error)

	CountApplicationsByDrive(ctx context.Context, driveID uuid.UUID) (int64, error)
	CountOffersByDrive(ctx context.Context, driveID uuid.UUID) (int64, error)
	StatusBreakdownByDrive(ctx context.Context, driveID uuid.UUID) ([]StatusCount, error)
	ApplicationIDsByDrive(ctx context.Context, driveID uuid.UUID) ([]uuid.UUID, error)

	ExportApplications(ctx context.Context, f ExportFilter) ([]application.Application, error)
	MonthlyTrends(ctx context.Context) ([]MonthlyTrend, error)
	PlacementsByDepartment(ctx context.Context) ([]DepartmentCount, error)
}
