package report

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/drive"
	"placement-hub/internal/domain/report"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/infrastructure/cache"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

const (
	dashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 2 * time.Minute
)

type Dashboard struct {
	TotalStudents      int64                     `json:"totalStudents"`
	TotalCompanies     int64                     `json:"totalCompanies"`
	TotalApplications  int64                     `json:"totalApplications"`
	PlacedStudents     int64                     `json:"placedStudents"`
	PlacementRate      float64                   `json:"placementRate"`
	StatusBreakdown    []report.StatusCount      `json:"statusBreakdown"`
	RecentApplications []application.Application `json:"recentApplications"`
}

type DriveReport struct {
	Drive           drive.Drive          `json:"drive"`
	Applications    int64                `json:"applications"`
	Offers          int64                `json:"offers"`
	StatusBreakdown []report.StatusCount `json:"statusBreakdown"`
}

type Trends struct {
	Monthly      []report.MonthlyTrend    `json:"monthly"`
	ByDepartment []report.DepartmentCount `json:"byDepartment"`
}

type ReportUsecase interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	DriveReport(ctx context.Context, driveID uuid.UUID) (DriveReport, error)
	Export(ctx context.Context, f report.ExportFilter) ([]application.Application, error)
	Trends(ctx context.Context) (Trends, error)
}

type Service struct {
	store     report.Store
	students  student.Repository
	companies company.Repository
	drives    drive.Repository
	cache     *cache.Redis
	logger    *log.Logger
}

func NewService(store report.Store, students student.Repository, companies company.Repository, drives drive.Repository, c *cache.Redis, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:     store,
		students:  students,
		companies: companies,
		drives:    drives,
		cache:     c,
		logger:    logger,
	}
}

// Dashboard serves from Redis when a fresh copy exists; the cache degrades to
// a recompute when Redis is down.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var cached Dashboard
	if hit, _ := s.cache.GetJSON(ctx, dashboardCacheKey, &cached); hit {
		return cached, nil
	}

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	totalCompanies, err := s.companies.Count(ctx)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	totalApplications, err := s.store.CountApplications(ctx)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	placed, err := s.store.CountApplicationsWithStatus(ctx, application.StatusOfferAccepted)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	breakdown, err := s.store.StatusBreakdown(ctx)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	recent, err := s.store.RecentApplications(ctx, 10)
	if err != nil {
		return Dashboard{}, ErrInternal
	}

	d := Dashboard{
		TotalStudents:      totalStudents,
		TotalCompanies:     totalCompanies,
		TotalApplications:  totalApplications,
		PlacedStudents:     placed,
		PlacementRate:      placementRate(placed, totalStudents),
		StatusBreakdown:    breakdown,
		RecentApplications: recent,
	}

	if err := s.cache.SetJSON(ctx, dashboardCacheKey, d, dashboardCacheTTL); err != nil {
		s.logger.Printf("[Reports] Caching dashboard failed: %v", err)
	}
	return d, nil
}

func (s *Service) DriveReport(ctx context.Context, driveID uuid.UUID) (DriveReport, error) {
	d, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return DriveReport{}, ErrNotFound
		}
		return DriveReport{}, ErrInternal
	}

	applications, err := s.store.CountApplicationsByDrive(ctx, driveID)
	if err != nil {
		return DriveReport{}, ErrInternal
	}
	offers, err := s.store.CountOffersByDrive(ctx, driveID)
	if err != nil {
		return DriveReport{}, ErrInternal
	}
	breakdown, err := s.store.StatusBreakdownByDrive(ctx, driveID)
	if err != nil {
		return DriveReport{}, ErrInternal
	}

	return DriveReport{
		Drive:           d,
		Applications:    applications,
		Offers:          offers,
		StatusBreakdown: breakdown,
	}, nil
}

func (s *Service) Export(ctx context.Context, f report.ExportFilter) ([]application.Application, error) {
	out, err := s.store.ExportApplications(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Trends(ctx context.Context) (Trends, error) {
	monthly, err := s.store.MonthlyTrends(ctx)
	if err != nil {
		return Trends{}, ErrInternal
	}
	byDept, err := s.store.PlacementsByDepartment(ctx)
	if err != nil {
		return Trends{}, ErrInternal
	}
	return Trends{Monthly: monthly, ByDepartment: byDept}, nil
}

func placementRate(placed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(placed)/float64(total)*10000) / 100
}
