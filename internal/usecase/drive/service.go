package drive

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/drive"
	"placement-hub/internal/domain/interview"
	"placement-hub/internal/domain/job"
	"placement-hub/internal/domain/report"
)

var (
	ErrNotFound     = errors.New("placement drive not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      drive.Status
	Eligibility drive.Eligibility
	CreatedBy   uuid.UUID
}

// UpdateInput is a field mask: nil leaves the stored value alone.
type UpdateInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *drive.Status
	Eligibility *drive.Eligibility
}

// Stats is the per-drive activity summary.
type Stats struct {
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
	Interviews   int64 `json:"interviews"`
	Offers       int64 `json:"offers"`
}

type Detail struct {
	Drive drive.Drive `json:"drive"`
	Stats Stats       `json:"stats"`
}

type DriveUsecase interface {
	Create(ctx context.Context, in CreateInput) (drive.Drive, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (drive.Drive, error)
	List(ctx context.Context, status drive.Status) ([]drive.Drive, error)
	Get(ctx context.Context, id uuid.UUID) (Detail, error)
	AddCompany(ctx context.Context, driveID, companyID uuid.UUID) (drive.Drive, error)
	ListJobs(ctx context.Context, driveID uuid.UUID) ([]job.Job, error)
}

type Service struct {
	drives     drive.Repository
	jobs       job.Repository
	interviews interview.Repository
	reports    report.Store
}

func NewService(drives drive.Repository, jobs job.Repository, interviews interview.Repository, reports report.Store) *Service {
	return &Service{drives: drives, jobs: jobs, interviews: interviews, reports: reports}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (drive.Drive, error) {
	if strings.TrimSpace(in.Name) == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return drive.Drive{}, ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return drive.Drive{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = drive.StatusUpcoming
	}
	if !status.Valid() {
		return drive.Drive{}, ErrInvalidInput
	}

	createdBy := in.CreatedBy
	d := drive.Drive{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
		Eligibility: in.Eligibility,
		CompanyIDs:  []uuid.UUID{},
	}
	if createdBy != uuid.Nil {
		d.CreatedBy = &createdBy
	}

	if err := s.drives.Create(ctx, d); err != nil {
		return drive.Drive{}, ErrInternal
	}

	created, err := s.drives.GetByID(ctx, d.ID)
	if err != nil {
		return drive.Drive{}, ErrInternal
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (drive.Drive, error) {
	d, err := s.drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return drive.Drive{}, ErrNotFound
		}
		return drive.Drive{}, ErrInternal
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return drive.Drive{}, ErrInvalidInput
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.StartDate != nil {
		d.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		d.EndDate = *in.EndDate
	}
	if d.EndDate.Before(d.StartDate) {
		return drive.Drive{}, ErrInvalidInput
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return drive.Drive{}, ErrInvalidInput
		}
		d.Status = *in.Status
	}
	if in.Eligibility != nil {
		d.Eligibility = *in.Eligibility
	}

	if err := s.drives.Update(ctx, d); err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return drive.Drive{}, ErrNotFound
		}
		return drive.Drive{}, ErrInternal
	}

	updated, err := s.drives.GetByID(ctx, id)
	if err != nil {
		return drive.Drive{}, ErrInternal
	}
	return updated, nil
}

func (s *Service) List(ctx context.Context, status drive.Status) ([]drive.Drive, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	out, err := s.drives.List(ctx, status)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	d, err := s.drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, ErrInternal
	}

	stats, err := s.stats(ctx, id)
	if err != nil {
		return Detail{}, ErrInternal
	}
	return Detail{Drive: d, Stats: stats}, nil
}

// AddCompany is idempotent: adding an already-attached company changes
// nothing and succeeds.
func (s *Service) AddCompany(ctx context.Context, driveID, companyID uuid.UUID) (drive.Drive, error) {
	if companyID == uuid.Nil {
		return drive.Drive{}, ErrInvalidInput
	}

	if err := s.drives.AddCompany(ctx, driveID, companyID); err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return drive.Drive{}, ErrNotFound
		}
		return drive.Drive{}, ErrInternal
	}

	d, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		return drive.Drive{}, ErrInternal
	}
	return d, nil
}

func (s *Service) ListJobs(ctx context.Context, driveID uuid.UUID) ([]job.Job, error) {
	if _, err := s.drives.GetByID(ctx, driveID); err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	out, err := s.jobs.ListActive(ctx, job.BrowseFilter{DriveID: &driveID})
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) stats(ctx context.Context, driveID uuid.UUID) (Stats, error) {
	jobs, err := s.jobs.CountByDrive(ctx, driveID)
	if err != nil {
		return Stats{}, err
	}
	applications, err := s.reports.CountApplicationsByDrive(ctx, driveID)
	if err != nil {
		return Stats{}, err
	}
	offers, err := s.reports.CountOffersByDrive(ctx, driveID)
	if err != nil {
		return Stats{}, err
	}

	appIDs, err := s.reports.ApplicationIDsByDrive(ctx, driveID)
	if err != nil {
		return Stats{}, err
	}
	var interviews int64
	if len(appIDs) > 0 {
		interviews, err = s.interviews.CountByApplications(ctx, appIDs)
		if err != nil {
			return Stats{}, err
		}
	}

	return Stats{
		Jobs:         jobs,
		Applications: applications,
		Interviews:   interviews,
		Offers:       offers,
	}, nil
}
