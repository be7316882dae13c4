package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/job"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	Title        string
	Type         string
	Description  string
	Requirements []string
	Salary       job.Salary
	Locations    []string
	WorkMode     string
	Openings     int
	Status       job.Status
	Deadline     *time.Time
	Skills       []string
	DriveID      *uuid.UUID
}

// UpdateInput is a field mask: nil leaves the stored value alone.
type UpdateInput struct {
	Title        *string
	Type         *string
	Description  *string
	Requirements *[]string
	Salary       *job.Salary
	Locations    *[]string
	WorkMode     *string
	Openings     *int
	Status       *job.Status
	Deadline     *time.Time
	Skills       *[]string
	DriveID      *uuid.UUID
}

type JobUsecase interface {
	Create(ctx context.Context, companyID uuid.UUID, in CreateInput) (job.Job, error)
	Update(ctx context.Context, companyID, jobID uuid.UUID, in UpdateInput) (job.Job, error)
	ListOwn(ctx context.Context, companyID uuid.UUID) ([]job.Job, error)
	Browse(ctx context.Context, f job.BrowseFilter) ([]job.Job, error)
	GetPublic(ctx context.Context, id uuid.UUID) (job.Job, error)
}

type Service struct {
	jobs job.Repository
}

func NewService(jobs job.Repository) *Service {
	return &Service{jobs: jobs}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, in CreateInput) (job.Job, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return job.Job{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = job.StatusActive
	}
	if !status.Valid() {
		return job.Job{}, ErrInvalidInput
	}

	openings := in.Openings
	if openings <= 0 {
		openings = 1
	}

	j := job.Job{
		ID:           uuid.New(),
		CompanyID:    companyID,
		DriveID:      in.DriveID,
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       in.Salary,
		Locations:    in.Locations,
		WorkMode:     in.WorkMode,
		Openings:     openings,
		Status:       status,
		Deadline:     in.Deadline,
		Skills:       in.Skills,
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, companyID, jobID uuid.UUID, in UpdateInput) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.CompanyID != companyID {
		return job.Job{}, ErrNotFound
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return job.Job{}, ErrInvalidInput
		}
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Type != nil {
		j.Type = *in.Type
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.Salary != nil {
		j.Salary = *in.Salary
	}
	if in.Locations != nil {
		j.Locations = *in.Locations
	}
	if in.WorkMode != nil {
		j.WorkMode = *in.WorkMode
	}
	if in.Openings != nil {
		if *in.Openings <= 0 {
			return job.Job{}, ErrInvalidInput
		}
		j.Openings = *in.Openings
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return job.Job{}, ErrInvalidInput
		}
		j.Status = *in.Status
	}
	if in.Deadline != nil {
		j.Deadline = in.Deadline
	}
	if in.Skills != nil {
		j.Skills = *in.Skills
	}
	if in.DriveID != nil {
		j.DriveID = in.DriveID
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	updated, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	return updated, nil
}

func (s *Service) ListOwn(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	out, err := s.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Browse(ctx context.Context, f job.BrowseFilter) ([]job.Job, error) {
	out, err := s.jobs.ListActive(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// GetPublic hides non-active jobs from the public catalog.
func (s *Service) GetPublic(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.Status != job.StatusActive {
		return job.Job{}, ErrNotFound
	}
	return j, nil
}
