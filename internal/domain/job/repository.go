package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// BrowseFilter narrows the public active-job listing.
type BrowseFilter struct {
	DriveID *uuid.UUID
	Type    string
	Search  string
}

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, j Job) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error)
	ListActive(ctx context.Context, f BrowseFilter) ([]Job, error)
	CountByDrive(ctx context.Context, driveID uuid.UUID) (int64, error)
}
