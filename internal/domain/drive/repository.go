package drive

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("placement drive not found")

type Repository interface {
	Create(ctx context.Context, d Drive) error
	GetByID(ctx context.Context, id uuid.UUID) (Drive, error)
	Update(ctx context.Context, d Drive) error
	List(ctx context.Context, status Status) ([]Drive, error)
	AddCompany(ctx context.Context, driveID, companyID uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
