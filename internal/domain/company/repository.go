package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("company profile not found")

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Update(ctx context.Context, p Profile) error
	ListVerified(ctx context.Context) ([]Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Count(ctx context.Context) (int64, error)
}
