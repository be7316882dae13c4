package student

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("student profile not found")
	ErrDuplicateRollNumber = errors.New("roll number already taken")
)

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (Profile, error)
	Update(ctx context.Context, p Profile) error
	List(ctx context.Context) ([]Profile, error)
	Count(ctx context.Context) (int64, error)
}
