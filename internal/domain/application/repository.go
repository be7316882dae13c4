package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("application not found")

	// ErrDuplicate surfaces the (student, job) uniqueness constraint. The
	// storage layer must map its unique-violation error to this value so a
	// concurrent double submit cannot slip past an application-level check.
	ErrDuplicate = errors.New("application already exists")
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	ApplyStatusPatch(ctx context.Context, id uuid.UUID, p StatusPatch) (Application, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (Application, error)
}
