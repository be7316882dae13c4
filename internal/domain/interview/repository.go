package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
)

var ErrNotFound = errors.New("interview not found")

type Repository interface {
	// CreateWithApplicationStatus inserts the interview and moves the parent
	// application to the given status in one storage transaction, so an
	// interview never exists against an application still in a pre-interview
	// state after a partial failure.
	CreateWithApplicationStatus(ctx context.Context, iv Interview, appStatus application.Status) error

	GetByID(ctx context.Context, id uuid.UUID) (Interview, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Interview, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Interview, error)
	ApplyPatch(ctx context.Context, id uuid.UUID, p Patch) (Interview, error)

	// ListDueForReminder returns interviews in status scheduled/confirmed whose
	// scheduledAt falls in [from, to) and whose ledger lacks the given kind.
	ListDueForReminder(ctx context.Context, from, to time.Time, kind string) ([]Interview, error)
	AppendReminder(ctx context.Context, id uuid.UUID, r Reminder) error

	CountByStatus(ctx context.Context, status Status) (int64, error)
	CountByApplications(ctx context.Context, applicationIDs []uuid.UUID) (int64, error)
}
