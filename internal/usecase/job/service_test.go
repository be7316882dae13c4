package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"placement-hub/internal/domain/job"
)

type mockRepo struct {
	byID map[uuid.UUID]job.Job
}

func newMockRepo(jobs ...job.Job) *mockRepo {
	m := &mockRepo{byID: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		m.byID[j.ID] = j
	}
	return m
}

func (m *mockRepo) Create(_ context.Context, j job.Job) error {
	m.byID[j.ID] = j
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *mockRepo) Update(_ context.Context, j job.Job) error {
	if _, ok := m.byID[j.ID]; !ok {
		return job.ErrNotFound
	}
	m.byID[j.ID] = j
	return nil
}

func (m *mockRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for _, j := range m.byID {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockRepo) ListActive(_ context.Context, f job.BrowseFilter) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for _, j := range m.byID {
		if j.Status != job.StatusActive {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *mockRepo) CountByDrive(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func TestCreate_Defaults(t *testing.T) {
	svc := NewService(newMockRepo())
	companyID := uuid.New()

	j, err := svc.Create(context.Background(), companyID, CreateInput{
		Title:       "Backend Engineer",
		Description: "Go services",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if j.Status != job.StatusActive {
		t.Fatalf("expected default active status, got %s", j.Status)
	}
	if j.Openings != 1 {
		t.Fatalf("expected default 1 opening, got %d", j.Openings)
	}
	if j.CompanyID != companyID {
		t.Fatalf("company not stamped")
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), uuid.New(), CreateInput{Title: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Title: "X", Description: "Y", Status: job.Status("bogus"),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad status, got %v", err)
	}
}

func TestUpdate_OwnershipAsNotFound(t *testing.T) {
	owner := uuid.New()
	j := job.Job{ID: uuid.New(), CompanyID: owner, Title: "X", Status: job.StatusActive}
	svc := NewService(newMockRepo(j))

	title := "Y"
	if _, err := svc.Update(context.Background(), uuid.New(), j.ID, UpdateInput{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign company must see not found, got %v", err)
	}

	got, err := svc.Update(context.Background(), owner, j.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Title != "Y" {
		t.Fatalf("title not updated: %q", got.Title)
	}
}

func TestUpdate_PartialPreserves(t *testing.T) {
	owner := uuid.New()
	j := job.Job{
		ID: uuid.New(), CompanyID: owner, Title: "X", Status: job.StatusActive,
		Salary: job.Salary{Min: 10, Max: 20, Currency: "INR"},
	}
	svc := NewService(newMockRepo(j))

	closed := job.StatusClosed
	got, err := svc.Update(context.Background(), owner, j.ID, UpdateInput{Status: &closed})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != job.StatusClosed {
		t.Fatalf("status not updated: %s", got.Status)
	}
	if got.Salary.Max != 20 || got.Title != "X" {
		t.Fatalf("unset fields must be preserved: %+v", got)
	}
}

func TestGetPublic_HidesInactive(t *testing.T) {
	draft := job.Job{ID: uuid.New(), CompanyID: uuid.New(), Title: "X", Status: job.StatusDraft}
	active := job.Job{ID: uuid.New(), CompanyID: uuid.New(), Title: "Y", Status: job.StatusActive}
	svc := NewService(newMockRepo(draft, active))

	if _, err := svc.GetPublic(context.Background(), draft.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft job must 404 publicly, got %v", err)
	}
	if _, err := svc.GetPublic(context.Background(), active.ID); err != nil {
		t.Fatalf("active job must be visible: %v", err)
	}
}
