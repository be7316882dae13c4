package company

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/user"
)

type mockCompanyRepo struct {
	byID map[uuid.UUID]company.Profile
}

func newMockCompanyRepo(profiles ...company.Profile) *mockCompanyRepo {
	m := &mockCompanyRepo{byID: map[uuid.UUID]company.Profile{}}
	for _, p := range profiles {
		m.byID[p.ID] = p
	}
	return m
}

func (m *mockCompanyRepo) Create(_ context.Context, p company.Profile) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return company.Profile{}, company.ErrNotFound
	}
	return p, nil
}

func (m *mockCompanyRepo) GetByUserID(context.Context, uuid.UUID) (company.Profile, error) {
	return company.Profile{}, company.ErrNotFound
}

func (m *mockCompanyRepo) Update(_ context.Context, p company.Profile) error {
	if _, ok := m.byID[p.ID]; !ok {
		return company.ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockCompanyRepo) ListVerified(context.Context) ([]company.Profile, error) {
	out := make([]company.Profile, 0)
	for _, p := range m.byID {
		if p.Verified {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCompanyRepo) List(context.Context) ([]company.Profile, error) {
	out := make([]company.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCompanyRepo) Count(context.Context) (int64, error) { return int64(len(m.byID)), nil }

type mockUserRepo struct {
	emails map[string]bool
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.emails[email], nil
}
func (m *mockUserRepo) ExistsByRole(context.Context, user.Role) (bool, error) { return false, nil }
func (m *mockUserRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error {
	return nil
}

type mockRegistrar struct {
	users     *mockUserRepo
	companies *mockCompanyRepo
}

func (m *mockRegistrar) CreateCompanyAccount(_ context.Context, u user.User, p company.Profile) error {
	if m.users.emails[u.Email] {
		return user.ErrDuplicateEmail
	}
	m.users.emails[u.Email] = true
	m.companies.byID[p.ID] = p
	return nil
}

func newTestService(profiles ...company.Profile) (*Service, *mockCompanyRepo) {
	companies := newMockCompanyRepo(profiles...)
	users := &mockUserRepo{emails: map[string]bool{}}
	return NewService(companies, users, &mockRegistrar{users: users, companies: companies}), companies
}

func TestUpdate_FieldMask(t *testing.T) {
	p := company.Profile{ID: uuid.New(), CompanyName: "Acme", Industry: "Tech", City: "Pune"}
	svc, _ := newTestService(p)

	website := "https://acme.example"
	got, err := svc.Update(context.Background(), p.ID, UpdateInput{Website: &website})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Website != website {
		t.Fatalf("website not updated: %q", got.Website)
	}
	if got.CompanyName != "Acme" || got.City != "Pune" {
		t.Fatalf("unset fields must be preserved: %+v", got)
	}
}

func TestUpdate_EmptyNameRejected(t *testing.T) {
	p := company.Profile{ID: uuid.New(), CompanyName: "Acme"}
	svc, _ := newTestService(p)

	empty := "  "
	if _, err := svc.Update(context.Background(), p.ID, UpdateInput{CompanyName: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListPublic_VerifiedOnly(t *testing.T) {
	verified := company.Profile{ID: uuid.New(), CompanyName: "Acme", Verified: true}
	hidden := company.Profile{ID: uuid.New(), CompanyName: "Shadow"}
	svc, _ := newTestService(verified, hidden)

	out, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].ID != verified.ID {
		t.Fatalf("expected only the verified company, got %+v", out)
	}
}

func TestImport_SkipsDuplicatesAndIsolatesErrors(t *testing.T) {
	svc, companies := newTestService()

	res, err := svc.Import(context.Background(), []ImportItem{
		{Email: "a@x.com", CompanyName: "A Corp", Verified: true},
		{Email: "a@x.com", CompanyName: "A Corp Again"},
		{Email: "", CompanyName: "No Email"},
		{Email: "b@x.com", CompanyName: "B Corp"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("expected 2 imported, got %d", res.Imported)
	}
	if res.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", res.Skipped)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 item error, got %+v", res.Errors)
	}
	if len(companies.byID) != 2 {
		t.Fatalf("expected 2 profiles persisted, got %d", len(companies.byID))
	}
}

func TestImport_EmptyBatchIsInvalid(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Import(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
