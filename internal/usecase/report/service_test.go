package report

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/drive"
	"placement-hub/internal/domain/report"
	"placement-hub/internal/domain/student"
)

type mockStore struct {
	applications int64
	placed       int64
	breakdown    []report.StatusCount
}

func (m *mockStore) CountApplications(context.Context) (int64, error) { return m.applications, nil }
func (m *mockStore) CountApplicationsWithStatus(context.Context, application.Status) (int64, error) {
	return m.placed, nil
}
func (m *mockStore) StatusBreakdown(context.Context) ([]report.StatusCount, error) {
	return m.breakdown, nil
}
func (m *mockStore) RecentApplications(context.Context, int) ([]application.Application, error) {
	return []application.Application{}, nil
}
func (m *mockStore) CountApplicationsByDrive(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockStore) CountOffersByDrive(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (m *mockStore) StatusBreakdownByDrive(context.Context, uuid.UUID) ([]report.StatusCount, error) {
	return nil, nil
}
func (m *mockStore) ApplicationIDsByDrive(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (m *mockStore) ExportApplications(context.Context, report.ExportFilter) ([]application.Application, error) {
	return nil, nil
}
func (m *mockStore) MonthlyTrends(context.Context) ([]report.MonthlyTrend, error) {
	return nil, nil
}
func (m *mockStore) PlacementsByDepartment(context.Context) ([]report.DepartmentCount, error) {
	return nil, nil
}

type mockStudents struct{ n int64 }

func (m *mockStudents) Create(context.Context, student.Profile) error { return nil }
func (m *mockStudents) GetByID(context.Context, uuid.UUID) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}
func (m *mockStudents) GetByUserID(context.Context, uuid.UUID) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}
func (m *mockStudents) GetByRollNumber(context.Context, string) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}
func (m *mockStudents) Update(context.Context, student.Profile) error   { return nil }
func (m *mockStudents) List(context.Context) ([]student.Profile, error) { return nil, nil }
func (m *mockStudents) Count(context.Context) (int64, error)            { return m.n, nil }

type mockCompanies struct{ n int64 }

func (m *mockCompanies) Create(context.Context, company.Profile) error { return nil }
func (m *mockCompanies) GetByID(context.Context, uuid.UUID) (company.Profile, error) {
	return company.Profile{}, company.ErrNotFound
}
func (m *mockCompanies) GetByUserID(context.Context, uuid.UUID) (company.Profile, error) {
	return company.Profile{}, company.ErrNotFound
}
func (m *mockCompanies) Update(context.Context, company.Profile) error { return nil }
func (m *mockCompanies) ListVerified(context.Context) ([]company.Profile, error) {
	return nil, nil
}
func (m *mockCompanies) List(context.Context) ([]company.Profile, error) { return nil, nil }
func (m *mockCompanies) Count(context.Context) (int64, error)            { return m.n, nil }

type mockDrives struct{}

func (m *mockDrives) Create(context.Context, drive.Drive) error { return nil }
func (m *mockDrives) GetByID(context.Context, uuid.UUID) (drive.Drive, error) {
	return drive.Drive{}, drive.ErrNotFound
}
func (m *mockDrives) Update(context.Context, drive.Drive) error { return nil }
func (m *mockDrives) List(context.Context, drive.Status) ([]drive.Drive, error) {
	return nil, nil
}
func (m *mockDrives) AddCompany(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (m *mockDrives) CountByStatus(context.Context, drive.Status) (int64, error) {
	return 0, nil
}

func TestDashboard(t *testing.T) {
	store := &mockStore{
		applications: 40,
		placed:       25,
		breakdown:    []report.StatusCount{{Status: "submitted", Count: 15}, {Status: "offer_accepted", Count: 25}},
	}
	svc := NewService(store, &mockStudents{n: 100}, &mockCompanies{n: 8}, &mockDrives{}, nil, log.New(io.Discard, "", 0))

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.TotalStudents != 100 || d.TotalCompanies != 8 || d.TotalApplications != 40 {
		t.Fatalf("counts wrong: %+v", d)
	}
	if d.PlacementRate != 25.0 {
		t.Fatalf("expected 25%% placement rate, got %v", d.PlacementRate)
	}
	if len(d.StatusBreakdown) != 2 {
		t.Fatalf("breakdown missing: %+v", d.StatusBreakdown)
	}
}

func TestPlacementRate(t *testing.T) {
	cases := []struct {
		placed, total int64
		want          float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33.33},
		{50, 100, 50},
		{100, 100, 100},
	}
	for _, c := range cases {
		if got := placementRate(c.placed, c.total); got != c.want {
			t.Fatalf("placementRate(%d, %d) = %v, want %v", c.placed, c.total, got, c.want)
		}
	}
}
