package student

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/student"
)

type mockRepo struct {
	byID   map[uuid.UUID]student.Profile
	byRoll map[string]student.Profile
}

func newMockRepo(profiles ...student.Profile) *mockRepo {
	m := &mockRepo{byID: map[uuid.UUID]student.Profile{}, byRoll: map[string]student.Profile{}}
	for _, p := range profiles {
		m.byID[p.ID] = p
		if p.RollNumber != "" {
			m.byRoll[p.RollNumber] = p
		}
	}
	return m
}

func (m *mockRepo) Create(_ context.Context, p student.Profile) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (student.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return student.Profile{}, student.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByUserID(context.Context, uuid.UUID) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}

func (m *mockRepo) GetByRollNumber(_ context.Context, roll string) (student.Profile, error) {
	p, ok := m.byRoll[roll]
	if !ok {
		return student.Profile{}, student.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p student.Profile) error {
	if _, ok := m.byID[p.ID]; !ok {
		return student.ErrNotFound
	}
	m.byID[p.ID] = p
	if p.RollNumber != "" {
		m.byRoll[p.RollNumber] = p
	}
	return nil
}

func (m *mockRepo) List(context.Context) ([]student.Profile, error) {
	out := make([]student.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) Count(context.Context) (int64, error) { return int64(len(m.byID)), nil }

func seedProfile() student.Profile {
	return student.Profile{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		FullName:   "Asha Verma",
		RollNumber: "CS2021001",
		Department: "CSE",
		Phone:      "12345",
	}
}

func TestUpdate_FieldMask(t *testing.T) {
	p := seedProfile()
	svc := NewService(newMockRepo(p))

	name := "Asha V"
	skills := []string{"go", "sql"}
	got, err := svc.Update(context.Background(), p.ID, UpdateInput{
		FullName: &name,
		Skills:   &skills,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.FullName != "Asha V" {
		t.Fatalf("full name not updated: %q", got.FullName)
	}
	if len(got.Skills) != 2 {
		t.Fatalf("skills not updated: %v", got.Skills)
	}
	if got.Department != "CSE" || got.Phone != "12345" {
		t.Fatalf("unset fields must be preserved: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Update(context.Background(), uuid.New(), UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetResume(t *testing.T) {
	p := seedProfile()
	svc := NewService(newMockRepo(p))

	got, err := svc.SetResume(context.Background(), p.ID, "/uploads/resumes/x.pdf")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ResumePath != "/uploads/resumes/x.pdf" {
		t.Fatalf("resume path not set: %q", got.ResumePath)
	}

	if _, err := svc.SetResume(context.Background(), p.ID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty path, got %v", err)
	}
}

func TestSyncAcademicRecords(t *testing.T) {
	p := seedProfile()
	svc := NewService(newMockRepo(p))
	fixed := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	records := []student.AcademicRecord{
		{Semester: 1, SGPA: 8.0, CGPA: 8.0},
		{Semester: 2, SGPA: 9.0, CGPA: 8.5},
	}

	got, err := svc.SyncAcademicRecords(context.Background(), p.ID, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.AcademicRecords) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got.AcademicRecords))
	}
	for _, r := range got.AcademicRecords {
		if !r.SyncedAt.Equal(fixed) {
			t.Fatalf("syncedAt not stamped: %v", r.SyncedAt)
		}
	}
	if got.CGPA == nil || *got.CGPA != 8.5 {
		t.Fatalf("cgpa must come from the last record, got %v", got.CGPA)
	}
	if got.Semester == nil || *got.Semester != 2 {
		t.Fatalf("semester must come from the last record, got %v", got.Semester)
	}
}

func TestSyncAcademicRecords_NilIsInvalid(t *testing.T) {
	p := seedProfile()
	svc := NewService(newMockRepo(p))

	if _, err := svc.SyncAcademicRecords(context.Background(), p.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSyncAcademicRecordsByRollNumber(t *testing.T) {
	p := seedProfile()
	svc := NewService(newMockRepo(p))

	got, err := svc.SyncAcademicRecordsByRollNumber(context.Background(), "CS2021001", []student.AcademicRecord{
		{Semester: 3, SGPA: 7.5, CGPA: 8.1},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("resolved the wrong profile: %v", got.ID)
	}

	if _, err := svc.SyncAcademicRecordsByRollNumber(context.Background(), "NOPE", []student.AcademicRecord{{Semester: 1}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
