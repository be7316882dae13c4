package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/student"
)

var (
	ErrNotFound     = errors.New("student profile not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateInput is a field mask: nil leaves the stored value alone.
type UpdateInput struct {
	FullName    *string
	Department  *string
	Branch      *string
	Semester    *int
	Phone       *string
	DateOfBirth *time.Time
	Address     *string

	Skills       *[]string
	Achievements *[]student.Achievement
	Education    *[]student.Education
}

type StudentUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (student.Profile, error)
	SetResume(ctx context.Context, id uuid.UUID, path string) (student.Profile, error)
	SyncAcademicRecords(ctx context.Context, id uuid.UUID, records []student.AcademicRecord) (student.Profile, error)
	SyncAcademicRecordsByRollNumber(ctx context.Context, rollNumber string, records []student.AcademicRecord) (student.Profile, error)
	List(ctx context.Context) ([]student.Profile, error)
}

type Service struct {
	students student.Repository

	now func() time.Time
}

func NewService(students student.Repository) *Service {
	return &Service{students: students, now: time.Now}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	p, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (student.Profile, error) {
	p, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, ErrInternal
	}

	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Department != nil {
		p.Department = *in.Department
	}
	if in.Branch != nil {
		p.Branch = *in.Branch
	}
	if in.Semester != nil {
		p.Semester = in.Semester
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Skills != nil {
		p.Skills = *in.Skills
	}
	if in.Achievements != nil {
		p.Achievements = *in.Achievements
	}
	if in.Education != nil {
		p.Education = *in.Education
	}

	return s.save(ctx, p)
}

func (s *Service) SetResume(ctx context.Context, id uuid.UUID, path string) (student.Profile, error) {
	if path == "" {
		return student.Profile{}, ErrInvalidInput
	}

	p, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, ErrInternal
	}

	p.ResumePath = path
	return s.save(ctx, p)
}

// SyncAcademicRecords replaces the record array and refreshes the profile
// CGPA from the latest record.
func (s *Service) SyncAcademicRecords(ctx context.Context, id uuid.UUID, records []student.AcademicRecord) (student.Profile, error) {
	if records == nil {
		return student.Profile{}, ErrInvalidInput
	}

	p, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, ErrInternal
	}

	return s.applyRecords(ctx, p, records)
}

func (s *Service) SyncAcademicRecordsByRollNumber(ctx context.Context, rollNumber string, records []student.AcademicRecord) (student.Profile, error) {
	if rollNumber == "" || records == nil {
		return student.Profile{}, ErrInvalidInput
	}

	p, err := s.students.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, ErrInternal
	}

	return s.applyRecords(ctx, p, records)
}

func (s *Service) applyRecords(ctx context.Context, p student.Profile, records []student.AcademicRecord) (student.Profile, error) {
	syncedAt := s.now().UTC()
	for i := range records {
		records[i].SyncedAt = syncedAt
	}

	p.AcademicRecords = records
	if len(records) > 0 {
		last := records[len(records)-1]
		cgpa := last.CGPA
		p.CGPA = &cgpa
		if last.Semester > 0 {
			sem := last.Semester
			p.Semester = &sem
		}
	}

	return s.save(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]student.Profile, error) {
	out, err := s.students.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) save(ctx context.Context, p student.Profile) (student.Profile, error) {
	if err := s.students.Update(ctx, p); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrNotFound
		}
		if errors.Is(err, student.ErrDuplicateRollNumber) {
			return student.Profile{}, ErrInvalidInput
		}
		return student.Profile{}, ErrInternal
	}

	updated, err := s.students.GetByID(ctx, p.ID)
	if err != nil {
		return student.Profile{}, ErrInternal
	}
	return updated, nil
}
