package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/job"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/pkg/principal"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrJobNotOpen     = errors.New("job is not accepting applications")
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrInternal       = errors.New("internal error")
)

// Notifier is the best-effort notification sink; its methods never fail.
type Notifier interface {
	SendApplicationStatusUpdate(email, companyName, jobTitle string, status application.Status)
	SendOfferNotification(email, companyName, jobTitle string, offer *application.OfferDetails)
}

// EventPublisher feeds the live event websocket; a nil publisher is valid.
type EventPublisher interface {
	Publish(event string, payload any)
}

// UpdateStatusInput is the company's partial patch. CompanyFeedback keeps
// pointer semantics so an explicit empty string clears stored feedback.
type UpdateStatusInput struct {
	Status          *application.Status
	CompanyFeedback *string
	HiringDecision  *application.HiringDecision
	OfferDetails    *application.OfferDetails
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, p principal.Principal, jobID uuid.UUID, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, p principal.Principal) ([]application.Application, error)
	ListForJob(ctx context.Context, p principal.Principal, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, p principal.Principal, id uuid.UUID, in UpdateStatusInput) (application.Application, error)
	OfferResponse(ctx context.Context, p principal.Principal, id uuid.UUID, action string) (application.Application, error)
}

type Service struct {
	applications application.Repository
	jobs         job.Repository
	students     student.Repository
	users        user.Repository
	notifier     Notifier
	events       EventPublisher

	now func() time.Time
}

func NewService(applications application.Repository, jobs job.Repository, students student.Repository, users user.Repository, notifier Notifier, events EventPublisher) *Service {
	return &Service{
		applications: applications,
		jobs:         jobs,
		students:     students,
		users:        users,
		notifier:     notifier,
		events:       events,
		now:          time.Now,
	}
}

// Submit relies on the storage-level (student, job) uniqueness constraint for
// duplicate protection; there is no pre-check racing against it.
func (s *Service) Submit(ctx context.Context, p principal.Principal, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if !p.IsStudent() || p.ProfileID == uuid.Nil {
		return application.Application{}, ErrNotAuthorized
	}

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if j.Status != job.StatusActive {
		return application.Application{}, ErrJobNotOpen
	}
	if j.Deadline != nil && s.now().After(*j.Deadline) {
		return application.Application{}, ErrJobNotOpen
	}

	prof, err := s.students.GetByID(ctx, p.ProfileID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	a := application.Application{
		ID:          uuid.New(),
		StudentID:   p.ProfileID,
		JobID:       jobID,
		DriveID:     j.DriveID,
		ResumePath:  prof.ResumePath,
		CoverLetter: coverLetter,
		Status:      application.StatusSubmitted,
		AppliedAt:   s.now().UTC(),
	}

	if err := s.applications.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := s.applications.GetByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	s.publish("application_submitted", map[string]any{
		"applicationId": created.ID,
		"jobId":         created.JobID,
		"studentId":     created.StudentID,
	})
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, p principal.Principal) ([]application.Application, error) {
	if !p.IsStudent() || p.ProfileID == uuid.Nil {
		return nil, ErrNotAuthorized
	}
	out, err := s.applications.ListByStudent(ctx, p.ProfileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) ListForJob(ctx context.Context, p principal.Principal, jobID uuid.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if !p.IsAdmin() && !p.OwnsCompany(j.CompanyID) {
		return nil, ErrNotFound
	}

	out, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, p principal.Principal, id uuid.UUID, in UpdateStatusInput) (application.Application, error) {
	if in.Status == nil && in.CompanyFeedback == nil && in.HiringDecision == nil && in.OfferDetails == nil {
		return application.Application{}, ErrInvalidInput
	}
	if in.Status != nil && !in.Status.Valid() {
		return application.Application{}, ErrInvalidInput
	}
	if in.HiringDecision != nil && !in.HiringDecision.Valid() {
		return application.Application{}, ErrInvalidInput
	}

	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !p.IsAdmin() && !p.OwnsCompany(j.CompanyID) {
		return application.Application{}, ErrNotFound
	}

	patch := application.StatusPatch{
		Status:          in.Status,
		CompanyFeedback: in.CompanyFeedback,
		HiringDecision:  in.HiringDecision,
		OfferDetails:    in.OfferDetails,
		ReviewedBy:      p.UserID,
		ReviewedAt:      s.now().UTC(),
	}

	updated, err := s.applications.ApplyStatusPatch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	if in.Status != nil {
		s.notifyStatusChange(ctx, updated, *in.Status)
		s.publish("application_status", map[string]any{
			"applicationId": updated.ID,
			"status":        updated.Status,
		})
	}
	return updated, nil
}

func (s *Service) OfferResponse(ctx context.Context, p principal.Principal, id uuid.UUID, action string) (application.Application, error) {
	var status application.Status
	switch action {
	case "accept":
		status = application.StatusOfferAccepted
	case "decline":
		status = application.StatusOfferDeclined
	default:
		return application.Application{}, ErrInvalidInput
	}

	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !p.OwnsStudent(a.StudentID) {
		return application.Application{}, ErrNotFound
	}
	if a.Status != application.StatusOfferExtended {
		return application.Application{}, ErrInvalidInput
	}

	updated, err := s.applications.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	s.publish("application_status", map[string]any{
		"applicationId": updated.ID,
		"status":        updated.Status,
	})
	return updated, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, a application.Application, status application.Status) {
	if s.notifier == nil {
		return
	}

	switch status {
	case application.StatusReviewed, application.StatusShortlisted, application.StatusRejected,
		application.StatusOfferExtended:
	default:
		return
	}

	email, ok := s.studentEmail(ctx, a.StudentID)
	if !ok {
		return
	}

	if status == application.StatusOfferExtended {
		s.notifier.SendOfferNotification(email, a.CompanyName, a.JobTitle, a.OfferDetails)
		return
	}
	s.notifier.SendApplicationStatusUpdate(email, a.CompanyName, a.JobTitle, status)
}

func (s *Service) studentEmail(ctx context.Context, studentID uuid.UUID) (string, bool) {
	prof, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return "", false
	}
	u, err := s.users.GetByID(ctx, prof.UserID)
	if err != nil {
		return "", false
	}
	return u.Email, true
}

func (s *Service) publish(event string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, payload)
}
