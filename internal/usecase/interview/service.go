package interview

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/interview"
	"placement-hub/internal/domain/job"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/meeting"
	"placement-hub/internal/pkg/principal"
)

var (
	ErrNotFound      = errors.New("interview not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInternal      = errors.New("internal error")
)

type Notifier interface {
	SendInterviewConfirmation(email, companyName string, scheduledAt time.Time, meetingLink, interviewType string)
	SendInterviewReminder(email, companyName string, scheduledAt time.Time, meetingLink string)
}

type EventPublisher interface {
	Publish(event string, payload any)
}

type ScheduleInput struct {
	ApplicationID   uuid.UUID
	Round           int
	Type            interview.Type
	ScheduledAt     time.Time
	DurationMinutes int
	Location        string
}

type FeedbackInput struct {
	Rating         int
	Notes          string
	Recommendation string
}

// UpdateInput is a field mask: nil leaves the stored value alone.
type UpdateInput struct {
	ScheduledAt *time.Time
	Status      *interview.Status
	Feedback    *FeedbackInput
}

// MeetingCredentials is the join payload for an interview's participants.
type MeetingCredentials struct {
	MeetingLink     string `json:"meetingLink"`
	MeetingID       string `json:"meetingId"`
	MeetingPassword string `json:"meetingPassword,omitempty"`
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, p principal.Principal, in ScheduleInput) (interview.Interview, error)
	ListForCompany(ctx context.Context, p principal.Principal) ([]interview.Interview, error)
	ListForStudent(ctx context.Context, p principal.Principal) ([]interview.Interview, error)
	Update(ctx context.Context, p principal.Principal, id uuid.UUID, in UpdateInput) (interview.Interview, error)
	Credentials(ctx context.Context, p principal.Principal, id uuid.UUID) (MeetingCredentials, error)
	SweepReminders(ctx context.Context, now time.Time) (int, error)
}

type Service struct {
	interviews   interview.Repository
	applications application.Repository
	jobs         job.Repository
	students     student.Repository
	users        user.Repository
	rooms        meeting.Provisioner
	notifier     Notifier
	events       EventPublisher
	logger       *log.Logger

	now func() time.Time
}

func NewService(
	interviews interview.Repository,
	applications application.Repository,
	jobs job.Repository,
	students student.Repository,
	users user.Repository,
	rooms meeting.Provisioner,
	notifier Notifier,
	events EventPublisher,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		interviews:   interviews,
		applications: applications,
		jobs:         jobs,
		students:     students,
		users:        users,
		rooms:        rooms,
		notifier:     notifier,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

// Schedule provisions the meeting room before touching storage: a provisioning
// failure leaves no half-created interview behind.
func (s *Service) Schedule(ctx context.Context, p principal.Principal, in ScheduleInput) (interview.Interview, error) {
	if in.ApplicationID == uuid.Nil || in.ScheduledAt.IsZero() {
		return interview.Interview{}, ErrInvalidInput
	}

	ivType := in.Type
	if ivType == "" {
		ivType = interview.TypeVirtual
	}
	if !ivType.Valid() {
		return interview.Interview{}, ErrInvalidInput
	}

	a, err := s.applications.GetByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return interview.Interview{}, ErrInternal
	}
	if !p.IsAdmin() && !p.OwnsCompany(j.CompanyID) {
		return interview.Interview{}, ErrNotFound
	}

	round := in.Round
	if round <= 0 {
		round = 1
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	iv := interview.Interview{
		ID:              uuid.New(),
		ApplicationID:   a.ID,
		CompanyID:       j.CompanyID,
		StudentID:       a.StudentID,
		JobID:           a.JobID,
		Round:           round,
		Type:            ivType,
		ScheduledAt:     in.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Location:        in.Location,
		Status:          interview.StatusScheduled,
		Reminders:       []interview.Reminder{},
	}

	if ivType == interview.TypeVirtual {
		room, err := s.rooms.CreateRoom(ctx, a.ID.String()[:8], iv.ScheduledAt, duration)
		if err != nil {
			return interview.Interview{}, ErrInternal
		}
		iv.MeetingLink = room.JoinURL
		iv.MeetingID = room.MeetingID
		iv.MeetingPassword = room.MeetingPassword
	}

	if err := s.interviews.CreateWithApplicationStatus(ctx, iv, application.StatusInterviewScheduled); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, ErrInternal
	}

	created, err := s.interviews.GetByID(ctx, iv.ID)
	if err != nil {
		return interview.Interview{}, ErrInternal
	}

	s.sendConfirmation(ctx, created)
	s.publish("interview_scheduled", map[string]any{
		"interviewId":   created.ID,
		"applicationId": created.ApplicationID,
		"scheduledAt":   created.ScheduledAt,
	})
	return created, nil
}

func (s *Service) ListForCompany(ctx context.Context, p principal.Principal) ([]interview.Interview, error) {
	if !p.IsCompany() || p.ProfileID == uuid.Nil {
		return nil, ErrNotAuthorized
	}
	out, err := s.interviews.ListByCompany(ctx, p.ProfileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) ListForStudent(ctx context.Context, p principal.Principal) ([]interview.Interview, error) {
	if !p.IsStudent() || p.ProfileID == uuid.Nil {
		return nil, ErrNotAuthorized
	}
	out, err := s.interviews.ListByStudent(ctx, p.ProfileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, p principal.Principal, id uuid.UUID, in UpdateInput) (interview.Interview, error) {
	if in.ScheduledAt == nil && in.Status == nil && in.Feedback == nil {
		return interview.Interview{}, ErrInvalidInput
	}
	if in.Status != nil && !in.Status.Valid() {
		return interview.Interview{}, ErrInvalidInput
	}
	if in.Feedback != nil && (in.Feedback.Rating < 1 || in.Feedback.Rating > 5) {
		return interview.Interview{}, ErrInvalidInput
	}

	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, ErrInternal
	}
	if !p.IsAdmin() && !p.OwnsCompany(iv.CompanyID) {
		return interview.Interview{}, ErrNotFound
	}

	patch := interview.Patch{
		ScheduledAt: in.ScheduledAt,
		Status:      in.Status,
	}
	if in.Feedback != nil {
		submittedAt := s.now().UTC()
		submittedBy := p.UserID
		patch.Feedback = &interview.Feedback{
			Rating:         in.Feedback.Rating,
			Notes:          in.Feedback.Notes,
			Recommendation: in.Feedback.Recommendation,
			SubmittedBy:    &submittedBy,
			SubmittedAt:    &submittedAt,
		}
	}

	updated, err := s.interviews.ApplyPatch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, ErrInternal
	}
	return updated, nil
}

func (s *Service) Credentials(ctx context.Context, p principal.Principal, id uuid.UUID) (MeetingCredentials, error) {
	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return MeetingCredentials{}, ErrNotFound
		}
		return MeetingCredentials{}, ErrInternal
	}

	if !p.CanViewMeeting(iv.StudentID, iv.CompanyID) {
		return MeetingCredentials{}, ErrNotAuthorized
	}

	return MeetingCredentials{
		MeetingLink:     iv.MeetingLink,
		MeetingID:       iv.MeetingID,
		MeetingPassword: iv.MeetingPassword,
	}, nil
}

// SweepReminders sends the 1h and 24h reminder classes for interviews falling
// in their windows. The ledger entry is appended only after a successful send;
// one failing interview never aborts the rest of the batch.
func (s *Service) SweepReminders(ctx context.Context, now time.Time) (int, error) {
	sent := 0

	windows := []struct {
		kind string
		from time.Time
		to   time.Time
	}{
		{kind: interview.Reminder1h, from: now, to: now.Add(time.Hour)},
		{kind: interview.Reminder24h, from: now.Add(time.Hour), to: now.Add(24 * time.Hour)},
	}

	for _, w := range windows {
		due, err := s.interviews.ListDueForReminder(ctx, w.from, w.to, w.kind)
		if err != nil {
			s.logger.Printf("[Reminder] Listing %s candidates failed: %v", w.kind, err)
			continue
		}

		for _, iv := range due {
			if err := s.sendReminder(ctx, iv, w.kind); err != nil {
				s.logger.Printf("[Reminder] Sending %s for interview %s failed: %v", w.kind, iv.ID, err)
				continue
			}
			sent++
		}
	}

	return sent, nil
}

func (s *Service) sendReminder(ctx context.Context, iv interview.Interview, kind string) error {
	if iv.HasReminder(kind) {
		return nil
	}

	email, ok := s.studentEmail(ctx, iv.StudentID)
	if !ok {
		return errors.New("student email unavailable")
	}

	if s.notifier != nil {
		s.notifier.SendInterviewReminder(email, iv.CompanyName, iv.ScheduledAt, iv.MeetingLink)
	}

	return s.interviews.AppendReminder(ctx, iv.ID, interview.Reminder{
		SentAt: s.now().UTC(),
		Type:   kind,
	})
}

func (s *Service) sendConfirmation(ctx context.Context, iv interview.Interview) {
	if s.notifier == nil {
		return
	}
	email, ok := s.studentEmail(ctx, iv.StudentID)
	if !ok {
		return
	}

	s.notifier.SendInterviewConfirmation(email, iv.CompanyName, iv.ScheduledAt, iv.MeetingLink, string(iv.Type))
	if err := s.interviews.AppendReminder(ctx, iv.ID, interview.Reminder{
		SentAt: s.now().UTC(),
		Type:   interview.ReminderConfirmation,
	}); err != nil {
		s.logger.Printf("[Reminder] Recording confirmation for interview %s failed: %v", iv.ID, err)
	}
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
