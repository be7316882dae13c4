package interview

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
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

type mockInterviewRepo struct {
	byID      map[uuid.UUID]interview.Interview
	appStatus map[uuid.UUID]application.Status
	txErr     error
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{
		byID:      map[uuid.UUID]interview.Interview{},
		appStatus: map[uuid.UUID]application.Status{},
	}
}

func (m *mockInterviewRepo) CreateWithApplicationStatus(_ context.Context, iv interview.Interview, st application.Status) error {
	if m.txErr != nil {
		return m.txErr
	}
	m.byID[iv.ID] = iv
	m.appStatus[iv.ApplicationID] = st
	return nil
}

func (m *mockInterviewRepo) GetByID(_ context.Context, id uuid.UUID) (interview.Interview, error) {
	iv, ok := m.byID[id]
	if !ok {
		return interview.Interview{}, interview.ErrNotFound
	}
	return iv, nil
}

func (m *mockInterviewRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]interview.Interview, error) {
	out := make([]interview.Interview, 0)
	for _, iv := range m.byID {
		if iv.CompanyID == companyID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockInterviewRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]interview.Interview, error) {
	out := make([]interview.Interview, 0)
	for _, iv := range m.byID {
		if iv.StudentID == studentID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockInterviewRepo) ApplyPatch(_ context.Context, id uuid.UUID, p interview.Patch) (interview.Interview, error) {
	iv, ok := m.byID[id]
	if !ok {
		return interview.Interview{}, interview.ErrNotFound
	}
	if p.ScheduledAt != nil {
		iv.ScheduledAt = *p.ScheduledAt
	}
	if p.Status != nil {
		iv.Status = *p.Status
	}
	if p.Feedback != nil {
		iv.Feedback = p.Feedback
	}
	m.byID[id] = iv
	return iv, nil
}

func (m *mockInterviewRepo) ListDueForReminder(_ context.Context, from, to time.Time, kind string) ([]interview.Interview, error) {
	out := make([]interview.Interview, 0)
	for _, iv := range m.byID {
		if iv.Status != interview.StatusScheduled && iv.Status != interview.StatusConfirmed {
			continue
		}
		if iv.ScheduledAt.Before(from) || !iv.ScheduledAt.Before(to) {
			continue
		}
		if iv.HasReminder(kind) {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

func (m *mockInterviewRepo) AppendReminder(_ context.Context, id uuid.UUID, r interview.Reminder) error {
	iv, ok := m.byID[id]
	if !ok {
		return interview.ErrNotFound
	}
	iv.Reminders = append(iv.Reminders, r)
	m.byID[id] = iv
	return nil
}

func (m *mockInterviewRepo) CountByStatus(context.Context, interview.Status) (int64, error) {
	return 0, nil
}

func (m *mockInterviewRepo) CountByApplications(context.Context, []uuid.UUID) (int64, error) {
	return 0, nil
}

type mockApplicationRepo struct {
	byID map[uuid.UUID]application.Application
}

func (m *mockApplicationRepo) Create(context.Context, application.Application) error { return nil }
func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}
func (m *mockApplicationRepo) ListByStudent(context.Context, uuid.UUID) ([]application.Application, error) {
	return nil, nil
}
func (m *mockApplicationRepo) ListByJob(context.Context, uuid.UUID) ([]application.Application, error) {
	return nil, nil
}
func (m *mockApplicationRepo) ApplyStatusPatch(context.Context, uuid.UUID, application.StatusPatch) (application.Application, error) {
	return application.Application{}, application.ErrNotFound
}
func (m *mockApplicationRepo) SetStatus(context.Context, uuid.UUID, application.Status) (application.Application, error) {
	return application.Application{}, application.ErrNotFound
}

type mockJobRepo struct {
	byID map[uuid.UUID]job.Job
}

func (m *mockJobRepo) Create(context.Context, job.Job) error { return nil }
func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}
func (m *mockJobRepo) Update(context.Context, job.Job) error { return nil }
func (m *mockJobRepo) ListByCompany(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, nil
}
func (m *mockJobRepo) ListActive(context.Context, job.BrowseFilter) ([]job.Job, error) {
	return nil, nil
}
func (m *mockJobRepo) CountByDrive(context.Context, uuid.UUID) (int64, error) { return 0, nil }

type mockStudentRepo struct {
	byID map[uuid.UUID]student.Profile
}

func (m *mockStudentRepo) Create(context.Context, student.Profile) error { return nil }
func (m *mockStudentRepo) GetByID(_ context.Context, id uuid.UUID) (student.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return student.Profile{}, student.ErrNotFound
	}
	return p, nil
}
func (m *mockStudentRepo) GetByUserID(context.Context, uuid.UUID) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}
func (m *mockStudentRepo) GetByRollNumber(context.Context, string) (student.Profile, error) {
	return student.Profile{}, student.ErrNotFound
}
func (m *mockStudentRepo) Update(context.Context, student.Profile) error { return nil }
func (m *mockStudentRepo) List(context.Context) ([]student.Profile, error) {
	return nil, nil
}
func (m *mockStudentRepo) Count(context.Context) (int64, error) { return 0, nil }

type mockUserRepo struct {
	byID map[uuid.UUID]user.User
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error)   { return false, nil }
func (m *mockUserRepo) ExistsByRole(context.Context, user.Role) (bool, error) { return false, nil }
func (m *mockUserRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error {
	return nil
}

type mockProvisioner struct {
	err   error
	calls int
}

func (m *mockProvisioner) CreateRoom(_ context.Context, key string, _ time.Time, _ int) (meeting.Room, error) {
	m.calls++
	if m.err != nil {
		return meeting.Room{}, m.err
	}
	return meeting.Room{JoinURL: "https://meet.example/" + key, MeetingID: key, Provider: "test"}, nil
}

type mockNotifier struct {
	confirmations []string
	reminders     []string
}

func (m *mockNotifier) SendInterviewConfirmation(email, _ string, _ time.Time, _, _ string) {
	m.confirmations = append(m.confirmations, email)
}

func (m *mockNotifier) SendInterviewReminder(email, _ string, _ time.Time, _ string) {
	m.reminders = append(m.reminders, email)
}

type fixture struct {
	svc         *Service
	interviews  *mockInterviewRepo
	provisioner *mockProvisioner
	notifier    *mockNotifier

	companyID     uuid.UUID
	studentID     uuid.UUID
	applicationID uuid.UUID

	companyPrincipal principal.Principal
	studentPrincipal principal.Principal
}

func newFixture() *fixture {
	companyID := uuid.New()
	jobID := uuid.New()
	studentID := uuid.New()
	studentUserID := uuid.New()
	applicationID := uuid.New()

	applications := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{
		applicationID: {ID: applicationID, StudentID: studentID, JobID: jobID, Status: application.StatusShortlisted},
	}}
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{
		jobID: {ID: jobID, CompanyID: companyID, Title: "Backend Engineer", Status: job.StatusActive},
	}}
	students := &mockStudentRepo{byID: map[uuid.UUID]student.Profile{
		studentID: {ID: studentID, UserID: studentUserID, FullName: "Asha"},
	}}
	users := &mockUserRepo{byID: map[uuid.UUID]user.User{
		studentUserID: {ID: studentUserID, Email: "asha@example.com", Role: user.RoleStudent},
	}}

	interviews := newMockInterviewRepo()
	provisioner := &mockProvisioner{}
	notifier := &mockNotifier{}
	logger := log.New(io.Discard, "", 0)
	svc := NewService(interviews, applications, jobs, students, users, provisioner, notifier, nil, logger)

	return &fixture{
		svc:         svc,
		interviews:  interviews,
		provisioner: provisioner,
		notifier:    notifier,

		companyID:     companyID,
		studentID:     studentID,
		applicationID: applicationID,

		companyPrincipal: principal.Principal{UserID: uuid.New(), Role: user.RoleCompany, ProfileID: companyID},
		studentPrincipal: principal.Principal{UserID: uuid.New(), Role: user.RoleStudent, ProfileID: studentID},
	}
}

func TestSchedule_VirtualProvisionsRoom(t *testing.T) {
	f := newFixture()

	iv, err := f.svc.Schedule(context.Background(), f.companyPrincipal, ScheduleInput{
		ApplicationID: f.applicationID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if iv.Type != interview.TypeVirtual {
		t.Fatalf("expected virtual default, got %s", iv.Type)
	}
	if iv.MeetingLink == "" {
		t.Fatalf("virtual interview must carry a join url")
	}
	if f.provisioner.calls != 1 {
		t.Fatalf("expected one provisioning call, got %d", f.provisioner.calls)
	}
	if got := f.interviews.appStatus[f.applicationID]; got != application.StatusInterviewScheduled {
		t.Fatalf("application status not moved, got %s", got)
	}
	if len(f.notifier.confirmations) != 1 || f.notifier.confirmations[0] != "asha@example.com" {
		t.Fatalf("expected one confirmation, got %+v", f.notifier.confirmations)
	}
}

func TestSchedule_InPersonSkipsProvisioning(t *testing.T) {
	f := newFixture()

	iv, err := f.svc.Schedule(context.Background(), f.companyPrincipal, ScheduleInput{
		ApplicationID: f.applicationID,
		Type:          interview.TypeInPerson,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
		Location:      "Campus block A",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if iv.MeetingLink != "" {
		t.Fatalf("in-person interview must not carry a join url")
	}
	if f.provisioner.calls != 0 {
		t.Fatalf("provisioner must not be called, got %d calls", f.provisioner.calls)
	}
}

func TestSchedule_ProvisioningFailureLeavesNothing(t *testing.T) {
	f := newFixture()
	f.provisioner.err = errors.New("provider down")

	if _, err := f.svc.Schedule(context.Background(), f.companyPrincipal, ScheduleInput{
		ApplicationID: f.applicationID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if len(f.interviews.byID) != 0 {
		t.Fatalf("no interview must be persisted after provisioning failure")
	}
	if got, ok := f.interviews.appStatus[f.applicationID]; ok {
		t.Fatalf("application status must be untouched, got %s", got)
	}
}

func TestSchedule_ForeignCompanySeesNotFound(t *testing.T) {
	f := newFixture()

	foreign := principal.Principal{UserID: uuid.New(), Role: user.RoleCompany, ProfileID: uuid.New()}
	if _, err := f.svc.Schedule(context.Background(), foreign, ScheduleInput{
		ApplicationID: f.applicationID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_FeedbackStamped(t *testing.T) {
	f := newFixture()
	iv, err := f.svc.Schedule(context.Background(), f.companyPrincipal, ScheduleInput{
		ApplicationID: f.applicationID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.companyPrincipal, iv.ID, UpdateInput{
		Feedback: &FeedbackInput{Rating: 4, Notes: "good", Recommendation: "hire"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Feedback == nil || updated.Feedback.SubmittedBy == nil || updated.Feedback.SubmittedAt == nil {
		t.Fatalf("feedback stamps missing: %+v", updated.Feedback)
	}
	if *updated.Feedback.SubmittedBy != f.companyPrincipal.UserID {
		t.Fatalf("submittedBy must be the acting user")
	}

	if _, err := f.svc.Update(context.Background(), f.companyPrincipal, iv.ID, UpdateInput{
		Feedback: &FeedbackInput{Rating: 9},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range rating, got %v", err)
	}
}

func TestCredentials_Gating(t *testing.T) {
	f := newFixture()
	iv, err := f.svc.Schedule(context.Background(), f.companyPrincipal, ScheduleInput{
		ApplicationID: f.applicationID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	for _, p := range []principal.Principal{
		f.studentPrincipal,
		f.companyPrincipal,
		{UserID: uuid.New(), Role: user.RoleAdmin},
	} {
		creds, err := f.svc.Credentials(context.Background(), p, iv.ID)
		if err != nil {
			t.Fatalf("%s must see credentials: %v", p.Role, err)
		}
		if creds.MeetingLink == "" {
			t.Fatalf("expected a meeting link")
		}
	}

	foreign := principal.Principal{UserID: uuid.New(), Role: user.RoleStudent, ProfileID: uuid.New()}
	if _, err := f.svc.Credentials(context.Background(), foreign, iv.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestSweepReminders_WindowsAndIdempotence(t *testing.T) {
	f := newFixture()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	soonID := uuid.New()
	f.interviews.byID[soonID] = interview.Interview{
		ID: soonID, StudentID: f.studentID, CompanyID: f.companyID,
		ScheduledAt: now.Add(30 * time.Minute), Status: interview.StatusScheduled,
	}
	laterID := uuid.New()
	f.interviews.byID[laterID] = interview.Interview{
		ID: laterID, StudentID: f.studentID, CompanyID: f.companyID,
		ScheduledAt: now.Add(5 * time.Hour), Status: interview.StatusConfirmed,
	}
	farID := uuid.New()
	f.interviews.byID[farID] = interview.Interview{
		ID: farID, StudentID: f.studentID, CompanyID: f.companyID,
		ScheduledAt: now.Add(72 * time.Hour), Status: interview.StatusScheduled,
	}

	sent, err := f.svc.SweepReminders(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 reminders, got %d", sent)
	}
	if !f.interviews.byID[soonID].HasReminder(interview.Reminder1h) {
		t.Fatalf("1h ledger entry missing")
	}
	if !f.interviews.byID[laterID].HasReminder(interview.Reminder24h) {
		t.Fatalf("24h ledger entry missing")
	}
	if len(f.interviews.byID[farID].Reminders) != 0 {
		t.Fatalf("out-of-window interview must be untouched")
	}

	// Same instant again: ledger suppresses everything.
	sent, err = f.svc.SweepReminders(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sent != 0 {
		t.Fatalf("second sweep must send nothing, got %d", sent)
	}
	if len(f.notifier.reminders) != 2 {
		t.Fatalf("expected 2 reminder emails total, got %d", len(f.notifier.reminders))
	}
}

func TestSweepReminders_FaultIsolation(t *testing.T) {
	f := newFixture()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Interview whose student profile is missing; its send fails.
	brokenID := uuid.New()
	f.interviews.byID[brokenID] = interview.Interview{
		ID: brokenID, StudentID: uuid.New(), CompanyID: f.companyID,
		ScheduledAt: now.Add(20 * time.Minute), Status: interview.StatusScheduled,
	}
	okID := uuid.New()
	f.interviews.byID[okID] = interview.Interview{
		ID: okID, StudentID: f.studentID, CompanyID: f.companyID,
		ScheduledAt: now.Add(40 * time.Minute), Status: interview.StatusScheduled,
	}

	sent, err := f.svc.SweepReminders(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected the healthy interview to be reminded, got %d", sent)
	}
	if !f.interviews.byID[okID].HasReminder(interview.Reminder1h) {
		t.Fatalf("healthy interview ledger entry missing")
	}
	if len(f.interviews.byID[brokenID].Reminders) != 0 {
		t.Fatalf("failed send must not append to the ledger")
	}
}
