package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/job"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/pkg/principal"
)

type mockApplicationRepo struct {
	byID map[uuid.UUID]application.Application
	// seen tracks (student, job) pairs like the DB unique index does.
	seen map[string]bool
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{byID: map[uuid.UUID]application.Application{}, seen: map[string]bool{}}
}

func pairKey(studentID, jobID uuid.UUID) string {
	return studentID.String() + "/" + jobID.String()
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) error {
	key := pairKey(a.StudentID, a.JobID)
	if m.seen[key] {
		return application.ErrDuplicate
	}
	m.seen[key] = true
	m.byID[a.ID] = a
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range m.byID {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range m.byID {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ApplyStatusPatch(_ context.Context, id uuid.UUID, p application.StatusPatch) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CompanyFeedback != nil {
		a.CompanyFeedback = *p.CompanyFeedback
	}
	if p.HiringDecision != nil {
		a.HiringDecision = *p.HiringDecision
	}
	if p.OfferDetails != nil {
		a.OfferDetails = p.OfferDetails
	}
	reviewedAt := p.ReviewedAt
	reviewedBy := p.ReviewedBy
	a.ReviewedAt = &reviewedAt
	a.ReviewedBy = &reviewedBy
	m.byID[id] = a
	return a, nil
}

func (m *mockApplicationRepo) SetStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	m.byID[id] = a
	return a, nil
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

type recordedNotification struct {
	kind   string
	email  string
	status application.Status
}

type mockNotifier struct {
	sent []recordedNotification
}

func (m *mockNotifier) SendApplicationStatusUpdate(email, _, _ string, status application.Status) {
	m.sent = append(m.sent, recordedNotification{kind: "status", email: email, status: status})
}

func (m *mockNotifier) SendOfferNotification(email, _, _ string, _ *application.OfferDetails) {
	m.sent = append(m.sent, recordedNotification{kind: "offer", email: email})
}

type fixture struct {
	svc          *Service
	applications *mockApplicationRepo
	notifier     *mockNotifier

	companyID uuid.UUID
	studentID uuid.UUID
	jobID     uuid.UUID

	studentPrincipal principal.Principal
	companyPrincipal principal.Principal
}

func newFixture() *fixture {
	companyID := uuid.New()
	jobID := uuid.New()
	studentID := uuid.New()
	studentUserID := uuid.New()

	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{
		jobID: {ID: jobID, CompanyID: companyID, Title: "Backend Engineer", Status: job.StatusActive},
	}}
	students := &mockStudentRepo{byID: map[uuid.UUID]student.Profile{
		studentID: {ID: studentID, UserID: studentUserID, FullName: "Asha", ResumePath: "/uploads/resumes/a.pdf"},
	}}
	users := &mockUserRepo{byID: map[uuid.UUID]user.User{
		studentUserID: {ID: studentUserID, Email: "asha@example.com", Role: user.RoleStudent},
	}}

	applications := newMockApplicationRepo()
	notifier := &mockNotifier{}
	svc := NewService(applications, jobs, students, users, notifier, nil)

	return &fixture{
		svc:          svc,
		applications: applications,
		notifier:     notifier,
		companyID:    companyID,
		studentID:    studentID,
		jobID:        jobID,
		studentPrincipal: principal.Principal{
			UserID: studentUserID, Role: user.RoleStudent, ProfileID: studentID,
		},
		companyPrincipal: principal.Principal{
			UserID: uuid.New(), Role: user.RoleCompany, ProfileID: companyID,
		},
	}
}

func TestSubmit_CopiesResumeAndDriveRef(t *testing.T) {
	f := newFixture()

	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "cover")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", a.Status)
	}
	if a.ResumePath != "/uploads/resumes/a.pdf" {
		t.Fatalf("resume not copied: %q", a.ResumePath)
	}
}

func TestSubmit_DuplicateMapsToConflict(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, ""); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestSubmit_InactiveJobRejected(t *testing.T) {
	f := newFixture()
	closedID := uuid.New()
	f.svc.jobs.(*mockJobRepo).byID[closedID] = job.Job{ID: closedID, CompanyID: f.companyID, Status: job.StatusClosed}

	if _, err := f.svc.Submit(context.Background(), f.studentPrincipal, closedID, ""); !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestListForJob_OwnershipGate(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, ""); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	out, err := f.svc.ListForJob(context.Background(), f.companyPrincipal, f.jobID)
	if err != nil {
		t.Fatalf("owner listing failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 application, got %d", len(out))
	}

	foreign := principal.Principal{UserID: uuid.New(), Role: user.RoleCompany, ProfileID: uuid.New()}
	if _, err := f.svc.ListForJob(context.Background(), foreign, f.jobID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign company must see not found, got %v", err)
	}

	admin := principal.Principal{UserID: uuid.New(), Role: user.RoleAdmin}
	if _, err := f.svc.ListForJob(context.Background(), admin, f.jobID); err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
}

func TestUpdateStatus_NotifiesAndStamps(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	shortlisted := application.StatusShortlisted
	feedback := "strong profile"
	updated, err := f.svc.UpdateStatus(context.Background(), f.companyPrincipal, a.ID, UpdateStatusInput{
		Status:          &shortlisted,
		CompanyFeedback: &feedback,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusShortlisted {
		t.Fatalf("status not applied: %s", updated.Status)
	}
	if updated.CompanyFeedback != "strong profile" {
		t.Fatalf("feedback not applied: %q", updated.CompanyFeedback)
	}
	if updated.ReviewedAt == nil || updated.ReviewedBy == nil {
		t.Fatalf("review stamps missing: %+v", updated)
	}

	if len(f.notifier.sent) != 1 || f.notifier.sent[0].kind != "status" || f.notifier.sent[0].email != "asha@example.com" {
		t.Fatalf("expected one status notification, got %+v", f.notifier.sent)
	}
}

func TestUpdateStatus_OfferSendsOfferMail(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	offered := application.StatusOfferExtended
	offer := &application.OfferDetails{CTC: 1200000}
	if _, err := f.svc.UpdateStatus(context.Background(), f.companyPrincipal, a.ID, UpdateStatusInput{
		Status:       &offered,
		OfferDetails: offer,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(f.notifier.sent) != 1 || f.notifier.sent[0].kind != "offer" {
		t.Fatalf("expected one offer notification, got %+v", f.notifier.sent)
	}
}

func TestUpdateStatus_ExplicitEmptyFeedbackClears(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	feedback := "noted"
	if _, err := f.svc.UpdateStatus(context.Background(), f.companyPrincipal, a.ID, UpdateStatusInput{CompanyFeedback: &feedback}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	empty := ""
	updated, err := f.svc.UpdateStatus(context.Background(), f.companyPrincipal, a.ID, UpdateStatusInput{CompanyFeedback: &empty})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CompanyFeedback != "" {
		t.Fatalf("explicit empty feedback must clear, got %q", updated.CompanyFeedback)
	}
}

func TestUpdateStatus_ForeignCompanySeesNotFound(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	foreign := principal.Principal{UserID: uuid.New(), Role: user.RoleCompany, ProfileID: uuid.New()}
	reviewed := application.StatusReviewed
	if _, err := f.svc.UpdateStatus(context.Background(), foreign, a.ID, UpdateStatusInput{Status: &reviewed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOfferResponse(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Submit(context.Background(), f.studentPrincipal, f.jobID, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Not yet offered.
	if _, err := f.svc.OfferResponse(context.Background(), f.studentPrincipal, a.ID, "accept"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput before offer, got %v", err)
	}

	offered := application.StatusOfferExtended
	if _, err := f.svc.UpdateStatus(context.Background(), f.companyPrincipal, a.ID, UpdateStatusInput{Status: &offered}); err != nil {
		t.Fatalf("offer failed: %v", err)
	}

	if _, err := f.svc.OfferResponse(context.Background(), f.studentPrincipal, a.ID, "maybe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad action, got %v", err)
	}

	other := principal.Principal{UserID: uuid.New(), Role: user.RoleStudent, ProfileID: uuid.New()}
	if _, err := f.svc.OfferResponse(context.Background(), other, a.ID, "accept"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign student must see not found, got %v", err)
	}

	updated, err := f.svc.OfferResponse(context.Background(), f.studentPrincipal, a.ID, "decline")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusOfferDeclined {
		t.Fatalf("expected offer_declined, got %s", updated.Status)
	}
}
