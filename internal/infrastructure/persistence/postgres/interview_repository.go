package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/interview"
)

type InterviewRepository struct {
	db database.DB
}

func NewInterviewRepository(db database.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `i.id, i.application_id, i.company_id, i.student_id, i.job_id,
	i.round, i.interview_type, i.scheduled_at, i.duration_minutes, i.location,
	i.meeting_link, i.meeting_id, i.meeting_password, i.status, i.feedback, i.reminders,
	i.created_at, i.updated_at,
	s.full_name, COALESCE(s.roll_number, ''), c.company_name, j.title, a.status`

const interviewFrom = ` FROM interviews i
	JOIN applications a ON a.id = i.application_id
	JOIN student_profiles s ON s.id = i.student_id
	JOIN company_profiles c ON c.id = i.company_id
	JOIN jobs j ON j.id = i.job_id `

func (r *InterviewRepository) CreateWithApplicationStatus(ctx context.Context, iv interview.Interview, appStatus application.Status) error {
	feedback, err := jsonb(iv.Feedback)
	if err != nil {
		return err
	}
	reminders, err := jsonb(iv.Reminders)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO interviews
		 (id, application_id, company_id, student_id, job_id, round, interview_type,
		  scheduled_at, duration_minutes, location, meeting_link, meeting_id,
		  meeting_password, status, feedback, reminders)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, COALESCE($16, '[]'))`,
		iv.ID, iv.ApplicationID, iv.CompanyID, iv.StudentID, iv.JobID, iv.Round, iv.Type,
		iv.ScheduledAt, iv.DurationMinutes, iv.Location, iv.MeetingLink, iv.MeetingID,
		iv.MeetingPassword, iv.Status, feedback, reminders,
	)
	if err != nil {
		return err
	}

	n, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`,
		iv.ApplicationID, appStatus,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+interviewFrom+`WHERE i.id = $1`, id)
	return scanInterview(row)
}

func (r *InterviewRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+interviewFrom+`WHERE i.company_id = $1 ORDER BY i.scheduled_at`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func (r *InterviewRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+interviewFrom+`WHERE i.student_id = $1 ORDER BY i.scheduled_at`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func (r *InterviewRepository) ApplyPatch(ctx context.Context, id uuid.UUID, p interview.Patch) (interview.Interview, error) {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return interview.Interview{}, err
	}

	if p.ScheduledAt != nil {
		cur.ScheduledAt = *p.ScheduledAt
	}
	if p.Status != nil {
		cur.Status = *p.Status
	}
	if p.Feedback != nil {
		cur.Feedback = p.Feedback
	}

	feedback, err := jsonb(cur.Feedback)
	if err != nil {
		return interview.Interview{}, err
	}

	_, err = r.db.Exec(ctx,
		`UPDATE interviews SET
		  scheduled_at = $2, status = $3, feedback = $4, updated_at = now()
		 WHERE id = $1`,
		id, cur.ScheduledAt, cur.Status, feedback,
	)
	if err != nil {
		return interview.Interview{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *InterviewRepository) ListDueForReminder(ctx context.Context, from, to time.Time, kind string) ([]interview.Interview, error) {
	// JSONB containment keeps the ledger check inside the row query, so a
	// sweep re-run cannot pick up an interview already marked sent.
	ledger := fmt.Sprintf(`[{"type": %q}]`, kind)
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+interviewFrom+`
		 WHERE i.status IN ('scheduled', 'confirmed')
		   AND i.scheduled_at >= $1 AND i.scheduled_at < $2
		   AND NOT (i.reminders @> $3::jsonb)`,
		from, to, ledger,
	)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func (r *InterviewRepository) AppendReminder(ctx context.Context, id uuid.UUID, rem interview.Reminder) error {
	entry, err := jsonb(rem)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE interviews
		 SET reminders = reminders || $2::jsonb, updated_at = now()
		 WHERE id = $1`,
		id, entry,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) CountByStatus(ctx context.Context, status interview.Status) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE status = $1`, status)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *InterviewRepository) CountByApplications(ctx context.Context, applicationIDs []uuid.UUID) (int64, error) {
	if len(applicationIDs) == 0 {
		return 0, nil
	}
	var n int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM interviews WHERE application_id = ANY($1)`,
		applicationIDs,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collectInterviews(rows database.Rows) ([]interview.Interview, error) {
	defer rows.Close()
	out := make([]interview.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func scanInterview(row database.Row) (interview.Interview, error) {
	var iv interview.Interview
	var feedback, reminders []byte

	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.CompanyID, &iv.StudentID, &iv.JobID,
		&iv.Round, &iv.Type, &iv.ScheduledAt, &iv.DurationMinutes, &iv.Location,
		&iv.MeetingLink, &iv.MeetingID, &iv.MeetingPassword, &iv.Status, &feedback, &reminders,
		&iv.CreatedAt, &iv.UpdatedAt,
		&iv.StudentName, &iv.RollNumber, &iv.CompanyName, &iv.JobTitle, &iv.ApplicationStatus,
	)
	if err != nil {
		if isNoRows(err) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, err
	}

	if len(feedback) > 0 && string(feedback) != "null" {
		var fb interview.Feedback
		if err := fromJSONB(feedback, &fb); err != nil {
			return interview.Interview{}, err
		}
		iv.Feedback = &fb
	}
	if err := fromJSONB(reminders, &iv.Reminders); err != nil {
		return interview.Interview{}, err
	}
	if iv.Reminders == nil {
		iv.Reminders = []interview.Reminder{}
	}
	return iv, nil
}
