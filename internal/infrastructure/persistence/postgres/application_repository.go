package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/application"
)

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.student_id, a.job_id, a.drive_id, a.resume_path, a.cover_letter,
	a.status, a.applied_at, a.reviewed_at, a.reviewed_by, a.company_feedback, a.hiring_decision,
	a.offer_ctc, a.offer_joining_date, a.offer_valid_until, a.created_at, a.updated_at,
	j.title, c.company_name, s.full_name, COALESCE(s.roll_number, '')`

const applicationFrom = ` FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN company_profiles c ON c.id = j.company_id
	JOIN student_profiles s ON s.id = a.student_id `

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	var ctc *float64
	var joining, valid any
	if a.OfferDetails != nil {
		ctc = &a.OfferDetails.CTC
		joining = a.OfferDetails.JoiningDate
		valid = a.OfferDetails.ValidUntil
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO applications
		 (id, student_id, job_id, drive_id, resume_path, cover_letter, status, applied_at,
		  offer_ctc, offer_joining_date, offer_valid_until)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.StudentID, a.JobID, a.DriveID, a.ResumePath, a.CoverLetter, a.Status,
		a.AppliedAt, ctc, joining, valid,
	)
	if err != nil {
		// The composite unique index on (student_id, job_id) is the sole
		// concurrency guard against double submission.
		if isUniqueViolation(err) {
			return application.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+applicationFrom+`WHERE a.id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+applicationFrom+`WHERE a.student_id = $1 ORDER BY a.applied_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+applicationFrom+`WHERE a.job_id = $1 ORDER BY a.applied_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ApplyStatusPatch applies present fields only. Concurrent patches are
// last-writer-wins per field; no row lock is taken.
func (r *ApplicationRepository) ApplyStatusPatch(ctx context.Context, id uuid.UUID, p application.StatusPatch) (application.Application, error) {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if p.Status != nil {
		cur.Status = *p.Status
	}
	if p.CompanyFeedback != nil {
		cur.CompanyFeedback = *p.CompanyFeedback
	}
	if p.HiringDecision != nil {
		cur.HiringDecision = *p.HiringDecision
	}
	if p.OfferDetails != nil {
		cur.OfferDetails = p.OfferDetails
	}
	reviewedBy := p.ReviewedBy
	reviewedAt := p.ReviewedAt

	var ctc *float64
	var joining, valid any
	if cur.OfferDetails != nil {
		ctc = &cur.OfferDetails.CTC
		joining = cur.OfferDetails.JoiningDate
		valid = cur.OfferDetails.ValidUntil
	}

	_, err = r.db.Exec(ctx,
		`UPDATE applications SET
		  status = $2, company_feedback = $3, hiring_decision = $4,
		  offer_ctc = $5, offer_joining_date = $6, offer_valid_until = $7,
		  reviewed_at = $8, reviewed_by = $9, updated_at = now()
		 WHERE id = $1`,
		id, cur.Status, cur.CompanyFeedback, string(cur.HiringDecision),
		ctc, joining, valid, reviewedAt, reviewedBy,
	)
	if err != nil {
		return application.Application{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) SetStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return application.Application{}, err
	}
	if n == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()
	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var decision string
	var ctc *float64
	var joining, valid *time.Time

	err := row.Scan(
		&a.ID, &a.StudentID, &a.JobID, &a.DriveID, &a.ResumePath, &a.CoverLetter,
		&a.Status, &a.AppliedAt, &a.ReviewedAt, &a.ReviewedBy, &a.CompanyFeedback, &decision,
		&ctc, &joining, &valid, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.CompanyName, &a.StudentName, &a.RollNumber,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}

	a.HiringDecision = application.HiringDecision(decision)
	if ctc != nil || joining != nil || valid != nil {
		od := &application.OfferDetails{JoiningDate: joining, ValidUntil: valid}
		if ctc != nil {
			od.CTC = *ctc
		}
		a.OfferDetails = od
	}
	return a, nil
}
