package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/job"
)

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `j.id, j.company_id, j.drive_id, j.title, j.job_type, j.description,
	j.requirements, j.salary, j.locations, j.work_mode, j.openings, j.status,
	j.deadline, j.skills, j.created_at, j.updated_at, c.company_name`

const jobFrom = ` FROM jobs j JOIN company_profiles c ON c.id = j.company_id `

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	requirements, err := jsonb(emptyIfNil(j.Requirements))
	if err != nil {
		return err
	}
	salary, err := jsonb(j.Salary)
	if err != nil {
		return err
	}
	locations, err := jsonb(emptyIfNil(j.Locations))
	if err != nil {
		return err
	}
	skills, err := jsonb(emptyIfNil(j.Skills))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs
		 (id, company_id, drive_id, title, job_type, description, requirements, salary,
		  locations, work_mode, openings, status, deadline, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.CompanyID, j.DriveID, j.Title, j.Type, j.Description, requirements, salary,
		locations, j.WorkMode, j.Openings, j.Status, j.Deadline, skills,
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+`WHERE j.id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	requirements, err := jsonb(emptyIfNil(j.Requirements))
	if err != nil {
		return err
	}
	salary, err := jsonb(j.Salary)
	if err != nil {
		return err
	}
	locations, err := jsonb(emptyIfNil(j.Locations))
	if err != nil {
		return err
	}
	skills, err := jsonb(emptyIfNil(j.Skills))
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET
		  drive_id = $2, title = $3, job_type = $4, description = $5, requirements = $6,
		  salary = $7, locations = $8, work_mode = $9, openings = $10, status = $11,
		  deadline = $12, skills = $13, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.DriveID, j.Title, j.Type, j.Description, requirements, salary,
		locations, j.WorkMode, j.Openings, j.Status, j.Deadline, skills,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`WHERE j.company_id = $1 ORDER BY j.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListActive(ctx context.Context, f job.BrowseFilter) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + jobFrom + `WHERE j.status = 'active'`
	args := []any{}

	if f.DriveID != nil {
		args = append(args, *f.DriveID)
		query += ` AND j.drive_id = $` + itoa(len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += ` AND j.job_type = $` + itoa(len(args))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := itoa(len(args))
		query += ` AND (j.title ILIKE $` + n + ` OR j.description ILIKE $` + n +
			` OR j.skills::text ILIKE $` + n + `)`
	}
	query += ` ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) CountByDrive(ctx context.Context, driveID uuid.UUID) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE drive_id = $1`, driveID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var requirements, salary, locations, skills []byte

	err := row.Scan(
		&j.ID, &j.CompanyID, &j.DriveID, &j.Title, &j.Type, &j.Description,
		&requirements, &salary, &locations, &j.WorkMode, &j.Openings, &j.Status,
		&j.Deadline, &skills, &j.CreatedAt, &j.UpdatedAt, &j.CompanyName,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}

	if err := fromJSONB(requirements, &j.Requirements); err != nil {
		return job.Job{}, err
	}
	if err := fromJSONB(salary, &j.Salary); err != nil {
		return job.Job{}, err
	}
	if err := fromJSONB(locations, &j.Locations); err != nil {
		return job.Job{}, err
	}
	if err := fromJSONB(skills, &j.Skills); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
