package postgres

import (
	"context"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/drive"
)

type DriveRepository struct {
	db database.DB
}

func NewDriveRepository(db database.DB) *DriveRepository {
	return &DriveRepository{db: db}
}

const driveColumns = `id, name, description, start_date, end_date, status, eligibility,
	company_ids, created_by, created_at, updated_at`

func (r *DriveRepository) Create(ctx context.Context, d drive.Drive) error {
	eligibility, err := jsonb(d.Eligibility)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO placement_drives
		 (id, name, description, start_date, end_date, status, eligibility, company_ids, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.Name, d.Description, d.StartDate, d.EndDate, d.Status, eligibility,
		uuidArray(d.CompanyIDs), d.CreatedBy,
	)
	return err
}

func (r *DriveRepository) GetByID(ctx context.Context, id uuid.UUID) (drive.Drive, error) {
	row := r.db.QueryRow(ctx, `SELECT `+driveColumns+` FROM placement_drives WHERE id = $1`, id)
	return scanDrive(row)
}

func (r *DriveRepository) Update(ctx context.Context, d drive.Drive) error {
	eligibility, err := jsonb(d.Eligibility)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE placement_drives SET
		  name = $2, description = $3, start_date = $4, end_date = $5, status = $6,
		  eligibility = $7, company_ids = $8, updated_at = now()
		 WHERE id = $1`,
		d.ID, d.Name, d.Description, d.StartDate, d.EndDate, d.Status, eligibility,
		uuidArray(d.CompanyIDs),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return drive.ErrNotFound
	}
	return nil
}

func (r *DriveRepository) List(ctx context.Context, status drive.Status) ([]drive.Drive, error) {
	query := `SELECT ` + driveColumns + ` FROM placement_drives`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]drive.Drive, 0)
	for rows.Next() {
		d, err := scanDrive(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DriveRepository) AddCompany(ctx context.Context, driveID, companyID uuid.UUID) error {
	// array_append only when absent keeps the operation idempotent.
	n, err := r.db.Exec(ctx,
		`UPDATE placement_drives
		 SET company_ids = array_append(company_ids, $2), updated_at = now()
		 WHERE id = $1 AND NOT ($2 = ANY(company_ids))`,
		driveID, companyID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM placement_drives WHERE id = $1)`, driveID)
		if scanErr := row.Scan(&exists); scanErr != nil {
			return scanErr
		}
		if !exists {
			return drive.ErrNotFound
		}
	}
	return nil
}

func (r *DriveRepository) CountByStatus(ctx context.Context, status drive.Status) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM placement_drives WHERE status = $1`, status)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanDrive(row database.Row) (drive.Drive, error) {
	var d drive.Drive
	var eligibility []byte
	var companyIDs []uuid.UUID

	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.StartDate, &d.EndDate, &d.Status,
		&eligibility, &companyIDs, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return drive.Drive{}, drive.ErrNotFound
		}
		return drive.Drive{}, err
	}

	if err := fromJSONB(eligibility, &d.Eligibility); err != nil {
		return drive.Drive{}, err
	}
	d.CompanyIDs = companyIDs
	if d.CompanyIDs == nil {
		d.CompanyIDs = []uuid.UUID{}
	}
	return d, nil
}

func uuidArray(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
