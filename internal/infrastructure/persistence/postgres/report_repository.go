package postgres

import (
	"context"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/application"
	"placement-hub/internal/domain/report"
)

type ReportRepository struct {
	db database.DB
}

func NewReportRepository(db database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountApplications(ctx context.Context) (int64, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications`)
}

func (r *ReportRepository) CountApplicationsWithStatus(ctx context.Context, status application.Status) (int64, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, status)
}

func (r *ReportRepository) StatusBreakdown(ctx context.Context) ([]report.StatusCount, error) {
	return r.statusCounts(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status ORDER BY status`)
}

func (r *ReportRepository) RecentApplications(ctx context.Context, limit int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+applicationFrom+`ORDER BY a.applied_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ReportRepository) CountApplicationsByDrive(ctx context.Context, driveID uuid.UUID) (int64, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications WHERE drive_id = $1`, driveID)
}

func (r *ReportRepository) CountOffersByDrive(ctx context.Context, driveID uuid.UUID) (int64, error) {
	return r.countOne(ctx,
		`SELECT COUNT(*) FROM applications
		 WHERE drive_id = $1 AND status IN ('offer_extended', 'offer_accepted')`,
		driveID,
	)
}

func (r *ReportRepository) StatusBreakdownByDrive(ctx context.Context, driveID uuid.UUID) ([]report.StatusCount, error) {
	return r.statusCounts(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE drive_id = $1 GROUP BY status ORDER BY status`,
		driveID,
	)
}

func (r *ReportRepository) ApplicationIDsByDrive(ctx context.Context, driveID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM applications WHERE drive_id = $1`, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *ReportRepository) ExportApplications(ctx context.Context, f report.ExportFilter) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + `WHERE 1=1`
	args := []any{}

	if f.DriveID != nil {
		args = append(args, *f.DriveID)
		query += ` AND a.drive_id = $` + itoa(len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += ` AND a.applied_at >= $` + itoa(len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += ` AND a.applied_at <= $` + itoa(len(args))
	}
	query += ` ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ReportRepository) MonthlyTrends(ctx context.Context) ([]report.MonthlyTrend, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(applied_at, 'YYYY-MM') AS month,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'offer_accepted')
		 FROM applications
		 GROUP BY month
		 ORDER BY month`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]report.MonthlyTrend, 0)
	for rows.Next() {
		var t report.MonthlyTrend
		if err := rows.Scan(&t.Month, &t.Count, &t.Placed); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReportRepository) PlacementsByDepartment(ctx context.Context) ([]report.DepartmentCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.department, COUNT(*)
		 FROM applications a
		 JOIN student_profiles s ON s.id = a.student_id
		 WHERE a.status = 'offer_accepted'
		 GROUP BY s.department
		 ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]report.DepartmentCount, 0)
	for rows.Next() {
		var d report.DepartmentCount
		if err := rows.Scan(&d.Department, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ReportRepository) countOne(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReportRepository) statusCounts(ctx context.Context, query string, args ...any) ([]report.StatusCount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]report.StatusCount, 0)
	for rows.Next() {
		var sc report.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
