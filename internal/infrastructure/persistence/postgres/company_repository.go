package postgres

import (
	"context"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/company"
)

type CompanyRepository struct {
	db database.DB
}

func NewCompanyRepository(db database.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, user_id, company_name, industry, website, description, logo_path,
	contact_person, contact_email, contact_phone, address, city, country, company_size,
	verified, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, p company.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO company_profiles
		 (id, user_id, company_name, industry, website, description, logo_path, contact_person,
		  contact_email, contact_phone, address, city, country, company_size, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.UserID, p.CompanyName, p.Industry, p.Website, p.Description, p.LogoPath,
		p.ContactPerson, p.ContactEmail, p.ContactPhone, p.Address, p.City, p.Country,
		p.Size, p.Verified,
	)
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE user_id = $1`, userID)
	return scanCompany(row)
}

func (r *CompanyRepository) Update(ctx context.Context, p company.Profile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE company_profiles SET
		  company_name = $2, industry = $3, website = $4, description = $5, logo_path = $6,
		  contact_person = $7, contact_email = $8, contact_phone = $9, address = $10,
		  city = $11, country = $12, company_size = $13, verified = $14, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.CompanyName, p.Industry, p.Website, p.Description, p.LogoPath,
		p.ContactPerson, p.ContactEmail, p.ContactPhone, p.Address, p.City, p.Country,
		p.Size, p.Verified,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) ListVerified(ctx context.Context) ([]company.Profile, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE verified ORDER BY company_name`)
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Profile, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM company_profiles ORDER BY company_name`)
}

func (r *CompanyRepository) list(ctx context.Context, query string) ([]company.Profile, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Profile, 0)
	for rows.Next() {
		p, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM company_profiles`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanCompany(row database.Row) (company.Profile, error) {
	var p company.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Industry, &p.Website, &p.Description, &p.LogoPath,
		&p.ContactPerson, &p.ContactEmail, &p.ContactPhone, &p.Address, &p.City, &p.Country,
		&p.Size, &p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return company.Profile{}, company.ErrNotFound
		}
		return company.Profile{}, err
	}
	return p, nil
}
