package postgres

import (
	"context"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
)

// AccountRepository creates a user and its role profile in one transaction,
// so a registration failure never leaves a user row without a profile.
type AccountRepository struct {
	db database.DB
}

func NewAccountRepository(db database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateStudentAccount(ctx context.Context, u user.User, p student.Profile) error {
	skills, err := jsonb(emptyIfNil(p.Skills))
	if err != nil {
		return err
	}
	achievements, err := jsonb(p.Achievements)
	if err != nil {
		return err
	}
	education, err := jsonb(p.Education)
	if err != nil {
		return err
	}
	records, err := jsonb(p.AcademicRecords)
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

	if err := insertUser(ctx, tx, u); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO student_profiles
		 (id, user_id, full_name, roll_number, department, branch, semester, cgpa, phone,
		  date_of_birth, address, skills, achievements, education, resume_path, photo_path, academic_records)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11,
		         COALESCE($12, '[]'), COALESCE($13, '[]'), COALESCE($14, '[]'), $15, $16, COALESCE($17, '[]'))`,
		p.ID, p.UserID, p.FullName, p.RollNumber, p.Department, p.Branch, p.Semester, p.CGPA,
		p.Phone, p.DateOfBirth, p.Address, skills, achievements, education,
		p.ResumePath, p.PhotoPath, records,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return student.ErrDuplicateRollNumber
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *AccountRepository) CreateCompanyAccount(ctx context.Context, u user.User, p company.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := insertUser(ctx, tx, u); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO company_profiles
		 (id, user_id, company_name, industry, website, description, logo_path, contact_person,
		  contact_email, contact_phone, address, city, country, company_size, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.UserID, p.CompanyName, p.Industry, p.Website, p.Description, p.LogoPath,
		p.ContactPerson, p.ContactEmail, p.ContactPhone, p.Address, p.City, p.Country,
		p.Size, p.Verified,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertUser(ctx context.Context, tx database.Tx, u user.User) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, is_verified)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.IsVerified,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return err
	}
	return nil
}
