package postgres

import (
	"context"

	"github.com/google/uuid"

	"placement-hub/internal/database"
	"placement-hub/internal/domain/student"
)

type StudentRepository struct {
	db database.DB
}

func NewStudentRepository(db database.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, user_id, full_name, COALESCE(roll_number, ''), department, branch,
	semester, cgpa, phone, date_of_birth, address, skills, achievements, education,
	resume_path, photo_path, academic_records, created_at, updated_at`

func (r *StudentRepository) Create(ctx context.Context, p student.Profile) error {
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

	_, err = r.db.Exec(ctx,
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
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE id = $1`, id)
	return scanStudent(row)
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanStudent(row)
}

func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (student.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE roll_number = $1`, rollNumber)
	return scanStudent(row)
}

func (r *StudentRepository) Update(ctx context.Context, p student.Profile) error {
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

	n, err := r.db.Exec(ctx,
		`UPDATE student_profiles SET
		  full_name = $2, roll_number = NULLIF($3, ''), department = $4, branch = $5,
		  semester = $6, cgpa = $7, phone = $8, date_of_birth = $9, address = $10,
		  skills = COALESCE($11, '[]'), achievements = COALESCE($12, '[]'),
		  education = COALESCE($13, '[]'), resume_path = $14, photo_path = $15,
		  academic_records = COALESCE($16, '[]'), updated_at = now()
		 WHERE id = $1`,
		p.ID, p.FullName, p.RollNumber, p.Department, p.Branch, p.Semester, p.CGPA,
		p.Phone, p.DateOfBirth, p.Address, skills, achievements, education,
		p.ResumePath, p.PhotoPath, records,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return student.ErrDuplicateRollNumber
		}
		return err
	}
	if n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) List(ctx context.Context) ([]student.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM student_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Profile, 0)
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM student_profiles`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanStudent(row database.Row) (student.Profile, error) {
	var p student.Profile
	var skills, achievements, education, records []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.RollNumber, &p.Department, &p.Branch,
		&p.Semester, &p.CGPA, &p.Phone, &p.DateOfBirth, &p.Address,
		&skills, &achievements, &education, &p.ResumePath, &p.PhotoPath, &records,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return student.Profile{}, student.ErrNotFound
		}
		return student.Profile{}, err
	}

	if err := fromJSONB(skills, &p.Skills); err != nil {
		return student.Profile{}, err
	}
	if err := fromJSONB(achievements, &p.Achievements); err != nil {
		return student.Profile{}, err
	}
	if err := fromJSONB(education, &p.Education); err != nil {
		return student.Profile{}, err
	}
	if err := fromJSONB(records, &p.AcademicRecords); err != nil {
		return student.Profile{}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.AcademicRecords == nil {
		p.AcademicRecords = []student.AcademicRecord{}
	}
	return p, nil
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
