package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/pkg/jwt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrRollNumberTaken        = errors.New("roll number already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAdminExists            = errors.New("admin already configured")
	ErrInternal               = errors.New("internal error")
)

// Registrar creates a user row and its role profile in one storage
// transaction.
type Registrar interface {
	CreateStudentAccount(ctx context.Context, u user.User, p student.Profile) error
	CreateCompanyAccount(ctx context.Context, u user.User, p company.Profile) error
}

type RegisterStudentInput struct {
	Email      string
	Password   string
	FullName   string
	Department string
	RollNumber string
	Branch     string
	Semester   *int
	Phone      string
}

type RegisterCompanyInput struct {
	Email         string
	Password      string
	CompanyName   string
	ContactPerson string
	ContactEmail  string
	ContactPhone  string
	Industry      string
	Website       string
}

type LoginInput struct {
	Email    string
	Password string
}

type AdminSetupInput struct {
	Email    string
	Password string
}

// Result is a signed session: the user, its role profile (nil for admins)
// and a bearer token.
type Result struct {
	User    user.User `json:"user"`
	Profile any       `json:"profile,omitempty"`
	Token   string    `json:"token"`
}

type AuthUsecase interface {
	RegisterStudent(ctx context.Context, in RegisterStudentInput) (Result, error)
	RegisterCompany(ctx context.Context, in RegisterCompanyInput) (Result, error)
	Login(ctx context.Context, in LoginInput) (Result, error)
	Me(ctx context.Context, userID uuid.UUID) (user.User, any, error)
	AdminSetup(ctx context.Context, in AdminSetupInput) (Result, error)
}

type Service struct {
	users     user.Repository
	students  student.Repository
	companies company.Repository
	registrar Registrar
	tokens    jwt.Service

	now func() time.Time
}

func NewService(users user.Repository, students student.Repository, companies company.Repository, registrar Registrar, tokens jwt.Service) *Service {
	return &Service{
		users:     users,
		students:  students,
		companies: companies,
		registrar: registrar,
		tokens:    tokens,
		now:       time.Now,
	}
}

func (s *Service) RegisterStudent(ctx context.Context, in RegisterStudentInput) (Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) || strings.TrimSpace(in.FullName) == "" {
		return Result{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Result{}, ErrInternal
	}
	if exists {
		return Result{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleStudent,
	}

	roll := strings.TrimSpace(in.RollNumber)
	if roll == "" {
		roll = fmt.Sprintf("STU%d", s.now().UnixMilli())
	}

	p := student.Profile{
		ID:         uuid.New(),
		UserID:     u.ID,
		FullName:   strings.TrimSpace(in.FullName),
		RollNumber: roll,
		Department: strings.TrimSpace(in.Department),
		Branch:     strings.TrimSpace(in.Branch),
		Semester:   in.Semester,
		Phone:      strings.TrimSpace(in.Phone),
	}

	if err := s.registrar.CreateStudentAccount(ctx, u, p); err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			return Result{}, ErrEmailAlreadyRegistered
		case errors.Is(err, student.ErrDuplicateRollNumber):
			return Result{}, ErrRollNumberTaken
		}
		return Result{}, ErrInternal
	}

	created, err := s.students.GetByID(ctx, p.ID)
	if err != nil {
		return Result{}, ErrInternal
	}
	return s.signed(sanitizeUser(u), created)
}

func (s *Service) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) || strings.TrimSpace(in.CompanyName) == "" {
		return Result{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Result{}, ErrInternal
	}
	if exists {
		return Result{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleCompany,
	}

	contactEmail := normalizeEmail(in.ContactEmail)
	if contactEmail == "" {
		contactEmail = email
	}

	p := company.Profile{
		ID:            uuid.New(),
		UserID:        u.ID,
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		ContactEmail:  contactEmail,
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		Industry:      strings.TrimSpace(in.Industry),
		Website:       strings.TrimSpace(in.Website),
	}

	if err := s.registrar.CreateCompanyAccount(ctx, u, p); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return Result{}, ErrEmailAlreadyRegistered
		}
		return Result{}, ErrInternal
	}

	created, err := s.companies.GetByID(ctx, p.ID)
	if err != nil {
		return Result{}, ErrInternal
	}
	return s.signed(sanitizeUser(u), created)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Result{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Result{}, ErrInvalidCredentials
	}

	profile, err := s.profileFor(ctx, u)
	if err != nil {
		return Result{}, ErrInternal
	}
	return s.signed(sanitizeUser(u), profile)
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (user.User, any, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, nil, user.ErrNotFound
		}
		return user.User{}, nil, ErrInternal
	}

	profile, err := s.profileFor(ctx, u)
	if err != nil {
		return user.User{}, nil, ErrInternal
	}
	return sanitizeUser(u), profile, nil
}

// AdminSetup creates the singleton admin account. Any existing admin makes
// this a conflict regardless of credentials.
func (s *Service) AdminSetup(ctx context.Context, in AdminSetupInput) (Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return Result{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByRole(ctx, user.RoleAdmin)
	if err != nil {
		return Result{}, ErrInternal
	}
	if exists {
		return Result{}, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		IsVerified:   true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return Result{}, ErrEmailAlreadyRegistered
		}
		return Result{}, ErrInternal
	}

	return s.signed(sanitizeUser(u), nil)
}

func (s *Service) profileFor(ctx context.Context, u user.User) (any, error) {
	switch u.Role {
	case user.RoleStudent:
		p, err := s.students.GetByUserID(ctx, u.ID)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return p, nil
	case user.RoleCompany:
		p, err := s.companies.GetByUserID(ctx, u.ID)
		if err != nil {
			if errors.Is(err, company.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return p, nil
	}
	return nil, nil
}

func (s *Service) signed(u user.User, profile any) (Result, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return Result{}, ErrInternal
	}
	return Result{User: u, Profile: profile, Token: token}, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
