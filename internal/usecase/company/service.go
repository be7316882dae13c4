package company

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound     = errors.New("company profile not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateInput is a field mask: nil leaves the stored value alone. Verified is
// deliberately absent; only the admin import path may set it.
type UpdateInput struct {
	CompanyName   *string
	Industry      *string
	Website       *string
	Description   *string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	Address       *string
	City          *string
	Country       *string
	Size          *string
}

// ImportItem is one record of the admin batch import.
type ImportItem struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CompanyName   string `json:"companyName"`
	Industry      string `json:"industry"`
	Website       string `json:"website"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	Verified      bool   `json:"verified"`
}

type ImportResult struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Errors   []ImportItemError `json:"errors"`
}

type ImportItemError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// Registrar matches the auth-side transactional account creation.
type Registrar interface {
	CreateCompanyAccount(ctx context.Context, u user.User, p company.Profile) error
}

type CompanyUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (company.Profile, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (company.Profile, error)
	ListPublic(ctx context.Context) ([]company.Profile, error)
	Import(ctx context.Context, items []ImportItem) (ImportResult, error)
	Export(ctx context.Context) ([]company.Profile, error)
}

type Service struct {
	companies company.Repository
	users     user.Repository
	registrar Registrar
}

func NewService(companies company.Repository, users user.Repository, registrar Registrar) *Service {
	return &Service{companies: companies, users: users, registrar: registrar}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	p, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Profile{}, ErrNotFound
		}
		return company.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (company.Profile, error) {
	p, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Profile{}, ErrNotFound
		}
		return company.Profile{}, ErrInternal
	}

	if in.CompanyName != nil {
		if strings.TrimSpace(*in.CompanyName) == "" {
			return company.Profile{}, ErrInvalidInput
		}
		p.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Industry != nil {
		p.Industry = *in.Industry
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ContactPerson != nil {
		p.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		p.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		p.ContactPhone = *in.ContactPhone
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Country != nil {
		p.Country = *in.Country
	}
	if in.Size != nil {
		p.Size = *in.Size
	}

	if err := s.companies.Update(ctx, p); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Profile{}, ErrNotFound
		}
		return company.Profile{}, ErrInternal
	}

	updated, err := s.companies.GetByID(ctx, p.ID)
	if err != nil {
		return company.Profile{}, ErrInternal
	}
	return updated, nil
}

// ListPublic returns verified companies only.
func (s *Service) ListPublic(ctx context.Context) ([]company.Profile, error) {
	out, err := s.companies.ListVerified(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Import creates company accounts in bulk, skipping existing emails. A bad
// item never aborts the batch; its error is reported per item.
func (s *Service) Import(ctx context.Context, items []ImportItem) (ImportResult, error) {
	if len(items) == 0 {
		return ImportResult{}, ErrInvalidInput
	}

	res := ImportResult{Errors: make([]ImportItemError, 0)}
	for _, item := range items {
		email := strings.ToLower(strings.TrimSpace(item.Email))
		if email == "" || strings.TrimSpace(item.CompanyName) == "" {
			res.Errors = append(res.Errors, ImportItemError{Email: item.Email, Error: "email and companyName are required"})
			continue
		}

		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			res.Errors = append(res.Errors, ImportItemError{Email: email, Error: "lookup failed"})
			continue
		}
		if exists {
			res.Skipped++
			continue
		}

		password := item.Password
		if password == "" {
			password = uuid.NewString()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			res.Errors = append(res.Errors, ImportItemError{Email: email, Error: "password hashing failed"})
			continue
		}

		u := user.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			Role:         user.RoleCompany,
			IsVerified:   item.Verified,
		}
		contactEmail := strings.ToLower(strings.TrimSpace(item.ContactEmail))
		if contactEmail == "" {
			contactEmail = email
		}
		p := company.Profile{
			ID:            uuid.New(),
			UserID:        u.ID,
			CompanyName:   strings.TrimSpace(item.CompanyName),
			Industry:      item.Industry,
			Website:       item.Website,
			ContactPerson: item.ContactPerson,
			ContactEmail:  contactEmail,
			Verified:      item.Verified,
		}

		if err := s.registrar.CreateCompanyAccount(ctx, u, p); err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, ImportItemError{Email: email, Error: "create failed"})
			continue
		}
		res.Imported++
	}

	return res, nil
}

func (s *Service) Export(ctx context.Context) ([]company.Profile, error) {
	out, err := s.companies.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
