package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/pkg/response"
	ucauth "placement-hub/internal/usecase/auth"
)

type AuthHandler struct {
	uc ucauth.AuthUsecase
}

func NewAuthHandler(uc ucauth.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type registerStudentRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	RollNumber string `json:"rollNumber"`
	Branch     string `json:"branch"`
	Semester   *int   `json:"semester"`
	Phone      string `json:"phone"`
}

type registerCompanyRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	Industry      string `json:"industry"`
	Website       string `json:"website"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminSetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register/student", h.RegisterStudent)
	r.Post("/register/company", h.RegisterCompany)
	r.Post("/login", h.Login)
	r.Post("/admin/setup", h.AdminSetup)
	r.Get("/me", h.Me, auth)
}

func (h *AuthHandler) RegisterStudent(c fiber.Ctx) error {
	var req registerStudentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.RegisterStudent(c.Context(), ucauth.RegisterStudentInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Department: req.Department,
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
		Semester:   req.Semester,
		Phone:      req.Phone,
	})
	if err != nil {
		return mapAuthError(err)
	}
	return response.JSON(c, fiber.StatusCreated, res)
}

func (h *AuthHandler) RegisterCompany(c fiber.Ctx) error {
	var req registerCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.RegisterCompany(c.Context(), ucauth.RegisterCompanyInput{
		Email:         req.Email,
		Password:      req.Password,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Industry:      req.Industry,
		Website:       req.Website,
	})
	if err != nil {
		return mapAuthError(err)
	}
	return response.JSON(c, fiber.StatusCreated, res)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *AuthHandler) AdminSetup(c fiber.Ctx) error {
	var req adminSetupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.AdminSetup(c.Context(), ucauth.AdminSetupInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}
	return response.JSON(c, fiber.StatusCreated, res)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	u, profile, err := h.uc.Me(c.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
		}
		return mapAuthError(err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"user":    u,
		"profile": profile,
	})
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", err)
	case errors.Is(err, ucauth.ErrRollNumberTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Roll number already taken", err)
	case errors.Is(err, ucauth.ErrAdminExists):
		return middleware.NewAppError(fiber.StatusConflict, "Admin already configured", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
