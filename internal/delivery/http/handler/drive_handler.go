package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/drive"
	"placement-hub/internal/pkg/response"
	ucdrive "placement-hub/internal/usecase/drive"
)

type DriveHandler struct {
	uc ucdrive.DriveUsecase
}

func NewDriveHandler(uc ucdrive.DriveUsecase) *DriveHandler {
	return &DriveHandler{uc: uc}
}

type driveCreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Status      drive.Status      `json:"status"`
	Eligibility drive.Eligibility `json:"eligibility"`
}

type driveUpdateRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	StartDate   *time.Time         `json:"startDate"`
	EndDate     *time.Time         `json:"endDate"`
	Status      *drive.Status      `json:"status"`
	Eligibility *drive.Eligibility `json:"eligibility"`
}

type driveAddCompanyRequest struct {
	CompanyID uuid.UUID `json:"companyId"`
}

// RegisterPublicRoutes exposes the read-only drive endpoints.
func (h *DriveHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Get("/:id/jobs", h.ListJobs)
}

// RegisterAdminRoutes exposes drive management, gated upstream by role.
func (h *DriveHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Post("/:id/companies", h.AddCompany)
}

func (h *DriveHandler) Create(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req driveCreateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	d, err := h.uc.Create(c.Context(), ucdrive.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Eligibility: req.Eligibility,
		CreatedBy:   p.UserID,
	})
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusCreated, d)
}

func (h *DriveHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req driveUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	d, err := h.uc.Update(c.Context(), id, ucdrive.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Eligibility: req.Eligibility,
	})
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusOK, d)
}

func (h *DriveHandler) List(c fiber.Ctx) error {
	status := drive.Status(c.Query("status"))

	out, err := h.uc.List(c.Context(), status)
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *DriveHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusOK, detail)
}

func (h *DriveHandler) AddCompany(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req driveAddCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	if req.CompanyID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "companyId is required", nil)
	}

	d, err := h.uc.AddCompany(c.Context(), id, req.CompanyID)
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusOK, d)
}

func (h *DriveHandler) ListJobs(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListJobs(c.Context(), id)
	if err != nil {
		return mapDriveError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func mapDriveError(err error) error {
	switch {
	case errors.Is(err, ucdrive.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Placement drive not found", err)
	case errors.Is(err, ucdrive.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
