package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/job"
	"placement-hub/internal/pkg/response"
	ucjob "placement-hub/internal/usecase/job"
)

type JobHandler struct {
	uc ucjob.JobUsecase
}

func NewJobHandler(uc ucjob.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

type jobCreateRequest struct {
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Salary       job.Salary `json:"salary"`
	Locations    []string   `json:"locations"`
	WorkMode     string     `json:"workMode"`
	Openings     int        `json:"openings"`
	Status       job.Status `json:"status"`
	Deadline     *time.Time `json:"deadline"`
	Skills       []string   `json:"skills"`
	DriveID      *uuid.UUID `json:"placementDrive"`
}

type jobUpdateRequest struct {
	Title        *string     `json:"title"`
	Type         *string     `json:"type"`
	Description  *string     `json:"description"`
	Requirements *[]string   `json:"requirements"`
	Salary       *job.Salary `json:"salary"`
	Locations    *[]string   `json:"locations"`
	WorkMode     *string     `json:"workMode"`
	Openings     *int        `json:"openings"`
	Status       *job.Status `json:"status"`
	Deadline     *time.Time  `json:"deadline"`
	Skills       *[]string   `json:"skills"`
	DriveID      *uuid.UUID  `json:"placementDrive"`
}

func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Browse)
	r.Get("/:id", h.GetPublic)
}

func (h *JobHandler) RegisterCompanyRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/mine", h.ListOwn)
	r.Put("/:id", h.Update)
}

func (h *JobHandler) Browse(c fiber.Ctx) error {
	f := job.BrowseFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
	}
	if raw := c.Query("drive"); raw != "" {
		driveID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid drive id", err)
		}
		f.DriveID = &driveID
	}

	out, err := h.uc.Browse(c.Context(), f)
	if err != nil {
		return mapJobError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *JobHandler) GetPublic(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	j, err := h.uc.GetPublic(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.JSON(c, fiber.StatusOK, j)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsCompany() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	var req jobCreateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	j, err := h.uc.Create(c.Context(), p.ProfileID, ucjob.CreateInput{
		Title:        req.Title,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Locations:    req.Locations,
		WorkMode:     req.WorkMode,
		Openings:     req.Openings,
		Status:       req.Status,
		Deadline:     req.Deadline,
		Skills:       req.Skills,
		DriveID:      req.DriveID,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.JSON(c, fiber.StatusCreated, j)
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsCompany() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req jobUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	j, err := h.uc.Update(c.Context(), p.ProfileID, id, ucjob.UpdateInput{
		Title:        req.Title,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Locations:    req.Locations,
		WorkMode:     req.WorkMode,
		Openings:     req.Openings,
		Status:       req.Status,
		Deadline:     req.Deadline,
		Skills:       req.Skills,
		DriveID:      req.DriveID,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.JSON(c, fiber.StatusOK, j)
}

func (h *JobHandler) ListOwn(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsCompany() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	out, err := h.uc.ListOwn(c.Context(), p.ProfileID)
	if err != nil {
		return mapJobError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func parseIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", err)
	}
	return id, nil
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
