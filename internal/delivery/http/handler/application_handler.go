package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/application"
	"placement-hub/internal/pkg/response"
	ucapplication "placement-hub/internal/usecase/application"
)

type ApplicationHandler struct {
	uc ucapplication.ApplicationUsecase
}

func NewApplicationHandler(uc ucapplication.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applicationSubmitRequest struct {
	JobID       uuid.UUID `json:"jobId"`
	CoverLetter string    `json:"coverLetter"`
}

type applicationStatusRequest struct {
	Status          *application.Status         `json:"status"`
	CompanyFeedback *string                     `json:"companyFeedback"`
	HiringDecision  *application.HiringDecision `json:"hiringDecision"`
	OfferDetails    *application.OfferDetails   `json:"offerDetails"`
}

type offerResponseRequest struct {
	Action string `json:"action"`
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Submit)
	r.Get("/mine", h.ListMine)
	r.Patch("/:id/status", h.UpdateStatus)
	r.Post("/:id/offer-response", h.OfferResponse)
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req applicationSubmitRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	if req.JobID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "jobId is required", nil)
	}

	a, err := h.uc.Submit(c.Context(), p, req.JobID, req.CoverLetter)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.JSON(c, fiber.StatusCreated, a)
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	out, err := h.uc.ListMine(c.Context(), p)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

// ListForJob serves GET /jobs/:id/applications for the owning company.
func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListForJob(c.Context(), p, jobID)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req applicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), p, id, ucapplication.UpdateStatusInput{
		Status:          req.Status,
		CompanyFeedback: req.CompanyFeedback,
		HiringDecision:  req.HiringDecision,
		OfferDetails:    req.OfferDetails,
	})
	if err != nil {
		return mapApplicationError(err)
	}
	return response.JSON(c, fiber.StatusOK, a)
}

func (h *ApplicationHandler) OfferResponse(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req offerResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	a, err := h.uc.OfferResponse(c.Context(), p, id, req.Action)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.JSON(c, fiber.StatusOK, a)
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, ucapplication.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", err)
	case errors.Is(err, ucapplication.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusBadRequest, "You have already applied to this job", err)
	case errors.Is(err, ucapplication.ErrJobNotOpen):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job is not accepting applications", err)
	case errors.Is(err, ucapplication.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	case errors.Is(err, ucapplication.ErrNotAuthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
