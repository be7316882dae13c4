package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/interview"
	"placement-hub/internal/pkg/response"
	ucinterview "placement-hub/internal/usecase/interview"
)

type InterviewHandler struct {
	uc ucinterview.InterviewUsecase
}

func NewInterviewHandler(uc ucinterview.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

type interviewScheduleRequest struct {
	ApplicationID   uuid.UUID      `json:"applicationId"`
	Round           int            `json:"round"`
	Type            interview.Type `json:"type"`
	ScheduledAt     time.Time      `json:"scheduledAt"`
	DurationMinutes int            `json:"durationMinutes"`
	Location        string         `json:"location"`
}

type interviewFeedbackRequest struct {
	Rating         int    `json:"rating"`
	Notes          string `json:"notes"`
	Recommendation string `json:"recommendation"`
}

type interviewUpdateRequest struct {
	ScheduledAt *time.Time                `json:"scheduledAt"`
	Status      *interview.Status         `json:"status"`
	Feedback    *interviewFeedbackRequest `json:"feedback"`
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Schedule)
	r.Get("/company", h.ListForCompany)
	r.Get("/mine", h.ListForStudent)
	r.Patch("/:id", h.Update)
	r.Get("/:id/meeting", h.Credentials)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req interviewScheduleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	if req.ApplicationID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "applicationId is required", nil)
	}
	if req.ScheduledAt.IsZero() {
		return middleware.NewAppError(fiber.StatusBadRequest, "scheduledAt is required", nil)
	}

	iv, err := h.uc.Schedule(c.Context(), p, ucinterview.ScheduleInput{
		ApplicationID:   req.ApplicationID,
		Round:           req.Round,
		Type:            req.Type,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	})
	if err != nil {
		return mapInterviewError(err)
	}
	return response.JSON(c, fiber.StatusCreated, iv)
}

func (h *InterviewHandler) ListForCompany(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	out, err := h.uc.ListForCompany(c.Context(), p)
	if err != nil {
		return mapInterviewError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *InterviewHandler) ListForStudent(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	out, err := h.uc.ListForStudent(c.Context(), p)
	if err != nil {
		return mapInterviewError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *InterviewHandler) Update(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req interviewUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	in := ucinterview.UpdateInput{
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	}
	if req.Feedback != nil {
		in.Feedback = &ucinterview.FeedbackInput{
			Rating:         req.Feedback.Rating,
			Notes:          req.Feedback.Notes,
			Recommendation: req.Feedback.Recommendation,
		}
	}

	iv, err := h.uc.Update(c.Context(), p, id, in)
	if err != nil {
		return mapInterviewError(err)
	}
	return response.JSON(c, fiber.StatusOK, iv)
}

func (h *InterviewHandler) Credentials(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	creds, err := h.uc.Credentials(c.Context(), p, id)
	if err != nil {
		return mapInterviewError(err)
	}
	return response.JSON(c, fiber.StatusOK, creds)
}

func mapInterviewError(err error) error {
	switch {
	case errors.Is(err, ucinterview.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", err)
	case errors.Is(err, ucinterview.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	case errors.Is(err, ucinterview.ErrNotAuthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
