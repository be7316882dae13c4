package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/report"
	"placement-hub/internal/pkg/response"
	ucreport "placement-hub/internal/usecase/report"
)

type ReportHandler struct {
	uc ucreport.ReportUsecase
}

func NewReportHandler(uc ucreport.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Dashboard)
	r.Get("/drives/:id", h.DriveReport)
	r.Get("/export", h.Export)
	r.Get("/trends", h.Trends)
}

func (h *ReportHandler) Dashboard(c fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return mapReportError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ReportHandler) DriveReport(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	out, err := h.uc.DriveReport(c.Context(), id)
	if err != nil {
		return mapReportError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ReportHandler) Export(c fiber.Ctx) error {
	var f report.ExportFilter

	if raw := c.Query("driveId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid drive id", err)
		}
		f.DriveID = &id
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid start date", err)
		}
		f.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid end date", err)
		}
		f.EndDate = &t
	}

	out, err := h.uc.Export(c.Context(), f)
	if err != nil {
		return mapReportError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ReportHandler) Trends(c fiber.Ctx) error {
	out, err := h.uc.Trends(c.Context())
	if err != nil {
		return mapReportError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func mapReportError(err error) error {
	switch {
	case errors.Is(err, ucreport.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Report target not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
