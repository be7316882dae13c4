package handler

import (
	"github.com/gofiber/fiber/v3"

	"placement-hub/internal/pkg/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	return response.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
