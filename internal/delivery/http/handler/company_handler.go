package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/pkg/response"
	uccompany "placement-hub/internal/usecase/company"
)

type CompanyHandler struct {
	uc uccompany.CompanyUsecase
}

func NewCompanyHandler(uc uccompany.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

type companyUpdateRequest struct {
	CompanyName   *string `json:"companyName"`
	Industry      *string `json:"industry"`
	Website       *string `json:"website"`
	Description   *string `json:"description"`
	ContactPerson *string `json:"contactPerson"`
	ContactEmail  *string `json:"contactEmail"`
	ContactPhone  *string `json:"contactPhone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Size          *string `json:"size"`
}

type companyImportRequest struct {
	Companies []uccompany.ImportItem `json:"companies"`
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)
}

func (h *CompanyHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListPublic)
}

func (h *CompanyHandler) Me(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsCompany() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	prof, err := h.uc.GetByID(c.Context(), p.ProfileID)
	if err != nil {
		return mapCompanyError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *CompanyHandler) UpdateMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsCompany() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	var req companyUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	prof, err := h.uc.Update(c.Context(), p.ProfileID, uccompany.UpdateInput{
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		Website:       req.Website,
		Description:   req.Description,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Size:          req.Size,
	})
	if err != nil {
		return mapCompanyError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *CompanyHandler) ListPublic(c fiber.Ctx) error {
	out, err := h.uc.ListPublic(c.Context())
	if err != nil {
		return mapCompanyError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *CompanyHandler) Import(c fiber.Ctx) error {
	var req companyImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.Import(c.Context(), req.Companies)
	if err != nil {
		if errors.Is(err, uccompany.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "companies must be a non-empty array", err)
		}
		return mapCompanyError(err)
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *CompanyHandler) Export(c fiber.Ctx) error {
	out, err := h.uc.Export(c.Context())
	if err != nil {
		return mapCompanyError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func mapCompanyError(err error) error {
	switch {
	case errors.Is(err, uccompany.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company profile not found", err)
	case errors.Is(err, uccompany.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
