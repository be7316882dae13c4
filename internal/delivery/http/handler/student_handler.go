package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/infrastructure/upload"
	"placement-hub/internal/pkg/response"
	ucstudent "placement-hub/internal/usecase/student"
)

type StudentHandler struct {
	uc      ucstudent.StudentUsecase
	uploads *upload.LocalStore
}

func NewStudentHandler(uc ucstudent.StudentUsecase, uploads *upload.LocalStore) *StudentHandler {
	return &StudentHandler{uc: uc, uploads: uploads}
}

type studentUpdateRequest struct {
	FullName    *string    `json:"fullName"`
	Department  *string    `json:"department"`
	Branch      *string    `json:"branch"`
	Semester    *int       `json:"semester"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     *string    `json:"address"`

	Skills       *[]string              `json:"skills"`
	Achievements *[]student.Achievement `json:"achievements"`
	Education    *[]student.Education   `json:"education"`
}

type academicRecordsRequest struct {
	Records []student.AcademicRecord `json:"records"`
}

type academicPullRequest struct {
	RollNumber string                   `json:"rollNumber"`
	Records    []student.AcademicRecord `json:"records"`
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)
	r.Post("/me/resume", h.UploadResume)
	r.Post("/me/academic-records", h.SyncAcademicRecords)
}

func (h *StudentHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
}

func (h *StudentHandler) Me(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsStudent() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	prof, err := h.uc.GetByID(c.Context(), p.ProfileID)
	if err != nil {
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *StudentHandler) UpdateMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsStudent() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	var req studentUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	prof, err := h.uc.Update(c.Context(), p.ProfileID, ucstudent.UpdateInput{
		FullName:     req.FullName,
		Department:   req.Department,
		Branch:       req.Branch,
		Semester:     req.Semester,
		Phone:        req.Phone,
		DateOfBirth:  req.DateOfBirth,
		Address:      req.Address,
		Skills:       req.Skills,
		Achievements: req.Achievements,
		Education:    req.Education,
	})
	if err != nil {
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *StudentHandler) UploadResume(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsStudent() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is required", err)
	}

	path, err := h.uploads.Save(fh, "resumes")
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	prof, err := h.uc.SetResume(c.Context(), p.ProfileID, path)
	if err != nil {
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *StudentHandler) SyncAcademicRecords(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok || !p.IsStudent() {
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}

	var req academicRecordsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Academic records must be an array", err)
	}

	prof, err := h.uc.SyncAcademicRecords(c.Context(), p.ProfileID, req.Records)
	if err != nil {
		if errors.Is(err, ucstudent.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Academic records must be an array", err)
		}
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

// PullAcademicRecords is the admin-side sync keyed by roll number.
func (h *StudentHandler) PullAcademicRecords(c fiber.Ctx) error {
	var req academicPullRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	prof, err := h.uc.SyncAcademicRecordsByRollNumber(c.Context(), req.RollNumber, req.Records)
	if err != nil {
		if errors.Is(err, ucstudent.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "rollNumber and records are required", err)
		}
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, prof)
}

func (h *StudentHandler) List(c fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return mapStudentError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func mapStudentError(err error) error {
	switch {
	case errors.Is(err, ucstudent.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student profile not found", err)
	case errors.Is(err, ucstudent.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
