package routes

import (
	"github.com/gofiber/fiber/v3"

	"placement-hub/internal/delivery/http/handler"
	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/ws"
)

type Registry struct {
	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	students     *handler.StudentHandler
	companies    *handler.CompanyHandler
	jobs         *handler.JobHandler
	applications *handler.ApplicationHandler
	interviews   *handler.InterviewHandler
	drives       *handler.DriveHandler
	reports      *handler.ReportHandler
	events       *ws.Handler

	authMw *middleware.AuthMiddleware
}

type RegistryDeps struct {
	Auth         *handler.AuthHandler
	Students     *handler.StudentHandler
	Companies    *handler.CompanyHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Interviews   *handler.InterviewHandler
	Drives       *handler.DriveHandler
	Reports      *handler.ReportHandler
	Events       *ws.Handler
	AuthMw       *middleware.AuthMiddleware
}

func NewRegistry(deps RegistryDeps) *Registry {
	return &Registry{
		health:       handler.NewHealthHandler(),
		auth:         deps.Auth,
		students:     deps.Students,
		companies:    deps.Companies,
		jobs:         deps.Jobs,
		applications: deps.Applications,
		interviews:   deps.Interviews,
		drives:       deps.Drives,
		reports:      deps.Reports,
		events:       deps.Events,
		authMw:       deps.AuthMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	authed := r.authMw.Middleware()

	r.auth.RegisterRoutes(api.Group("/auth"), authed)

	// Public browsing surface, no token required.
	r.jobs.RegisterPublicRoutes(api.Group("/jobs"))
	r.companies.RegisterPublicRoutes(api.Group("/companies"))
	r.drives.RegisterPublicRoutes(api.Group("/drives"))

	protected := api.Group("", authed)

	students := protected.Group("/students")
	r.students.RegisterRoutes(students)

	companies := protected.Group("/companies")
	r.companies.RegisterRoutes(companies)

	companyJobs := protected.Group("/company/jobs", middleware.RequireRole(user.RoleCompany, user.RoleAdmin))
	r.jobs.RegisterCompanyRoutes(companyJobs)
	companyJobs.Get("/:id/applications", r.applications.ListForJob)

	applications := protected.Group("/applications")
	r.applications.RegisterRoutes(applications)

	interviews := protected.Group("/interviews")
	r.interviews.RegisterRoutes(interviews)

	admin := protected.Group("/admin", middleware.RequireRole(user.RoleAdmin))
	r.students.RegisterAdminRoutes(admin.Group("/students"))
	r.drives.RegisterAdminRoutes(admin.Group("/drives"))
	r.reports.RegisterRoutes(admin.Group("/reports"))

	integrations := admin.Group("/integrations")
	integrations.Post("/academic-records", r.students.PullAcademicRecords)
	integrations.Post("/companies/import", r.companies.Import)
	integrations.Get("/companies/export", r.companies.Export)

	if r.events != nil {
		api.Get("/ws/events", r.events.HandleEventsWS, authed)
	}
}
