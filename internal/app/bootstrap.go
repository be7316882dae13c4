package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"placement-hub/internal/config"
	"placement-hub/internal/delivery/http/handler"
	"placement-hub/internal/delivery/http/middleware"
	"placement-hub/internal/delivery/http/routes"
	"placement-hub/internal/infrastructure/persistence/postgres"
	"placement-hub/internal/infrastructure/upload"
	"placement-hub/internal/meeting"
	"placement-hub/internal/notify"
	"placement-hub/internal/pkg/jwt"
	"placement-hub/internal/reminder"
	ucapplication "placement-hub/internal/usecase/application"
	ucauth "placement-hub/internal/usecase/auth"
	uccompany "placement-hub/internal/usecase/company"
	ucdrive "placement-hub/internal/usecase/drive"
	ucinterview "placement-hub/internal/usecase/interview"
	ucjob "placement-hub/internal/usecase/job"
	ucreport "placement-hub/internal/usecase/report"
	ucstudent "placement-hub/internal/usecase/student"
	"placement-hub/internal/ws"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the full dependency graph and starts the background
// workers (event hub, reminder sweep). The returned cleanup stops the
// workers and releases infrastructure connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	ctn, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	userRepo := postgres.NewUserRepository(ctn.DB)
	studentRepo := postgres.NewStudentRepository(ctn.DB)
	companyRepo := postgres.NewCompanyRepository(ctn.DB)
	jobRepo := postgres.NewJobRepository(ctn.DB)
	applicationRepo := postgres.NewApplicationRepository(ctn.DB)
	interviewRepo := postgres.NewInterviewRepository(ctn.DB)
	driveRepo := postgres.NewDriveRepository(ctn.DB)
	reportRepo := postgres.NewReportRepository(ctn.DB)
	accountRepo := postgres.NewAccountRepository(ctn.DB)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	mailer := notify.NewSMTPMailer(cfg.SMTP, logger)
	notifier := notify.NewNotifier(mailer, logger)

	hub := ws.NewHub(logger)
	publisher := ws.NewPublisher(hub)

	rooms := meeting.NewFailoverProvisioner(
		meeting.NewDailyProvisioner(cfg.Meeting.DailyAPIKey, cfg.Meeting.HTTPTimeout),
		meeting.NewJitsiProvisioner(),
		logger,
	)

	authUC := ucauth.NewService(userRepo, studentRepo, companyRepo, accountRepo, jwtSvc)
	studentUC := ucstudent.NewService(studentRepo)
	companyUC := uccompany.NewService(companyRepo, userRepo, accountRepo)
	jobUC := ucjob.NewService(jobRepo)
	applicationUC := ucapplication.NewService(applicationRepo, jobRepo, studentRepo, userRepo, notifier, publisher)
	interviewUC := ucinterview.NewService(interviewRepo, applicationRepo, jobRepo, studentRepo, userRepo, rooms, notifier, publisher, logger)
	driveUC := ucdrive.NewService(driveRepo, jobRepo, interviewRepo, reportRepo)
	reportUC := ucreport.NewService(reportRepo, studentRepo, companyRepo, driveRepo, ctn.Cache, logger)

	uploads := upload.NewLocalStore(cfg.Upload.Dir)
	authMw := middleware.NewAuthMiddleware(jwtSvc, studentRepo, companyRepo)

	registry := routes.NewRegistry(routes.RegistryDeps{
		Auth:         handler.NewAuthHandler(authUC),
		Students:     handler.NewStudentHandler(studentUC, uploads),
		Companies:    handler.NewCompanyHandler(companyUC),
		Jobs:         handler.NewJobHandler(jobUC),
		Applications: handler.NewApplicationHandler(applicationUC),
		Interviews:   handler.NewInterviewHandler(interviewUC),
		Drives:       handler.NewDriveHandler(driveUC),
		Reports:      handler.NewReportHandler(reportUC),
		Events:       ws.NewHandler(hub, logger),
		AuthMw:       authMw,
	})

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	accessLog := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)
	f.Use(accessLog.Middleware())
	f.Use(errMw.Middleware())

	if cfg.Upload.Dir != "" {
		f.Use("/uploads", static.New(cfg.Upload.Dir))
	}

	registry.Register(f)

	bg, stop := context.WithCancel(context.Background())
	go hub.Run(bg)

	sweeper := reminder.NewRunner(interviewUC, cfg.Reminder.SweepInterval, logger)
	go sweeper.Run(bg)

	cleanup := func() error {
		stop()
		return ctn.Close()
	}

	return &App{Fiber: f}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
