package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	domainRepo "github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/internal/infrastructure/database"
	"github.com/sangkips/academy-console/internal/infrastructure/render"
	"github.com/sangkips/academy-console/internal/infrastructure/repository"
	"github.com/sangkips/academy-console/internal/infrastructure/repository/memory"
	"github.com/sangkips/academy-console/internal/presentation/http/handler"
	"github.com/sangkips/academy-console/internal/presentation/http/routes"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/sangkips/academy-console/pkg/idle"
	"github.com/sangkips/academy-console/pkg/printer"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration
	cfg := config.Load(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories
	mem := memory.NewDB()
	var (
		sessionRepo     domainRepo.SessionRepository
		idempotencyRepo domainRepo.IdempotencyRepository
	)
	if cfg.Database.UsesPostgres() {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		sessionRepo = repository.NewSessionRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	} else {
		logger.Info("using in-memory session store")
		sessionRepo = memory.NewSessionRepository(mem)
		idempotencyRepo = memory.NewIdempotencyRepository(mem)
	}
	draftRepo := memory.NewDraftRepository(mem)
	editRepo := memory.NewStudentEditRepository(mem)

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil, logger)
	renderer := render.NewPDFRenderer()
	schedules := feecalc.DefaultSchedules()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer func() { _ = thermalPrinter.Close() }()
	header := entity.ReceiptHeader{AcademyName: cfg.Receipt.AcademyName, GSTIN: cfg.Receipt.GSTIN}

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo, draftRepo, client, cfg.Session, idle.RealClock, logger)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width, header, logger)
	draftService := service.NewDraftService(draftRepo, client, schedules, cfg.Receipt)
	receiptService := service.NewReceiptService(draftRepo, editRepo, client, renderer, printerService, cfg.Receipt, logger)
	studentService := service.NewStudentService(client, editRepo, cfg.Roster.PageSize, logger)
	invoiceService := service.NewInvoiceService(client, renderer, schedules, cfg.Receipt)
	dictationService := service.NewDictationService(rand.NewSource(time.Now().UnixNano()))
	adminService := service.NewAdminService(client, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(sessionService),
		Student:   handler.NewStudentHandler(studentService),
		Draft:     handler.NewDraftHandler(draftService, receiptService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dictation: handler.NewDictationHandler(dictationService),
		Printer:   handler.NewPrinterHandler(printerService),
		Admin:     handler.NewAdminHandler(adminService),
	}

	// Setup routes
	router, stopLimiters := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		Sessions:        sessionService,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, sessionService, idempotencyRepo, logger)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("name", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	stopLimiters()
}

// sweep removes sessions that went stale while no request touched them and
// expired idempotency keys.
func sweep(ctx context.Context, sessions *service.SessionService, keys domainRepo.IdempotencyRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.Sweep(ctx)
			if err != nil {
				logger.Warn("session sweep failed", zap.Error(err))
			} else if n > 0 {
				logger.Info("stale sessions removed", zap.Int64("count", n))
			}
			if err := keys.DeleteExpired(ctx); err != nil {
				logger.Warn("idempotency sweep failed", zap.Error(err))
			}
		}
	}
}
