package routes

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/config"
	domainRepo "github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/internal/presentation/http/handler"
	"github.com/sangkips/academy-console/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Draft     *handler.DraftHandler
	Invoice   *handler.InvoiceHandler
	Dictation *handler.DictationHandler
	Printer   *handler.PrinterHandler
	Admin     *handler.AdminHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	Sessions        *service.SessionService
	IdempotencyRepo domainRepo.IdempotencyRepository
}

func init() {
	// Report binding failures under their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// Setup creates the Gin router and registers all routes. The returned stop
// func ends the rate limiters' cleanup loops and must be called on shutdown.
func Setup(h *Handlers, deps *Deps) (*gin.Engine, func()) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.SessionStore(&deps.Cfg.Session))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	guard := middleware.AuthMiddleware(deps.Sessions)

	loginLimiter := middleware.NewKeyedRateLimiter(middleware.LoginRateLimiterConfig(deps.Cfg.RateLimit.LoginPerMinute))
	auth := router.Group("/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(middleware.ByClientIP), h.Auth.Login)
		auth.POST("/logout", guard, h.Auth.Logout)
	}

	api := router.Group("/api")
	api.Use(guard)

	rateLimiter := middleware.NewKeyedRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
		BurstSize:         deps.Cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	api.Use(rateLimiter.Middleware(middleware.BySession))

	registerSessionRoutes(api, h)
	registerStudentRoutes(api, h)
	registerReceiptRoutes(api, h, deps, logger)
	registerDictationRoutes(api, h)
	registerPrinterRoutes(api, h)
	registerAdminRoutes(api, h)

	stop := func() {
		loginLimiter.Stop()
		rateLimiter.Stop()
	}
	return router, stop
}

func registerSessionRoutes(rg *gin.RouterGroup, h *Handlers) {
	session := rg.Group("/session")
	{
		session.GET("", h.Auth.Session)
		session.POST("/activity", h.Auth.Activity)
	}
}

func registerStudentRoutes(rg *gin.RouterGroup, h *Handlers) {
	students := rg.Group("/students")
	{
		students.GET("", h.Student.List)
		students.GET("/lookup", h.Student.Lookup)
		students.GET("/export", h.Student.Export)
		students.POST("", h.Student.Create)
		students.GET("/:id", h.Student.Get)
		students.PATCH("/:id", h.Student.Update)
		students.GET("/:id/edits", h.Student.Edits)
	}
}

func registerReceiptRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps, logger *zap.Logger) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: logger,
	})

	draft := rg.Group("/draft")
	{
		draft.GET("", h.Draft.Get)
		draft.POST("", h.Draft.Start)
		draft.DELETE("", h.Draft.Discard)
		draft.PUT("/student", h.Draft.SelectStudent)
		draft.PUT("/fees", h.Draft.SetFees)
		draft.PUT("/details", h.Draft.SetDetails)
		draft.POST("/save", idempotency, h.Draft.Save)
		draft.POST("/print", h.Draft.Print)
		draft.GET("/pdf", h.Draft.PDF)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.Invoice.List)
		receipts.GET("/:id", h.Invoice.Get)
		receipts.GET("/:id/pdf", h.Invoice.PDF)
	}
}

func registerDictationRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/dictation", h.Dictation.Generate)
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

func registerAdminRoutes(rg *gin.RouterGroup, h *Handlers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.DELETE("/students", h.Admin.PurgeStudents)
		admin.DELETE("/receipts", h.Admin.PurgeReceipts)
	}
}
