package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shifa-care/shifa_api/internal/admin"
	"github.com/shifa-care/shifa_api/internal/appointment"
	"github.com/shifa-care/shifa_api/internal/auth"
	"github.com/shifa-care/shifa_api/internal/cache"
	"github.com/shifa-care/shifa_api/internal/catalog"
	"github.com/shifa-care/shifa_api/internal/config"
	"github.com/shifa-care/shifa_api/internal/contact"
	"github.com/shifa-care/shifa_api/internal/directory"
	"github.com/shifa-care/shifa_api/internal/identity"
	"github.com/shifa-care/shifa_api/internal/middleware"
	"github.com/shifa-care/shifa_api/internal/notification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Outside of dev a
// database and Redis are mandatory; in dev missing backends fall back to
// in-memory repositories.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Repositories, with in-memory fallbacks for dev.
	var (
		userRepo        identity.Repository
		directoryRepo   directory.Repository
		catalogRepo     catalog.Repository
		appointmentRepo appointment.Repository
		contactRepo     contact.Repository
		statsRepo       admin.Repository
	)
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		directoryRepo = directory.NewPostgresRepository(d.DB)
		catalogRepo = catalog.NewPostgresRepository(d.DB)
		appointmentRepo = appointment.NewPostgresRepository(d.DB)
		contactRepo = contact.NewPostgresRepository(d.DB)
		statsRepo = admin.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		directoryRepo = directory.NewMemoryRepository()
		catalogRepo = catalog.NewMemoryRepository()
		appointmentRepo = appointment.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
		statsRepo = admin.NewMemoryRepository()
	}

	listCache := cache.New(d.Cache, d.Cfg.CacheTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)

	// Services.
	authSvc := auth.NewService(
		userRepo,
		auth.NewPasswordHasher(d.Cfg.BcryptCost),
		auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL, d.Cfg.RefreshTokenTTL),
		auth.PhonePolicy{
			MinDigits:   d.Cfg.PhoneMinDigits,
			MaxDigits:   d.Cfg.PhoneMaxDigits,
			CountryCode: d.Cfg.PhoneCountryCode,
		},
		auth.PasswordPolicy{RequireSpecial: d.Cfg.PasswordRequireSpecial},
	)
	directorySvc := directory.NewService(directoryRepo, listCache)
	catalogSvc := catalog.NewCatalog(catalogRepo, listCache)
	appointmentSvc := appointment.NewService(appointmentRepo, directorySvc, notifier)
	contactSvc := contact.NewService(contactRepo, notifier)
	adminSvc := admin.NewService(statsRepo)

	// Handlers.
	authHandler := auth.NewHandler(authSvc)
	directoryHandler := directory.NewHandler(directorySvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	appointmentHandler := appointment.NewHandler(appointmentSvc)
	contactHandler := contact.NewHandler(contactSvc)
	adminHandler := admin.NewHandler(adminSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	requireAuth := middleware.RequireAuth(authSvc)
	requireAdmin := middleware.RequireAdmin(authSvc)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	idempotent := middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)

	RegisterAuthRoutes(api, authHandler, requireAuth, rateLimiter)
	RegisterDirectoryRoutes(api, directoryHandler, requireAuth, requireAdmin)
	RegisterCatalogRoutes(api, catalogHandler, requireAuth, requireAdmin)
	RegisterAppointmentRoutes(api, appointmentHandler, requireAuth, requireAdmin, idempotent)
	RegisterContactRoutes(api, contactHandler, requireAuth, requireAdmin)
	RegisterAdminRoutes(api, adminHandler, requireAuth, requireAdmin)

	return nil
}
