package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saifinance/loan-inquiry-api/internal/admin"
	"github.com/saifinance/loan-inquiry-api/internal/application"
	"github.com/saifinance/loan-inquiry-api/internal/auth"
	"github.com/saifinance/loan-inquiry-api/internal/config"
	"github.com/saifinance/loan-inquiry-api/internal/middleware"
	"github.com/saifinance/loan-inquiry-api/internal/pdf"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside of dev the database is mandatory, even though main also checks.
	if !isDev(d.Cfg.AppEnv) && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(d.Cfg.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: true,
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories; memory fallback keeps local dev and tests store-free.
	var adminRepo admin.Repository
	var appRepo application.Repository
	if d.DB != nil {
		adminRepo = admin.NewPostgresRepository(d.DB)
		appRepo = application.NewPostgresRepository(d.DB)
	} else {
		adminRepo = admin.NewMemoryRepository()
		appRepo = application.NewMemoryRepository()
	}

	// Services and handlers
	authSvc := auth.NewService(d.Cfg, adminRepo)
	authHandler := auth.NewHandler(authSvc, d.Logger)
	appSvc := application.NewService(appRepo)
	appHandler := application.NewHandler(appSvc, pdf.NewRenderer(), d.Logger)

	bearer := middleware.BearerAuth(d.Cfg.JWTSecret)

	RegisterAdminRoutes(app, authHandler, appHandler, bearer)
	RegisterSubmissionRoutes(app, appHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
