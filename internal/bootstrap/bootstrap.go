// Package bootstrap wires configuration, storage, services and controllers
// into a gin engine.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appControllers "github.com/yigit/growthpath/internal/app/controllers"
	appMigrations "github.com/yigit/growthpath/internal/app/migrations"
	appRepos "github.com/yigit/growthpath/internal/app/repositories"
	appRoutes "github.com/yigit/growthpath/internal/app/routes"
	appServices "github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/app/store/memstore"
	"github.com/yigit/growthpath/internal/config"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/domain/progression"
	appMiddleware "github.com/yigit/growthpath/internal/middleware"
	pkgAuth "github.com/yigit/growthpath/internal/pkg/auth"
	"github.com/yigit/growthpath/internal/pkg/cache"
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"github.com/yigit/growthpath/internal/pkg/logger"
	"github.com/yigit/growthpath/internal/seed"
)

// DefaultConfigPath is used when CONFIG_PATH is unset.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store    store.Store
	Postgres *db.PostgresDB // nil with the memory driver
	Cache    cache.Cache
	Rules    progression.Rules

	ProgressService    appServices.ProgressService
	OnboardingService  appServices.OnboardingService
	TaskService        appServices.TaskService
	WorkService        appServices.WorkService
	ReviewService      appServices.ReviewService
	ObservationService appServices.ObservationService
	AdminService       appServices.AdminService

	TaskController        *appControllers.TaskController
	WorkController        *appControllers.WorkController
	ProgressController    *appControllers.ProgressController
	OnboardingController  *appControllers.OnboardingController
	ObservationController *appControllers.ObservationController
	AdminController       *appControllers.AdminController
	HealthController      *appControllers.HealthController

	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// ConfigPath returns CONFIG_PATH or the default location.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr := logger.Logger()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. With the postgres driver it
// connects, applies migrations when auto_migrate is set and seeds the task
// catalog.
func SetupStore(ctx context.Context, cfg *config.Config, rules progression.Rules, lgr zerolog.Logger) (store.Store, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store, data is lost on restart")
		return memstore.New(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.AutoMigrate {
		if err := RunMigrations(ctx, database, cfg.Database.MigrationsDir, lgr); err != nil {
			database.Close()
			return nil, nil, err
		}
	}

	repos := appRepos.NewRepositories(database)
	if err := seed.Tasks(ctx, repos.Tasks(), rules.Tasks, lgr); err != nil {
		// The API only reads tasks from the catalog, so a failed seed is not fatal.
		lgr.Error().Err(err).Msg("Failed to seed task catalog, proceeding anyway...")
	}

	return repos, database, nil
}

// RunMigrations applies every pending migration in dir.
func RunMigrations(ctx context.Context, database *db.PostgresDB, dir string, lgr zerolog.Logger) error {
	if _, err := os.Stat(dir); err != nil {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	lgr.Info().Str("path", dir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, dir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// NewJWTService builds the token validator from config.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
		AdminRole:   cfg.JWT.AdminRole,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
	})
}

// BuildDependencies initializes services and controllers on top of st.
func BuildDependencies(cfg *config.Config, st store.Store, pg *db.PostgresDB, c cache.Cache, rules progression.Rules, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Store:    st,
		Postgres: pg,
		Cache:    c,
		Rules:    rules,
		Logger:   lgr,
	}

	progressTTL := helpers.ParseDuration(cfg.Redis.ProgressTTL, 5*time.Minute)
	deps.ProgressService = appServices.NewProgressService(st, rules, c, progressTTL, logger.Component("progress"))
	deps.OnboardingService = appServices.NewOnboardingService(st, deps.ProgressService, logger.Component("onboarding"))
	deps.TaskService = appServices.NewTaskService(st, rules.Tasks, logger.Component("tasks"))
	deps.WorkService = appServices.NewWorkService(st, rules.Tasks, logger.Component("works"))
	deps.ReviewService = appServices.NewReviewService(st, rules, deps.ProgressService, logger.Component("review"))
	deps.ObservationService = appServices.NewObservationService(st, logger.Component("observations"))
	deps.AdminService = appServices.NewAdminService(st, rules, logger.Component("admin"))

	deps.JWTService = NewJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	checks := map[string]appControllers.Pinger{"database": st}
	if rc, ok := c.(*cache.RedisCache); ok {
		checks["redis"] = rc
	}

	deps.TaskController = appControllers.NewTaskController(deps.TaskService)
	deps.WorkController = appControllers.NewWorkController(deps.WorkService)
	deps.ProgressController = appControllers.NewProgressController(deps.ProgressService)
	deps.OnboardingController = appControllers.NewOnboardingController(deps.OnboardingService)
	deps.ObservationController = appControllers.NewObservationController(deps.ObservationService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.ReviewService, deps.ObservationService)
	deps.HealthController = appControllers.NewHealthController(checks)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	setupSwagger(router)
	if swaggerEnabled {
		lgr.Info().Msg("Swagger UI served at /swagger/index.html")
	}

	appRoutes.SetupRouter(router,
		deps.TaskController,
		deps.WorkController,
		deps.ProgressController,
		deps.OnboardingController,
		deps.ObservationController,
		deps.AdminController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}

// Close releases the cache and database pool.
func (d *Dependencies) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Error().Err(err).Msg("Failed to close cache")
		}
	}
	if d.Postgres != nil {
		d.Logger.Info().Msg("Closing database connection pool...")
		d.Postgres.Close()
	}
}
