package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unirecords/internal/app/controllers"
	appMigrations "github.com/yigit/unirecords/internal/app/migrations"
	appRepos "github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/app/repositories/memory"
	appRoutes "github.com/yigit/unirecords/internal/app/routes"
	appServices "github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/config"
	"github.com/yigit/unirecords/internal/db"
	appMiddleware "github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/metrics"
	"github.com/yigit/unirecords/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repository           appServices.RecordsRepository
	RecordsService       *appServices.RecordsService
	Metrics              *metrics.Collector
	Registry             *prometheus.Registry
	DepartmentController *appControllers.DepartmentController
	FacultyController    *appControllers.FacultyController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	ReportController     *appControllers.ReportController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "text",
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
// The memory driver needs neither and yields a nil *db.DB.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory records store, data is lost on exit")
		return nil, nil
	}

	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if _, err := RunMigrations(ctx, database, lgr); err != nil {
		_ = database.Close()
		return nil, err
	}

	return database, nil
}

// RunMigrations applies pending schema migrations and returns how many ran
func RunMigrations(ctx context.Context, database *db.DB, lgr zerolog.Logger) (int, error) {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database, lgr).Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return applied, nil
}

// NewRepository returns the SQL repository for an open database, or the in-memory one when database is nil
func NewRepository(database *db.DB) appServices.RecordsRepository {
	if database == nil {
		return memory.NewRepository()
	}
	return appRepos.NewSQLRepository(database)
}

// BuildDependencies initializes the repository, service, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   lgr,
		Metrics:  metrics.NewCollector(),
		Registry: prometheus.NewRegistry(),
	}

	if err := deps.Registry.Register(deps.Metrics); err != nil {
		return nil, fmt.Errorf("failed to register records metrics: %w", err)
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps.Repository = NewRepository(database)
	deps.RecordsService = appServices.NewRecordsService(deps.Repository, deps.Metrics, lgr)

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, deps.RecordsService, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	deps.DepartmentController = appControllers.NewDepartmentController(deps.RecordsService)
	deps.FacultyController = appControllers.NewFacultyController(deps.RecordsService)
	deps.StudentController = appControllers.NewStudentController(deps.RecordsService)
	deps.CourseController = appControllers.NewCourseController(deps.RecordsService)
	deps.ReportController = appControllers.NewReportController(deps.RecordsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
	)

	appRoutes.SetupRouter(router,
		deps.DepartmentController,
		deps.FacultyController,
		deps.StudentController,
		deps.CourseController,
		deps.ReportController,
	)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
