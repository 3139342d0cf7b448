package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	appControllers "github.com/labspace/praktikum/internal/app/controllers"
	appMigrations "github.com/labspace/praktikum/internal/app/migrations"
	appRepos "github.com/labspace/praktikum/internal/app/repositories"
	appRoutes "github.com/labspace/praktikum/internal/app/routes"
	appServices "github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/config"
	"github.com/labspace/praktikum/internal/db"
	appMiddleware "github.com/labspace/praktikum/internal/middleware"
	pkgAuth "github.com/labspace/praktikum/internal/pkg/auth"
	"github.com/labspace/praktikum/internal/pkg/filestorage"
	"github.com/labspace/praktikum/internal/pkg/helpers"
	"github.com/labspace/praktikum/internal/pkg/logger"
	"github.com/labspace/praktikum/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	ClassController      *appControllers.ClassController
	FolderController     *appControllers.FolderController
	ModuleController     *appControllers.ModuleController
	AssignmentController *appControllers.AssignmentController
	NewsController       *appControllers.NewsController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failure should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	// Refresh tokens past their expiry are dead weight; purge them at boot
	if err := appRepos.NewTokenRepository(dbPool).DeleteExpiredTokens(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving path in the server
	fileStorageBaseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ClassController = appControllers.NewClassController(deps.Services.ClassService)
	deps.FolderController = appControllers.NewFolderController(deps.Services.FolderService)
	deps.ModuleController = appControllers.NewModuleController(deps.Services.ModuleService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.Services.AssignmentService)
	deps.NewsController = appControllers.NewNewsController(deps.Services.NewsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClassController,
		deps.FolderController,
		deps.ModuleController,
		deps.AssignmentController,
		deps.NewsController,
		deps.AuthMiddleware,
	)

	return router
}
