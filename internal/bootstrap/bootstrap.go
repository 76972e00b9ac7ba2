package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	appControllers "github.com/mentorhub/mentorhub/internal/app/controllers"
	appMigrations "github.com/mentorhub/mentorhub/internal/app/migrations"
	appRepos "github.com/mentorhub/mentorhub/internal/app/repositories"
	appRoutes "github.com/mentorhub/mentorhub/internal/app/routes"
	appServices "github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/config"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/jobs"
	appMiddleware "github.com/mentorhub/mentorhub/internal/middleware"
	pkgAuth "github.com/mentorhub/mentorhub/internal/pkg/auth"
	"github.com/mentorhub/mentorhub/internal/pkg/helpers"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
	"github.com/mentorhub/mentorhub/internal/pkg/validation"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/mentorhub/mentorhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	ProfileService    appServices.ProfileService
	ConnectionService appServices.ConnectionService
	MentorshipService appServices.MentorshipService
	TaskService       appServices.TaskService
	EventService      appServices.EventService
	MessageService    appServices.MessageService
	BlogService       appServices.BlogService
	DashboardService  appServices.DashboardService
	Controllers       *appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	Hub               *websocket.Hub
	Scheduler         *jobs.Scheduler
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

// SetupDatabase establishes the database connection, runs migrations and seeds the admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if migrationsDir := cfg.Server.MigrationsDir; migrationsDir != "" {
		lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			dbPool.Close()
			return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}
		if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	repos := appRepos.NewRepositories(dbPool)
	if err := seed.CreateDefaultAdmin(ctx, repos.AccountRepository, repos.Transactor, cfg.Seed, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and background workers.
func BuildDependencies(cfg *config.Config, conn db.TxBeginner, lgr zerolog.Logger) (*Dependencies, error) {
	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(conn)
	repos := deps.Repos

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "websocket").Logger())

	deps.AuthzService = appAuth.NewAuthorizationService(repos.ProfileRepository)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	policy := domain.RequestPolicy{AllowRerequestAfterDecline: cfg.Relationships.AllowRerequestAfterDecline}

	deps.AuthService = appServices.NewAuthService(
		repos.AccountRepository,
		repos.ProfileRepository,
		repos.TokenRepository,
		repos.Transactor,
		deps.JWTService,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(repos.ProfileRepository, deps.AuthzService, lgr)
	deps.ConnectionService = appServices.NewConnectionService(
		repos.ConnectionRepository, repos.ProfileRepository, deps.AuthzService, policy, deps.Hub, lgr)
	deps.MentorshipService = appServices.NewMentorshipService(
		repos.MentorshipRequestRepository, repos.ProfileRepository, repos.Transactor, deps.AuthzService, policy, deps.Hub, lgr)
	deps.TaskService = appServices.NewTaskService(repos.TaskRepository, repos.ProfileRepository, deps.AuthzService, deps.Hub, lgr)
	deps.EventService = appServices.NewEventService(repos.EventRepository, deps.AuthzService, deps.Hub, lgr)
	deps.MessageService = appServices.NewMessageService(repos.MessageRepository, repos.ProfileRepository, deps.AuthzService, deps.Hub, lgr)
	deps.BlogService = appServices.NewBlogService(repos.BlogRepository, deps.AuthzService, deps.Hub, lgr)
	deps.DashboardService = appServices.NewDashboardService(
		repos.ProfileRepository, repos.MentorshipRequestRepository,
		deps.MentorshipService, deps.TaskService, deps.EventService, deps.AuthzService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		Profile:    appControllers.NewProfileController(deps.ProfileService, lgr),
		Dashboard:  appControllers.NewDashboardController(deps.DashboardService),
		Connection: appControllers.NewConnectionController(deps.ConnectionService, lgr),
		Mentorship: appControllers.NewMentorshipController(deps.MentorshipService, lgr),
		Task:       appControllers.NewTaskController(deps.TaskService, lgr),
		Event:      appControllers.NewEventController(deps.EventService, lgr),
		Message:    appControllers.NewMessageController(deps.MessageService, lgr),
		Blog:       appControllers.NewBlogController(deps.BlogService, lgr),
		WebSocket:  websocket.NewHandler(deps.Hub, cfg.Server.CORSOrigins, lgr),
	}

	ttl := helpers.ParseDuration(cfg.Relationships.PendingTTL, 0)
	if ttl > 0 {
		job := jobs.NewExpiryJob(ttl, repos.ConnectionRepository, repos.MentorshipRequestRepository, lgr)
		scheduler, err := jobs.NewScheduler(cfg.Relationships.ExpirySchedule, job, lgr)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule expiry job: %w", err)
		}
		deps.Scheduler = scheduler
		lgr.Info().Dur("pendingTTL", ttl).Str("schedule", cfg.Relationships.ExpirySchedule).Msg("Pending expiry enabled")
	}

	return deps, nil
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
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		appMiddleware.ErrorHandler(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
