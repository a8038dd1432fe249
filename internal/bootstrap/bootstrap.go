package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/squadran/buildforge/internal/app/controllers"
	appRepos "github.com/squadran/buildforge/internal/app/repositories"
	appRoutes "github.com/squadran/buildforge/internal/app/routes"
	appServices "github.com/squadran/buildforge/internal/app/services"
	"github.com/squadran/buildforge/internal/config"
	appMiddleware "github.com/squadran/buildforge/internal/middleware"
	"github.com/squadran/buildforge/internal/pkg/auth"
	"github.com/squadran/buildforge/internal/pkg/idgen"
	"github.com/squadran/buildforge/internal/pkg/logger"
	"github.com/squadran/buildforge/internal/store"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	Services              *appServices.Services
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	InstitutionController *appControllers.InstitutionController
	PostController        *appControllers.PostController
	MessageController     *appControllers.MessageController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	TokenService          *auth.TokenService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env file is fine; real environments inject variables
	// directly.
	_ = godotenv.Load()

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

// SetupStore opens the entity store selected by the configuration.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case "memory":
		lgr.Info().Msg("Using in-memory entity store")
		return store.NewMemoryStore(), nil
	case "file":
		lgr.Info().Str("dataDir", cfg.Store.DataDir).Msg("Using file entity store")
		return store.NewFileStore(cfg.Store.DataDir)
	case "postgres":
		lgr.Info().Str("host", cfg.Store.Postgres.Host).Msg("Using Postgres entity store")
		s, err := store.NewPostgresStore(ctx, cfg.PostgresDSN())
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to Postgres")
			return nil, err
		}
		return s, nil
	case "redis":
		lgr.Info().Str("addr", cfg.Store.Redis.Addr).Msg("Using Redis entity store")
		s, err := store.NewRedisStore(ctx, cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, cfg.Store.Redis.KeyPrefix)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to Redis")
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and
// controllers over the given store.
func BuildDependencies(cfg *config.Config, s store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(s)

	deps.TokenService = auth.NewTokenService(auth.TokenConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, idgen.New(), cfg.Auth, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.TokenService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Identity, deps.TokenService)
	deps.UserController = appControllers.NewUserController(deps.Services.Identity)
	deps.InstitutionController = appControllers.NewInstitutionController(deps.Services.Tenancy)
	deps.PostController = appControllers.NewPostController(deps.Services.Workflow, deps.Services.Identity)
	deps.MessageController = appControllers.NewMessageController(deps.Services.Messaging)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.InstitutionController,
		deps.PostController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	return router
}
