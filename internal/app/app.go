package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haguru/booknest/config"
	"github.com/haguru/booknest/internal/auth"
	"github.com/haguru/booknest/internal/catalog"
	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/middleware"
	"github.com/haguru/booknest/internal/routes"
	"github.com/haguru/booknest/internal/server"
	mongoUserRepo "github.com/haguru/booknest/internal/userrepo/mongo"
	postgresUserRepo "github.com/haguru/booknest/internal/userrepo/postgres"
	"github.com/haguru/booknest/internal/userservice"
	"github.com/haguru/booknest/pkg/databases/mongo"
	"github.com/haguru/booknest/pkg/databases/postgres"
	"github.com/haguru/booknest/pkg/metrics"
	zerologger "github.com/haguru/booknest/pkg/zerolog"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultRequestsPerSecond = 20
	DefaultBurst             = 40
	ShutdownTimeout          = 10 * time.Second
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	privateKey *ecdsa.PrivateKey
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerologger.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)

	metricsInstance := app.initializeMetrics()

	// The signing key is process-wide, read-only state; a missing key is
	// fatal here rather than per-request.
	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %v", err)
	}

	userRepo, err := app.initializeUserRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user repository: %v", err)
	}

	userService := userservice.NewUserService(userRepo, logger)
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	route := routes.NewRoute(metricsInstance, userService, catalogClient, app.privateKey, logger, validator)

	metricsHandler := promhttp.HandlerFor(
		metricsInstance.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	if err := app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP); err != nil {
		return nil, fmt.Errorf("failed to add metrics route: %v", err)
	}

	limiter := rate.NewLimiter(app.requestsPerSecond(), app.burst())
	apiHandler := middleware.RateLimitMiddleware(limiter, metricsInstance)(http.HandlerFunc(route.API))

	if err := app.Server.AddRoute(routes.APIRouteAPI, apiHandler.ServeHTTP); err != nil {
		return nil, fmt.Errorf("failed to add api route: %v", err)
	}

	return app, nil
}

// Run serves until the process receives SIGINT or SIGTERM, then drains
// in-flight requests before returning.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %v", err)
		}
		return nil
	case sig := <-stop:
		app.Logger.Info("Shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return app.Server.Shutdown(ctx)
	}
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounterVec(routes.APIRequestsTotal, routes.APIRequestsTotalHelp,
		[]string{routes.OperationLabel})
	appMetrics.RegisterCounterVec(routes.APISuccessTotal, routes.APISuccessTotalHelp,
		[]string{routes.OperationLabel})
	appMetrics.RegisterCounterVec(routes.APIErrorsTotal, routes.APIErrorsTotalHelp,
		[]string{routes.OperationLabel, routes.KindLabel})
	appMetrics.RegisterHistogramVec(routes.APIDurationSeconds, routes.APIDurationSecondsHelp,
		routes.APIDurationSecondsBuckets, []string{routes.OperationLabel})
	appMetrics.RegisterCounter(routes.RateLimitedTotal, routes.RateLimitedTotalHelp)

	return appMetrics
}

func (app *App) initializeUserRepo() (interfaces.UserRepository, error) {
	var userRepo interfaces.UserRepository

	switch app.Config.Database.Type {
	case "mongo":
		dbClient, err := mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %v", err)
		}
		if err = dbClient.Connect(context.Background(), app.Config.Database.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
		}
		userRepo, err = mongoUserRepo.NewMongoUserRepository(dbClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB repository: %v", err)
		}

	case "postgres":
		dbClient := postgres.NewPostgresDatabaseClient(&app.Config.Database.Postgres, app.Logger)
		if err := dbClient.Connect(context.Background(), app.Config.Database.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
		}
		var err error
		userRepo, err = postgresUserRepo.NewPostgresUserRepository(dbClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL repository: %v", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	// Ensure unique indexes exist before taking traffic.
	if err := userRepo.EnsureIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure indices: %v", err)
	}

	return userRepo, nil
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %v", err)
	}

	app.privateKey = privateKey
	return nil
}

func (app *App) requestsPerSecond() rate.Limit {
	if app.Config.RateLimit.RequestsPerSecond > 0 {
		return rate.Limit(app.Config.RateLimit.RequestsPerSecond)
	}
	return DefaultRequestsPerSecond
}

func (app *App) burst() int {
	if app.Config.RateLimit.Burst > 0 {
		return app.Config.RateLimit.Burst
	}
	return DefaultBurst
}
