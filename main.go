package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fleet-admin/cmd"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/usecase"
	"fleet-admin/internal/wire"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/database"
	"fleet-admin/pkg/maps"
	"fleet-admin/pkg/sms"
	"fleet-admin/pkg/storage"
	"fleet-admin/pkg/utils"
	"fleet-admin/pkg/websocket"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	deps, closeDeps := buildDeps(ctx, config, logger)
	defer closeDeps()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	app := wire.Wiring(repos, deps, hub, config, logger)
	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}
	go app.Service.Tracking.Run(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// buildDeps connects the optional outside services. A service that is not
// configured or fails to start is left nil, never a typed nil pointer.
func buildDeps(ctx context.Context, config *utils.Config, logger *zap.Logger) (usecase.Deps, func()) {
	var deps usecase.Deps
	closeFn := func() {}

	if s3, err := storage.NewS3Storage(ctx, config.Storage.Region, config.Storage.Endpoint, config.Storage.PublicBaseURL, logger); err != nil {
		logger.Warn("Object storage disabled, uploads will be rejected", zap.Error(err))
	} else {
		deps.Storage = s3
	}

	if config.SMS.AccountSID != "" {
		deps.SMS = sms.NewTwilioSender(config.SMS.AccountSID, config.SMS.AuthToken, config.SMS.FromNumber, logger)
	} else {
		logger.Warn("Twilio not configured, OTP codes are written to the log")
		deps.SMS = sms.NewLogSender(logger)
	}

	if config.Maps.APIKey != "" {
		routes, err := maps.NewGoogleRouteProvider(config.Maps.APIKey)
		if err != nil {
			logger.Warn("Route provider disabled, using straight-line estimates", zap.Error(err))
		} else {
			deps.Routes = routes
		}
	}

	if redis, err := cache.NewRedisCache(config.Redis.Addr, config.Redis.Password, config.Redis.DB); err != nil {
		logger.Warn("Redis unavailable, tracking snapshots kept in memory only", zap.Error(err))
	} else {
		deps.Snapshots = redis
		closeFn = func() {
			if err := redis.Close(); err != nil {
				logger.Warn("Failed to close redis", zap.Error(err))
			}
		}
	}

	return deps, closeFn
}
