package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/task-tracker/api"
	"github.com/sahilchouksey/task-tracker/config"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/router"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/services/cron"
	"github.com/sahilchouksey/task-tracker/utils/middleware"
	"github.com/sirupsen/logrus"
)

// SetupStorage opens and initializes the backend named by STORAGE_DRIVER.
func SetupStorage(env *config.EnvironmentVariable, log logrus.FieldLogger) (database.Storage, error) {
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var store database.Storage
	switch env.STORAGE_DRIVER {
	case config.DriverPostgres:
		gormStore, err := database.StartGORM(env, log)
		if err != nil {
			log.Warn("Check whether Postgres is running and the DB_* variables are correct")
			return nil, err
		}
		store = gormStore
	case config.DriverRedis:
		medium, err := database.NewRedisMedium(env.REDIS_URL, "task-tracker:")
		if err != nil {
			return nil, err
		}
		store = database.NewSnapshotStore(medium, env.TASKS_FILE, env.USERS_FILE, log)
	case config.DriverSpaces:
		medium, err := database.NewSpacesMedium(database.SpacesConfig{
			AccessKey: env.DO_SPACES_KEY,
			SecretKey: env.DO_SPACES_SECRET,
			Bucket:    env.DO_SPACES_BUCKET,
			Region:    env.DO_SPACES_REGION,
			Endpoint:  env.DO_SPACES_ENDPOINT,
			Prefix:    env.DO_SPACES_PREFIX,
		})
		if err != nil {
			return nil, err
		}
		store = database.NewSnapshotStore(medium, env.TASKS_FILE, env.USERS_FILE, log)
	default:
		store = database.NewSnapshotStore(database.NewFileMedium(), env.TASKS_FILE, env.USERS_FILE, log)
	}

	if err := store.Init(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize %s storage: %w", env.STORAGE_DRIVER, err)
	}

	log.WithField("driver", env.STORAGE_DRIVER).Debug("Storage ready")
	return store, nil
}

// SetupAndRunServer serves the HTTP API until SIGINT or SIGTERM.
func SetupAndRunServer(env *config.EnvironmentVariable, log logrus.FieldLogger) error {
	store, err := SetupStorage(env, log)
	if err != nil {
		return err
	}
	manager := services.NewTaskManager(store, log)

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if env.CRON_ENABLED {
		cronManager = cron.NewCronManager(manager, env.REMINDER_SCHEDULE, log)
		mailer := services.NewEmailService(services.EmailConfig{
			Host:     env.SMTP_HOST,
			Port:     env.SMTP_PORT,
			Username: env.SMTP_USERNAME,
			Password: env.SMTP_PASSWORD,
			From:     env.SMTP_FROM,
			To:       env.REMINDER_EMAIL,
		}, log)
		if mailer.IsConfigured() {
			cronManager.SetNotifier(mailer)
		}
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.WithError(err).Warn("Failed to start cron jobs")
			cronManager = nil
		}
	}

	// Defer closing storage and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("Failed to close storage")
		}
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT), log)
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Minute,
		AccessLog:         os.Stderr,
	})

	router.SetupRoutes(app, manager, store)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}
