package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"course-platform/internal/config"
	"course-platform/internal/database"
	domain "course-platform/internal/domain/user"
	"course-platform/internal/mailer"
	"course-platform/internal/notification"
	"course-platform/internal/seed"
	"course-platform/internal/server"
	"course-platform/internal/storage"
	"course-platform/pkg/logger"
)

// @title                      Course Platform API
// @version                    1.0
// @description                API платформы онлайн-курсов: пользователи, курсы, главы, записи, отзывы и баны.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	appLogger := logger.New(cfg.AppEnv)
	logger.RedirectStdLog(appLogger)

	log.Println("Course Platform Server Starting...")
	log.Printf("Сервер будет запущен на %s", cfg.Server.Address())
	log.Printf("База данных: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("server stopped with error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия базы данных: %v", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	repos := server.PostgresRepositories(db.DB)

	seeder := seed.NewSeeder(repos.Categories, repos.Users, cfg.Seed, domain.Role(cfg.Roles.Admin), appLogger)
	if err := seeder.Run(ctx); err != nil {
		return err
	}

	images, err := newImageStorage(ctx, cfg)
	if err != nil {
		return err
	}

	renderer, err := mailer.NewRenderer()
	if err != nil {
		return err
	}
	sender, err := mailer.NewSender(&cfg.Email, appLogger)
	if err != nil {
		return err
	}
	emails := mailer.NewService(renderer, sender)

	services := server.NewServices(cfg, repos, emails, images, appLogger)

	srv, err := server.NewServer(cfg, db, services, appLogger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })

	if cfg.Notification.Enabled {
		scheduler := notification.NewScheduler(
			services.Courses,
			repos.Registrations,
			repos.Users,
			repos.Jobs,
			notification.SchedulerConfig{
				Days:   cfg.Notification.Days,
				Hour:   cfg.Notification.Hour,
				Minute: cfg.Notification.Minute,
			},
			appLogger,
		)
		if cfg.Notification.RunOnStart {
			scheduler.Run(ctx)
		}

		cron, err := notification.NewCron(cfg.Notification.CronSpec, scheduler, appLogger)
		if err != nil {
			return err
		}
		worker := notification.NewWorker(repos.Jobs, emails, notification.WorkerConfig{
			PollInterval: cfg.Notification.PollInterval,
			BatchSize:    cfg.Notification.BatchSize,
			Concurrency:  cfg.Notification.Concurrency,
			MaxAttempts:  cfg.Notification.MaxAttempts,
			RetryBackoff: cfg.Notification.RetryBackoff,
			LeaseTimeout: cfg.Notification.LeaseTimeout,
		}, appLogger)

		g.Go(func() error { return cron.Run(gctx) })
		g.Go(func() error { return worker.Run(gctx) })
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Println("Сервер остановлен")
	return err
}

// newImageStorage подключает S3, если задан бакет. Без бакета загрузка картинок недоступна.
func newImageStorage(ctx context.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	s3, err := storage.NewS3Storage(ctx, &cfg.Storage)
	if errors.Is(err, storage.ErrNotConfigured) {
		log.Println("S3_BUCKET не задан, загрузка картинок курсов отключена")
		return storage.Noop{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s3, nil
}
