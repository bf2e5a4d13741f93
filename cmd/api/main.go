// @title          Task Board Service API
// @version        1.0
// @description    Board role resolution and due-date reminders.
// @BasePath       /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"

	_ "github.com/taskboard/board-service/docs"
	"github.com/taskboard/board-service/internal/api"
	"github.com/taskboard/board-service/internal/api/handler"
	"github.com/taskboard/board-service/internal/core/service"
	mongodb "github.com/taskboard/board-service/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/board-service/internal/infrastructure/db/redis"
	"github.com/taskboard/board-service/internal/infrastructure/queue"
	"github.com/taskboard/board-service/internal/infrastructure/scheduler"
	"github.com/taskboard/board-service/internal/pkg/config"
	"github.com/taskboard/board-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "board-service",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	boardRepo := mongodb.NewBoardRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	if err := boardRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("board indexes")
	}
	if err := notificationRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("notification indexes")
	}

	// --- Notification pipeline ---
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, redisdb.NewPublisher(rdb), logger.Component("dispatcher"))
	dispatcher.Start(ctx)
	notifier := service.NewNotificationService(notificationRepo, dispatcher, logger.Component("notifications"))

	// --- Core services ---
	ids := mongodb.ObjectIDFormat{}
	accessService := service.NewAccessService(boardRepo, ids, logger.Component("access"))
	reminderService := service.NewReminderService(
		boardRepo,
		boardRepo,
		ids,
		redisdb.NewReminderLedger(rdb, cfg.Reminder.LedgerTTL),
		notifier,
		service.ReminderOptions{Horizon: cfg.Reminder.Horizon, Location: cfg.Reminder.Location()},
		logger.Component("reminders"),
	)

	sched := scheduler.New(reminderService, scheduler.Options{
		DailyHour: cfg.Reminder.DailyHour,
		Interval:  cfg.Reminder.Interval,
		Location:  cfg.Reminder.Location(),
	}, logger.Component("scheduler"))
	sched.Start()
	defer sched.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Resolver:  accessService,
		Reminders: reminderService,
		Sweeper:   sched,
		Checks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server stopped with error")
	}
}
