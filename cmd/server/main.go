package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/auroraminds/backend/api/handler"
	"github.com/auroraminds/backend/internal/config"
	"github.com/auroraminds/backend/internal/infrastructure/buffer"
	"github.com/auroraminds/backend/internal/infrastructure/monitor"
	pgInfra "github.com/auroraminds/backend/internal/infrastructure/postgres"
	redisInfra "github.com/auroraminds/backend/internal/infrastructure/redis"
	"github.com/auroraminds/backend/internal/middleware"
	"github.com/auroraminds/backend/internal/router"
	"github.com/auroraminds/backend/internal/services"
	"github.com/auroraminds/backend/internal/services/lifecycle"
	"github.com/auroraminds/backend/internal/services/mail"
	"github.com/auroraminds/backend/pkg/httpcontext"
	"github.com/auroraminds/backend/pkg/logger"
	"github.com/auroraminds/backend/repository/postgres"
	redisRepo "github.com/auroraminds/backend/repository/redis"
	analyticsUC "github.com/auroraminds/backend/usecase/analytics"
	authUC "github.com/auroraminds/backend/usecase/auth"
	focusUC "github.com/auroraminds/backend/usecase/focus"
	leaderboardUC "github.com/auroraminds/backend/usecase/leaderboard"
	profileUC "github.com/auroraminds/backend/usecase/profile"
	rewardsUC "github.com/auroraminds/backend/usecase/rewards"
	taskUC "github.com/auroraminds/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		AppName:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.RegisterCloser("redis", redisClient)

	grantStore, err := buffer.Open(cfg.Buffer.Path, "grants")
	if err != nil {
		zapLogger.Fatal("failed to open grant buffer", zap.Error(err))
	}
	manager.RegisterCloser("grant_buffer", grantStore)

	mon := monitor.New(pool, redisClient, grantStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)
	focusRepo := postgres.NewFocusSessionRepository(pool)
	claimRepo := postgres.NewClaimedRewardRepository(pool)

	grantProcessor := services.NewGrantProcessor(
		grantStore,
		mon,
		userRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	grantProcessor.Start()
	manager.Register("grant_processor", func(ctx context.Context) error {
		grantProcessor.Stop(ctx)
		return nil
	})

	grantBridge := services.NewGrantBridge(grantProcessor)

	if cfg.Notifier.Enabled {
		sender := mail.NewSMTPSender(mail.Config{
			Host:     cfg.Notifier.SMTPHost,
			Port:     cfg.Notifier.SMTPPort,
			User:     cfg.Notifier.SMTPUser,
			Password: cfg.Notifier.SMTPPassword,
			From:     cfg.Notifier.FromAddress,
			BaseURL:  cfg.Notifier.BaseURL,
		})
		notifier, err := services.NewNotifier(userRepo, taskRepo, focusRepo, sender, services.NotifierSchedules{
			DailyDigest:   cfg.Notifier.DigestSchedule,
			WeeklyReport:  cfg.Notifier.ReportSchedule,
			TaskReminders: cfg.Notifier.ReminderSchedule,
		}, zapLogger)
		if err != nil {
			zapLogger.Fatal("notifier setup failed", zap.Error(err))
		}
		notifier.Start()
		manager.Register("notifier", func(ctx context.Context) error {
			notifier.Stop(ctx)
			return nil
		})
	}

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.SessionTTL, zapLogger)
	profileUseCase := profileUC.New(userRepo, taskRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, userRepo, grantBridge, zapLogger)
	focusUseCase := focusUC.New(focusRepo, taskRepo, userRepo, grantBridge, zapLogger)
	rewardsUseCase := rewardsUC.New(rewardsUC.DefaultCatalog(), userRepo, claimRepo, zapLogger)
	analyticsUseCase := analyticsUC.New(focusRepo, taskRepo, zapLogger)
	leaderboardUseCase := leaderboardUC.New(userRepo)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:     apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Focus:       apiHandler.NewFocusHandler(focusUseCase, ctxAdapter, zapLogger),
		Rewards:     apiHandler.NewRewardsHandler(rewardsUseCase, ctxAdapter, zapLogger),
		Analytics:   apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, zapLogger),
		Leaderboard: apiHandler.NewLeaderboardHandler(leaderboardUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
