package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/config"
	"branch-dashboard/internal/logger"
	"branch-dashboard/internal/realtime"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/server"
	"branch-dashboard/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog := logger.New(cfg.LogLevel)
	defer func() { _ = zlog.Sync() }()

	cal, err := clock.NewCalendar(cfg.Timezone, nil)
	if err != nil {
		zlog.Fatalw("calendar", "error", err)
	}
	deadlineHour, deadlineMinute, err := config.ParseDeadline(cfg.UpgradeDeadline)
	if err != nil {
		zlog.Fatalw("deadline", "error", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("db", "error", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	vehicleRepo := repository.NewVehicleRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	userRepo := repository.NewUserRepository(db)
	qualityRepo := repository.NewQualityRepository(db)
	flowRepo := repository.NewFlowTaskRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	planningRepo := repository.NewPlanningRepository(db)

	hub := realtime.NewHub(zlog)

	userSvc := service.NewUserService(userRepo, hub)
	authSvc := service.NewAuthService(userSvc, []byte(cfg.JWTSecret), cfg.TokenTTL)
	vehicleSvc := service.NewVehicleService(vehicleRepo, todoRepo, cal, hub)
	todoSvc := service.NewTodoService(todoRepo, vehicleRepo, cal, hub)
	qualitySvc := service.NewQualityService(qualityRepo, cal, hub)
	flowSvc := service.NewFlowTaskService(flowRepo, cal, hub)
	planningSvc := service.NewPlanningService(planningRepo, cal, hub)
	settingsSvc := service.NewSettingsService(settingsRepo, cal, hub)
	statusSvc := service.NewStatusService(statusRepo, cal, hub)
	progressSvc := service.NewProgressService(
		statusRepo, planningRepo, flowRepo, todoRepo, qualityRepo, vehicleRepo,
		cal, progressModules(cfg), deadlineHour, deadlineMinute,
	)
	resetSvc := service.NewResetService(todoRepo, flowRepo, cal, hub, zlog)

	if _, err := userSvc.EnsureAdmin(ctx, cfg.AdminPIN); err != nil {
		zlog.Fatalw("seed admin", "error", err)
	}

	scheduler := service.NewSchedulerService(cal.Location(), zlog)
	if _, err := scheduler.ScheduleMidnightReset(func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resetSvc.Run(jobCtx)
	}); err != nil {
		zlog.Fatalw("schedule midnight reset", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(
		authSvc, userSvc, vehicleSvc, todoSvc, qualitySvc, flowSvc,
		planningSvc, settingsSvc, statusSvc, progressSvc, hub, cal, zlog,
	)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	zlog.Infow("dashboard started", "addr", cfg.ListenAddr, "timezone", cfg.Timezone)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatalw("server stopped", "error", err)
	}
	zlog.Infow("shutdown complete")
}

func progressModules(cfg config.Config) []string {
	if len(cfg.ProgressModules) == 0 {
		return service.DefaultModules
	}
	return cfg.ProgressModules
}
