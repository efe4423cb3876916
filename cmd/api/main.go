package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	appHTTP "github.com/cmlabs-hris/hrops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrops-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/hrops-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hrops-backend-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/hrops-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrops-backend-go/internal/service/auth"
	leaveService "github.com/cmlabs-hris/hrops-backend-go/internal/service/leave"
	userService "github.com/cmlabs-hris/hrops-backend-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.ApplySchema(context.Background(), db); err != nil {
			return err
		}
		slog.Info("Database schema applied")
	}

	var codeStore auth.VerificationCodeStore
	if cfg.Redis.Addr != "" {
		rdb := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		healthy := rdb.Healthy(pingCtx)
		cancel()
		if !healthy {
			return fmt.Errorf("redis at %s is unreachable", cfg.Redis.Addr)
		}
		codeStore = redisRepo.NewVerificationCodeStore(rdb)
		slog.Info("Verification codes stored in redis", "addr", cfg.Redis.Addr)
	} else {
		codeStore = memory.NewVerificationCodeStore()
		slog.Info("Verification codes stored in memory")
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	response.SetTranslator(i18n.NewTranslator(cfg.App.Locale))
	appMetrics := metrics.New()
	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	transactor := postgresql.NewTransactor(db)

	authSvc := serviceAuth.NewAuthService(userRepo, codeStore, JWTService, emailService, cfg.Auth, appMetrics)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, loc, cfg.App.WorkStartTime, appMetrics)
	leaveSvc := leaveService.NewLeaveService(
		transactor,
		leaveTypeRepo,
		leavePolicyRepo,
		leaveRequestRepo,
		userRepo,
		cfg.Leave.DefaultPolicyDays,
		appMetrics,
	)
	userSvc := userService.NewUserService(userRepo)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appMetrics,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc, loc),
		appHTTP.NewUserHandler(userSvc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leavePolicyRepo, cfg.Leave.DefaultPolicyDays, loc).RegisterJobs(scheduler)
	cron.NewAuthJobs(codeStore).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server exited")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
