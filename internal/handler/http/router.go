package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const appVersion = "v1.0.0"

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	m *metrics.Metrics,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrops"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(middleware.Metrics(m))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", m.Handler())

	limiter := middleware.RateLimitByIP(cfg.Auth.RateLimitPerMinute, time.Minute)
	adminOnly := middleware.RequireRole(cfg.App.AdminRole)

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(limiter)
			r.Post("/find-email", authHandler.FindEmail)
			r.Post("/resend-code", authHandler.ResendCode)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clockin", attendanceHandler.ClockIn)
				r.Post("/clockout", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/monthly", attendanceHandler.Monthly)
				r.Get("/year-months", attendanceHandler.YearMonths)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/yearly", leaveHandler.Yearly)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/types", leaveHandler.ListTypes)
					r.Post("/types", leaveHandler.UpsertTypes)
					r.Delete("/types", leaveHandler.DeleteTypes)
					r.Get("/policy", leaveHandler.GetPolicy)
					r.Put("/policy", leaveHandler.UpdatePolicy)
					r.Patch("/{id}/approve", leaveHandler.Approve)
					r.Patch("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.With(adminOnly).Get("/users", userHandler.List)
		})
	})
	return r
}
