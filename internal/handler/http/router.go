package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Organization OrganizationHandler
	Attendance   AttendanceHandler
}

type RouterConfig struct {
	Env            string
	Version        string
	LogLevel       slog.Level
	AllowedOrigins []string
	// LoginRateLimit guards POST /user_token when set.
	LoginRateLimit func(http.Handler) http.Handler
	// Metrics is served at GET /metrics when set.
	Metrics http.Handler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, authService auth.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Page", "X-Per-Page", "X-Total", "Content-Language"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(i18n.Middleware)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.LoginRateLimit != nil {
			r.Use(cfg.LoginRateLimit)
		}
		r.Post("/user_token", h.Auth.Login)
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService, authService))

		r.Get("/users/me", h.User.Me)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.User.Get)
			r.Put("/", h.User.Update)
			r.Delete("/", h.User.Delete)
		})

		r.Route("/organizations", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionOrganizationList)).Get("/", h.Organization.List)
			r.With(middleware.RequirePermission(user.PermissionOrganizationCreate)).Post("/", h.Organization.Create)

			r.Route("/{organization_id}", func(r chi.Router) {
				r.Get("/", h.Organization.Get)
				r.Put("/", h.Organization.Update)
				r.Delete("/", h.Organization.Delete)

				r.Get("/attendances", h.Attendance.ListByOrganization)
				r.Get("/users", h.User.List)
				r.Post("/users", h.User.Create)
			})
		})

		r.Route("/employees/{employee_id}/attendances", func(r chi.Router) {
			r.Get("/", h.Attendance.ListByEmployee)
			r.Post("/", h.Attendance.Create)
		})

		r.Route("/attendances", func(r chi.Router) {
			r.Post("/check-ins", h.Attendance.CheckIn)
			r.Put("/check-outs", h.Attendance.CheckOut)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Attendance.Get)
				r.Put("/", h.Attendance.Update)
				r.Delete("/", h.Attendance.Delete)
			})
		})
	})
	return r
}
