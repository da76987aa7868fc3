package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	organizationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/organization"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dsn := cfg.DatabaseURL()
		if serveMigrate {
			if err := database.MigrateUp(dsn); err != nil {
				return err
			}
		}

		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		appMetrics, err := metrics.NewPrometheusMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		userRepo := postgresql.NewUserRepository(db)
		organizationRepo := postgresql.NewOrganizationRepository(db)
		attendanceRepo := postgresql.NewAttendanceRepository(db)
		transactor := postgresql.NewTransactor(db)

		systemClock := clock.System()
		JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, systemClock)
		policy := auth.NewPolicy(func(p auth.Principal, action user.Permission) {
			appMetrics.RecordAuthorizationDenial(string(action))
			slog.Debug("authorization denied", "user_id", p.UserID, "role", p.Role, "action", action)
		})
		intervalValidator := attendance.NewIntervalValidator(systemClock, attendance.Rules{
			ClockSkew: cfg.Attendance.ClockSkew,
			OnePerDay: cfg.Attendance.OnePerDay,
		})

		authService := serviceAuth.NewAuthService(userRepo, JWTService)
		usrService := userService.NewUserService(userRepo, organizationRepo, policy, cfg.App.DefaultTimezone)
		orgService := organizationService.NewOrganizationService(organizationRepo, policy)
		attService := attendanceService.NewAttendanceService(
			transactor,
			attendanceRepo,
			userRepo,
			intervalValidator,
			policy,
			systemClock,
			appMetrics,
		)

		routerConfig := appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.App.LogLevel,
			AllowedOrigins: cfg.App.AllowedOrigins,
			Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}

		var redisClient *redis.Client
		if cfg.RateLimit.RedisURL != "" {
			redisClient, err = middleware.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
			if err != nil {
				return err
			}
			defer redisClient.Close()
		}
		routerConfig.LoginRateLimit, err = middleware.NewRateLimiter(cfg.RateLimit.Login, redisClient)
		if err != nil {
			return err
		}

		router := appHTTP.NewRouter(routerConfig, JWTService, authService, appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(authService),
			User:         appHTTP.NewUserHandler(usrService),
			Organization: appHTTP.NewOrganizationHandler(orgService),
			Attendance:   appHTTP.NewAttendanceHandler(attService),
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}
