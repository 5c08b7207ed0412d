package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mediflow/mediflow/internal/config"
	"github.com/mediflow/mediflow/internal/domain/bedapp"
	"github.com/mediflow/mediflow/internal/domain/dashboard"
	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/identity"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/domain/schedule"
	"github.com/mediflow/mediflow/internal/platform/db"
	"github.com/mediflow/mediflow/internal/platform/middleware"
	"github.com/mediflow/mediflow/internal/platform/session"
	"github.com/mediflow/mediflow/internal/platform/synthetic"
	"github.com/mediflow/mediflow/internal/platform/validate"
	"github.com/mediflow/mediflow/internal/seed"
	"github.com/mediflow/mediflow/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mediflow-server",
		Short: "Hospital administration server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the hospital administration server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample CSV data",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			seeder := seed.New(
				doctor.NewService(doctor.NewRepoPG(pool)),
				patient.NewRepoPG(pool),
				schedule.NewRepoPG(pool),
				logger,
			)
			return seeder.Run(ctx, dir)
		},
	}
	cmd.Flags().String("dir", "./data", "Path to CSV data directory")
	return cmd
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Session store
	var store session.Store
	if cfg.SessionStore == "redis" {
		store, err = session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Info().Msg("using redis session store")
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, []byte(cfg.SessionSecret), cfg.SessionTTL, cfg.IsProduction())

	// Repositories
	doctorRepo := doctor.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	scheduleRepo := schedule.NewRepoPG(pool)
	appRepo := bedapp.NewRepoPG(pool)
	statsRepo := dashboard.NewRepoPG(pool)

	// Services
	doctorSvc := doctor.NewService(doctorRepo)
	patientSvc := patient.NewService(patientRepo)
	scheduleSvc := schedule.NewService(scheduleRepo)
	appSvc := bedapp.NewService(appRepo, patientRepo, doctorRepo, db.NewPoolRunner(pool))

	resolver := identity.NewResolver(
		identity.AdminCredential{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		doctorRepo, patientRepo, appRepo,
	)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e.Renderer = renderer

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(sessions.Attach())

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	limit := middleware.RateLimit(rateLimitCfg)

	// Public surface
	identityHandler := identity.NewHandler(resolver, sessions)
	identityHandler.RegisterRoutes(e, limit)

	appHandler := bedapp.NewHandler(appSvc)
	appHandler.RegisterPublicRoutes(e, limit)

	e.GET("/health", db.HealthHandler(pool))

	// Role dashboards and data endpoints
	metrics := synthetic.New()
	dashHandler := dashboard.NewHandler(statsRepo, patientSvc, doctorSvc, scheduleSvc, metrics)
	dashHandler.RegisterPages(e)

	adminAPI := e.Group("/api/admin", session.RequireRole(session.RoleAdmin))
	dashHandler.RegisterAdminRoutes(adminAPI)
	appHandler.RegisterAdminRoutes(adminAPI)

	doctorAPI := e.Group("/api/doctor", session.RequireRole(session.RoleDoctor))
	dashHandler.RegisterDoctorRoutes(doctorAPI)

	patientAPI := e.Group("/api/patient", session.RequireRole(session.RolePatient))
	dashHandler.RegisterPatientRoutes(patientAPI)

	// Start with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
