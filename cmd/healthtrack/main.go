package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/config"
	"github.com/healthtrack/healthtrack/internal/domain/analytics"
	"github.com/healthtrack/healthtrack/internal/domain/healthdata"
	"github.com/healthtrack/healthtrack/internal/domain/integration"
	"github.com/healthtrack/healthtrack/internal/domain/refdata"
	"github.com/healthtrack/healthtrack/internal/domain/user"
	"github.com/healthtrack/healthtrack/internal/gateway"
	"github.com/healthtrack/healthtrack/internal/platform/db"
	"github.com/healthtrack/healthtrack/internal/platform/middleware"
)

const (
	shutdownTimeout = 10 * time.Second

	// serviceRequestTimeout bounds handler time in the backend services. The
	// gateway bounds its upstream calls with client timeouts instead.
	serviceRequestTimeout = 30 * time.Second
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthtrack",
		Short: "Health tracking microservice suite",
	}

	rootCmd.AddCommand(
		gatewayCmd(),
		usersCmd(),
		refdataCmd(),
		healthdataCmd(),
		analyticsCmd(),
		integrationCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newEcho builds a server with the suite's standard middleware chain.
func newEcho(logger zerolog.Logger, requestTimeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Collection endpoints are addressable both with and without a trailing
	// slash (POST /users/ and POST /users are the same route).
	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if requestTimeout > 0 {
		e.Use(middleware.RequestTimeout(requestTimeout))
	}
	return e
}

// serve runs the echo server until SIGINT/SIGTERM, then drains in-flight
// requests for up to shutdownTimeout.
func serve(e *echo.Echo, logger zerolog.Logger, service, port string) error {
	go func() {
		logger.Info().Str("service", service).Str("port", port).Msg("starting server")
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Str("service", service).Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

// connect opens the pgx pool for a store service.
func connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info().Msg("connected to database")
	return pool, nil
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Start the user service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			pool, err := connect(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			e := newEcho(logger, serviceRequestTimeout)
			e.GET("/health", db.HealthHandler("user-service", pool))

			handler := user.NewHandler(user.NewService(user.NewRepo(pool)))
			handler.RegisterRoutes(e)

			return serve(e, logger, "users", cfg.PortOr(config.DefaultUserPort))
		},
	}
}

func refdataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refdata",
		Short: "Start the reference data service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			pool, err := connect(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			e := newEcho(logger, serviceRequestTimeout)
			e.GET("/health", db.HealthHandler("ref-data-service", pool))

			activityTypes := refdata.NewService(refdata.NewActivityTypeRepo(pool))
			bloodTestUnits := refdata.NewService(refdata.NewBloodTestUnitRepo(pool))
			handler := refdata.NewHandler(activityTypes, bloodTestUnits)
			handler.RegisterRoutes(e)

			return serve(e, logger, "refdata", cfg.PortOr(config.DefaultRefDataPort))
		},
	}
}

func healthdataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "healthdata",
		Short: "Start the health data service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			pool, err := connect(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			e := newEcho(logger, serviceRequestTimeout)
			e.GET("/health", db.HealthHandler("health-data-service", pool))

			checker := healthdata.NewHTTPChecker(cfg.UserServiceURL, cfg.RefDataServiceURL)
			handler := healthdata.NewHandler(healthdata.NewService(healthdata.NewRepo(pool), checker))
			handler.RegisterRoutes(e)

			return serve(e, logger, "healthdata", cfg.PortOr(config.DefaultHealthDataPort))
		},
	}
}

func analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Start the analytics service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			e := newEcho(logger, serviceRequestTimeout)
			e.GET("/health", db.HealthHandler("analytics-service", nil))

			records := analytics.NewRecordsClient(cfg.HealthDataServiceURL)
			handler := analytics.NewHandler(analytics.NewService(records))
			handler.RegisterRoutes(e)

			return serve(e, logger, "analytics", cfg.PortOr(config.DefaultAnalyticsPort))
		},
	}
}

func integrationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "integration",
		Short: "Start the FHIR integration service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			e := newEcho(logger, serviceRequestTimeout)
			e.GET("/health", db.HealthHandler("integration-service", nil))

			handler := integration.NewHandler(integration.NewService(cfg.FHIRServerURL))
			handler.RegisterRoutes(e)

			return serve(e, logger, "integration", cfg.PortOr(config.DefaultIntegrationPort))
		},
	}
}

func gatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Start the API gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			e := newEcho(logger, 0)

			gw := gateway.New(gateway.Backends{
				Users:       cfg.UserServiceURL,
				RefData:     cfg.RefDataServiceURL,
				HealthData:  cfg.HealthDataServiceURL,
				Analytics:   cfg.AnalyticsServiceURL,
				Integration: cfg.IntegrationServiceURL,
			})
			gw.RegisterRoutes(e)

			return serve(e, logger, "gateway", cfg.PortOr(config.DefaultGatewayPort))
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <store>",
		Short: "Apply SQL migrations for a store service (users, refdata, healthdata)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := args[0]
			switch store {
			case "users", "refdata", "healthdata":
			default:
				return fmt.Errorf("unknown store %q (want users, refdata, or healthdata)", store)
			}

			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir+"/"+store)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) for %s.\n", count, store)
			return nil
		},
	}
	cmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	return cmd
}
