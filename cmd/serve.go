package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"device-inventory/core/config"
	"device-inventory/core/loader"
	"device-inventory/core/logger"
	"device-inventory/core/metrics"
	"device-inventory/core/middleware/auth"
	"device-inventory/core/middleware/rayid"
	"device-inventory/core/router"
	"device-inventory/feature/devices"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "device-inventory/docs/swagger"
)

// @title Device Inventory API
// @version 1.0
// @description Reconciled RouterOS DHCP, ARP and bridge device inventory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the device inventory HTTP API",
	Long: `Starts the HTTP server. Every request to /devices runs a reconciliation pass;
concurrent requests share the pass in flight.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts, err := cfg.Reconcile.Options()
	if err != nil {
		return err
	}
	if err := cfg.Router.Validate(); err != nil {
		return err
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()
	zap.ReplaceGlobals(logg)

	// 3. Metrics
	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// 4. Initialize Fiber App
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.RequestTimeout(),
	})

	// 5. Feature Loader
	svc := devices.NewService(router.NewOpener(cfg.Router, logg), devices.Options{
		Reconcile:     opts,
		IncludeBridge: cfg.Reconcile.IncludeBridge,
		Timeout:       cfg.Server.RequestTimeout(),
	}, collector, logg)

	mgr := loader.NewManager(logg)
	mgr.Register(devices.NewFeature(svc))

	// Middleware Registration
	// 1. RayID first so every log line carries it
	app.Use(rayid.New())

	// 2. Request logging
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// 3. Request counters
	app.Use(collector.Middleware())

	// 4. Public endpoints
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
	if cfg.Server.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// 5. Auth protects everything else
	if cfg.Server.AuthEnabled() {
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				path := c.Path()
				return path == "/metrics" || strings.HasPrefix(path, "/swagger")
			},
		}))
	} else {
		logg.Warn("API key not set, device endpoints are unauthenticated")
	}

	// 6. Load Features
	if err := mgr.LoadAll(app); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	// 7. Start Server
	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
		errCh <- app.Listen(cfg.Server.Address())
	}()

	// 8. Graceful Shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}
