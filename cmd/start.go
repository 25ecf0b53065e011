package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-janitor/core/loader"
	"asset-janitor/core/logger"
	"asset-janitor/core/middleware/auth"
	"asset-janitor/core/middleware/rayid"
	"asset-janitor/core/server"
	"asset-janitor/feature/assets"
	"asset-janitor/feature/integrity"
	"asset-janitor/feature/media"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-janitor/docs/swagger"
)

// @title Asset Janitor API
// @version 1.0
// @description API for auditing and cleaning content assets in object storage.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset janitor server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		// 1. Configuration, logger, database and storage
		d, err := buildDeps(depsOptions{registry: reg})
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := d.migrate(context.Background()); err != nil {
			logg.Fatal("Failed to migrate media records", zap.Error(err))
		}

		integritySvc, err := d.integrityService()
		if err != nil {
			logg.Fatal("Failed to build integrity checks", zap.Error(err))
		}

		// 2. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             d.cfg.Server.BodyLimit(),
			ErrorHandler:          server.ErrorHandler,
		})

		// 3. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(assets.NewFeature(d.engine, logg))
		mgr.Register(media.NewFeature(d.mediaService()))
		mgr.Register(integrity.NewFeature(integritySvc))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with Zap + RayID
		app.Use(logger.Middleware(logg))

		app.Use(cors.New(cors.Config{
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + auth.HeaderName + ", " + rayid.HeaderName,
		}))

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		// 4. Auth protects everything else
		if !d.cfg.Server.Protected() {
			logg.Warn("No API key configured, admin endpoints are unprotected")
		}
		app.Use(auth.New(auth.Config{
			ApiKey: d.cfg.Server.ApiKey,
			Skip:   []string{"/swagger", "/metrics"},
		}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", d.cfg.Server.Port),
				zap.Strings("folders", d.cfg.Assets.Folders()),
			)
			if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
