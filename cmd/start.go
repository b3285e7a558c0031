package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-sync/core/loader"
	"asset-sync/core/logger"
	"asset-sync/core/middleware/auth"
	"asset-sync/core/middleware/rayid"
	"asset-sync/core/queue"

	"asset-sync/feature/health"
	"asset-sync/feature/intake"
	assetsync "asset-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-sync/docs/swagger"
)

// @title Asset Sync API
// @version 1.0
// @description Synchronizes Cloudinary asset metadata into commercetools product variants.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset sync server",
	Long:  `Starts the HTTP server: webhook intake, push processing, direct endpoints, health and metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.close()
		logg := rt.logger

		publisher, err := queue.NewPublisher(ctx, rt.cfg.Queue, rt.sync.Handle, logg, rt.metrics)
		if err != nil {
			logg.Fatal("Failed to create publisher", zap.Error(err))
		}
		defer publisher.Close()

		app := newApp(rt)

		mgr := loader.NewManager(logg)
		mgr.Register(intake.NewFeature(intake.NewService(publisher, rt.archive, rt.metrics, logg)))
		mgr.Register(assetsync.NewFeature(rt.sync))

		// Protected from here on.
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", rt.cfg.Server.Port),
				zap.String("transport", publisher.Name()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// newApp builds the fiber app with the public routes: ray id, request logging, swagger,
// health and metrics.
func newApp(rt *runtime) *fiber.App {
	logg := rt.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           rt.cfg.Server.ReadTimeout(),
		BodyLimit:             rt.cfg.Server.BodyLimitBytes,
	})

	app.Use(rayid.New())

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

	app.Get("/swagger/*", swagger.HandlerDefault)

	var pinger health.Pinger
	if rt.cfg.Catalog.ProjectKey != "" {
		pinger = rt.catalog
	}
	healthSvc := health.NewService(rt.archive, rt.db, pinger, rt.cfg.Database.Timeout(), logg)
	if err := health.NewFeature(healthSvc).Load(app); err != nil {
		logg.Fatal("Failed to load health feature", zap.Error(err))
	}

	if rt.cfg.Metrics.Enabled {
		app.Get(rt.cfg.Metrics.Path, adaptor.HTTPHandler(rt.metrics.Handler()))
	}

	return app
}

func init() {
	RootCmd.AddCommand(startCmd)
}
