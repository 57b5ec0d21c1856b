package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bucketeer/core/config"
	"bucketeer/core/loader"
	"bucketeer/core/logger"
	"bucketeer/core/middleware/auth"
	"bucketeer/core/middleware/rayid"
	"bucketeer/core/objectstore"
	"bucketeer/core/server"

	"bucketeer/feature/buckets"
	"bucketeer/feature/objects"
	"bucketeer/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bucketeer/docs/swagger"
)

// @title Bucketeer API
// @version 1.0
// @description HTTP front for S3-compatible object storage.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the HTTP server",
	Long:    `Starts the HTTP server and loads the buckets, objects and uploads features.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		zap.ReplaceGlobals(e.logger)

		app, err := newApp(e.cfg, e.logger, e.store)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			e.logger.Info("Starting server", zap.String("addr", e.cfg.Server.Addr()), zap.String("driver", e.cfg.Storage.Driver))
			errCh <- app.Listen(e.cfg.Server.Addr())
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		e.logger.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

// newApp builds the fiber application with middleware and features mounted.
func newApp(cfg *config.Config, logg *zap.Logger, store objectstore.Store) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StreamRequestBody:     true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return server.SendError(c, err)
		},
	})

	mgr := loader.NewManager(logg)
	mgr.Register(buckets.NewFeature(store, logg))
	mgr.Register(objects.NewFeature(store, logg))
	mgr.Register(uploads.NewFeature(store, logg))

	// RayID first so every log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		if err != nil {
			l.Error("Request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return err
		}
		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	})

	// Swagger stays public
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		ApiKey: cfg.Server.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
	}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}

	return app, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
