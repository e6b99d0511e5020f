package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"market-tracker/core/config"
	"market-tracker/core/database"
	"market-tracker/core/gamedata"
	"market-tracker/core/loader"
	"market-tracker/core/logger"
	"market-tracker/core/middleware/rayid"
	coreredis "market-tracker/core/redis"
	"market-tracker/core/storage"

	"market-tracker/feature/extra"
	"market-tracker/feature/market"
	"market-tracker/feature/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "market-tracker/docs/swagger"
)

// @title Market Tracker API
// @version 1.0
// @description Crowd-sourced market board data: uploads from trusted clients, aggregated price views per world or datacenter.
// @host localhost:4002
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the market tracker server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		if err := market.NewStore(db).Migrate(); err != nil {
			logg.Fatal("Market migration failed", zap.Error(err))
		}
		if err := upload.NewStore(db).Migrate(); err != nil {
			logg.Fatal("Trusted source migration failed", zap.Error(err))
		}

		// 4. Connect to Redis
		rdb, err := coreredis.Connect(cfg.Redis)
		if err != nil {
			logg.Fatal("Redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		if err := extra.NewStore(db, rdb).Migrate(); err != nil {
			logg.Fatal("Content ID migration failed", zap.Error(err))
		}

		// 5. Load Game Reference Data
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		gameData, err := gamedata.Load(context.Background(), store, cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to load game reference data", zap.Error(err))
		}
		logg.Info("Game reference data loaded",
			zap.Int("worlds", len(gameData.AvailableWorlds())),
			zap.Int("datacenters", len(gameData.DataCenters())))

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitBytes,
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features. Market goes last: its current-data route is a
		// catch-all under /api and must not shadow the other routes.
		mgr.Register(upload.NewFeature(db, rdb, gameData, logg))
		mgr.Register(extra.NewFeature(db, rdb, gameData, logg))
		mgr.Register(market.NewFeature(db, gameData, logg))

		// Middleware Registration
		// RayID must be first to trace everything.
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
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
