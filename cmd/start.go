package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hanneshbsrt/fehlmengen/core/config"
	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/loader"
	"github.com/hanneshbsrt/fehlmengen/core/logger"
	"github.com/hanneshbsrt/fehlmengen/core/middleware/auth"
	"github.com/hanneshbsrt/fehlmengen/core/middleware/rayid"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/report"
	"github.com/hanneshbsrt/fehlmengen/core/storage"

	"github.com/hanneshbsrt/fehlmengen/feature/integrity"
	"github.com/hanneshbsrt/fehlmengen/feature/shortage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/hanneshbsrt/fehlmengen/docs/swagger"
)

// @title Fehlmengen API
// @version 1.0
// @description Reconciles item shortages against stock and open purchase orders.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
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

		// 3. Connect to the ERP database (optional)
		var db *gorm.DB
		if cfg.Database.Enabled() {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to ERP database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Services
		ingestSvc, err := ingest.NewService(cfg.Ingest, logg)
		if err != nil {
			logg.Fatal("Invalid ingest configuration", zap.Error(err))
		}

		extractor, err := ocr.NewExtractor(cfg.OCR, logg)
		if err != nil {
			logg.Warn("Label recognition disabled", zap.Error(err))
			extractor = nil
		}

		publisher := report.NewPublisher(store, cfg.Storage.Bucket, cfg.Report.Prefix)
		shortageSvc := shortage.NewService(ingestSvc, extractor, publisher, db, cfg.Reconcile, cfg.Report, logg)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		mgr.Register(shortage.NewFeature(shortageSvc, logg))
		mgr.Register(integrity.NewFeature(integrity.Options{
			Client:      store,
			Bucket:      cfg.Storage.Bucket,
			Region:      cfg.Storage.Region,
			Prefix:      cfg.Report.Prefix,
			DB:          db,
			OrdersTable: cfg.Ingest.OrdersTable,
			Schema:      ingestSvc.Schema(ingest.DatasetOrders),
			Extractor:   extractor,
		}, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
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
