package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hanneshbsrt/fehlmengen/core/config"
	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/logger"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/storage"
	"github.com/hanneshbsrt/fehlmengen/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the report bucket, the ERP orders table and tesseract",
	Long:  `Runs every integrity check. Use a subcommand to run a single one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and create the report bucket",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// databaseCmd represents the integrity database command
var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the columns of the ERP orders table",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// ocrCmd represents the integrity ocr command
var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Check that tesseract runs",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, databaseCmd, ocrCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
}

func runIntegrityChecks(ctx context.Context, runStorage, runDatabase, runOCR bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	opts := integrity.Options{
		Bucket:      cfg.Storage.Bucket,
		Region:      cfg.Storage.Region,
		Prefix:      cfg.Report.Prefix,
		OrdersTable: cfg.Ingest.OrdersTable,
	}

	if runStorage {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		opts.Client = store
	}

	if runDatabase {
		schema, err := ingest.OrderSchema().WithOverrides(cfg.Ingest.OrdersColumns)
		if err != nil {
			logg.Fatal("Invalid orders column overrides", zap.Error(err))
		}
		opts.Schema = schema

		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}
		opts.DB = db
	}

	if runOCR {
		extractor, err := ocr.NewExtractor(cfg.OCR, logg)
		if err != nil {
			logg.Error("Invalid OCR configuration", zap.Error(err))
		}
		opts.Extractor = extractor
	}

	svc := integrity.NewService(opts, logg)

	if runStorage {
		logg.Info("Checking report bucket...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			logg.Fatal("Storage check failed", zap.Error(err))
		}

		if report.Exists {
			logg.Info("Report bucket is present.", zap.Int("reports", report.Reports))
		} else {
			logg.Warn("Report bucket missing", zap.String("bucket", report.Bucket))

			if fixFlag {
				logg.Info("Creating report bucket...")
				if err := svc.FixStorage(ctx); err != nil {
					logg.Fatal("Failed to create bucket", zap.Error(err))
				}
				logg.Info("Bucket created successfully.")
			} else {
				logg.Info("Run 'integrity storage --fix' to create the bucket.")
			}
		}
	}

	if runDatabase {
		logg.Info("Checking orders table...", zap.String("table", cfg.Ingest.OrdersTable))
		report, err := svc.CheckDatabase()
		switch {
		case err != nil:
			logg.Error("Orders table check failed", zap.Error(err))
		case report.Matched:
			logg.Info("Orders table has every required column.", zap.Any("columns", report.Columns))
		default:
			logg.Warn("Orders table does not match", zap.String("table", report.Table))
			if len(report.MissingFields) > 0 {
				logg.Warn("Missing Fields", zap.Strings("fields", report.MissingFields))
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
		if err == nil && len(report.OptionalFields) > 0 {
			logg.Info("Optional fields without a column", zap.Strings("fields", report.OptionalFields))
		}
	}

	if runOCR {
		logg.Info("Checking tesseract...")
		report, err := svc.CheckOCR(ctx)
		switch {
		case err != nil:
			logg.Error("OCR check failed", zap.Error(err))
		case report.Status == "ok":
			logg.Info("Tesseract is available.", zap.String("version", report.Version), zap.String("pattern", report.Pattern))
		default:
			logg.Error("Tesseract is not usable", zap.String("error", report.Error))
		}
	}
}
