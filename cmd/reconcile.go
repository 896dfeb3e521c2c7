package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hanneshbsrt/fehlmengen/core/config"
	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/logger"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"
	"github.com/hanneshbsrt/fehlmengen/core/storage"
	"github.com/hanneshbsrt/fehlmengen/feature/shortage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the reconcile command
	stockFile     string
	ordersFile    string
	overridesFile string
	idsFlag       string
	idsFile       string
	labelImages   []string
	outPath       string
	formatFlag    string
	publishReport bool
	yesConfirm    bool
)

// reconcileCmd runs one reconciliation and writes the report.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile identifiers against stock and open orders",
	Long: `Looks up every identifier in the stock export, applies the override file
and marks the identifiers that are part of an open purchase order.

Identifiers come from --ids, --ids-file or label photos (--labels). Without
any of them every identifier of the stock export is reported. Without
--orders the configured ERP orders table is read.

Examples:
  # Report for two items as xlsx
  reconcile --stock bestand.csv --orders bestellungen.xlsx --ids A12345,B00001

  # Identifiers from photographed labels, confirm uncertain reads
  reconcile --stock bestand.csv --orders bestellungen.xlsx --labels regal1.jpg,regal2.jpg

  # csv to stdout
  reconcile --stock bestand.csv --orders bestellungen.xlsx --ids-file ids.csv --format csv --out -

  # Upload the report to the report bucket, overwrite without asking
  reconcile --stock bestand.csv --orders bestellungen.xlsx --publish --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&stockFile, "stock", "", "Stock export (required)")
	reconcileCmd.Flags().StringVar(&ordersFile, "orders", "", "Open orders export (default: configured orders table)")
	reconcileCmd.Flags().StringVar(&overridesFile, "overrides", "", "Override file with corrected names and quantities")
	reconcileCmd.Flags().StringVar(&idsFlag, "ids", "", "Identifiers, separated by comma, semicolon or whitespace")
	reconcileCmd.Flags().StringVar(&idsFile, "ids-file", "", "File with one identifier per row")
	reconcileCmd.Flags().StringSliceVar(&labelImages, "labels", nil, "Label photos to read identifiers from")
	reconcileCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file, - for stdout (default: ergebnis.<format>)")
	reconcileCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Report format: xlsx, csv or json (default from config)")
	reconcileCmd.Flags().BoolVar(&publishReport, "publish", false, "Upload the report to the report bucket")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Accept every label read and overwrite the output without asking")
	_ = reconcileCmd.MarkFlagRequired("stock")
	reconcileCmd.MarkFlagsMutuallyExclusive("ids", "ids-file", "labels")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if publishReport {
		cfg.Report.Publish = true
	}

	format := formatFlag
	if format == "" {
		format = cfg.Report.Format
	}
	if !report.IsValidFormat(format) {
		return fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, format)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	in := shortage.Input{Identifiers: ingest.ParseIdentifierList(idsFlag)}
	if in.Stock, err = readInput(stockFile); err != nil {
		return err
	}
	if in.Orders, err = readInput(ordersFile); err != nil {
		return err
	}
	if in.Overrides, err = readInput(overridesFile); err != nil {
		return err
	}
	if in.IdentifierFile, err = readInput(idsFile); err != nil {
		return err
	}

	svc, extractor, err := newShortageService(cfg, l, len(in.Orders) == 0, len(labelImages) > 0)
	if err != nil {
		return err
	}

	if len(labelImages) > 0 {
		ids, err := confirmLabels(ctx, svc, extractor, labelImages, yesConfirm)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return errors.New("no identifiers confirmed on the label photos")
		}
		in.Identifiers = ids
	}

	l.Info("Starting reconciliation", zap.String("stock", stockFile), zap.String("orders", ordersFile))

	result, err := svc.Reconcile(ctx, in)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	out, err := svc.Render(ctx, result, format)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	printReconcileReport(l, result)

	if out.Published != "" {
		l.Info("Report published", zap.String("bucket", cfg.Storage.Bucket), zap.String("name", out.Published))
	}

	return writeOutput(l, out)
}

// newShortageService wires the shortage service for a CLI run. The database
// and the OCR extractor are only set up when the run needs them.
func newShortageService(cfg *config.Config, l *zap.Logger, needDB, needOCR bool) (*shortage.Service, *ocr.Extractor, error) {
	ingestSvc, err := ingest.NewService(cfg.Ingest, l)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ingest configuration: %w", err)
	}

	var db *gorm.DB
	if needDB && cfg.Ingest.OrdersTable != "" {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	var extractor *ocr.Extractor
	if needOCR {
		extractor, err = ocr.NewExtractor(cfg.OCR, l)
		if err != nil {
			return nil, nil, err
		}
	}

	var publisher *report.Publisher
	if cfg.Report.Publish {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		publisher = report.NewPublisher(client, cfg.Storage.Bucket, cfg.Report.Prefix)
	}

	return shortage.NewService(ingestSvc, extractor, publisher, db, cfg.Reconcile, cfg.Report, l), extractor, nil
}

// confirmLabels reads the label photos and asks for every uncertain read.
func confirmLabels(ctx context.Context, svc *shortage.Service, extractor *ocr.Extractor, images []string, acceptAll bool) ([]string, error) {
	labels, err := svc.ExtractLabels(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("label recognition failed: %w", err)
	}

	confirmer := &ocr.PromptConfirmer{
		In:        os.Stdin,
		Out:       os.Stderr,
		Pattern:   extractor.Pattern(),
		Threshold: ocr.ThresholdConfirmer{MinConfidence: extractor.MinConfidence()},
		AcceptAll: acceptAll,
	}
	if len(labels.Review) > 0 && !acceptAll {
		fmt.Fprintf(os.Stderr, "\n%d of %d identifiers need a check:\n", len(labels.Review), len(labels.Candidates))
	}
	return confirmer.Confirm(ctx, labels.Candidates)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(l *zap.Logger, out *shortage.Output) error {
	path := outPath
	if path == "" {
		path = out.FileName
	}

	if path == "-" {
		_, err := os.Stdout.Write(out.Data)
		return err
	}

	if _, err := os.Stat(path); err == nil {
		l.Warn("Output file exists", zap.String("file", path))
		if !confirmOverwrite(os.Stdin, os.Stdout, path) {
			l.Warn("Operation cancelled by user. No file was written.")
			return nil
		}
	}

	if err := os.WriteFile(path, out.Data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	l.Info("Report written", zap.String("file", path), zap.String("format", out.Format))
	return nil
}

// printReconcileReport prints the run summary using logger.
func printReconcileReport(l *zap.Logger, result *reconcile.Result) {
	s := result.Summary

	l.Info("Reconciliation summary",
		zap.Int("identifiers", s.Total),
		zap.Int("in_stock", s.InStock),
		zap.Int("missing_stock", s.MissingStock),
		zap.Int("overridden", s.Overridden),
		zap.Int("on_order", s.OnOrder),
		zap.Int("partially_delivered", s.PartiallyDelivered),
		zap.Int("warnings", s.Warnings),
	)
}

// confirmOverwrite prompts the user for confirmation or uses --yes flag.
func confirmOverwrite(in io.Reader, out io.Writer, path string) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "\n⚠️  %s exists. Type 'yes' to overwrite: ", path)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
