package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hanneshbsrt/fehlmengen/core/config"
	"github.com/hanneshbsrt/fehlmengen/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var confirmLabelsFlag bool

// labelsCmd reads identifiers from label photos.
var labelsCmd = &cobra.Command{
	Use:   "labels <image>...",
	Short: "Read item identifiers from label photos",
	Long: `Runs tesseract on every image and prints the identifiers found with their
confidence. With --confirm every uncertain read is asked for on the terminal
and the confirmed identifiers are printed as one comma separated line, ready
for reconcile --ids.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Report.Publish = false

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		svc, extractor, err := newShortageService(cfg, l, false, true)
		if err != nil {
			return err
		}

		if confirmLabelsFlag {
			ids, err := confirmLabels(ctx, svc, extractor, args, yesConfirm)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(ids, ","))
			return nil
		}

		result, err := svc.ExtractLabels(ctx, args)
		if err != nil {
			return fmt.Errorf("label recognition failed: %w", err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "IDENTIFIER\tREAD\tCONFIDENCE\tSOURCE\tCHECK")
		for _, c := range result.Candidates {
			check := ""
			if c.Corrected || c.Confidence < extractor.MinConfidence() {
				check = "review"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\n", c.Identifier, c.Raw, c.Confidence, c.Source, check)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		l.Info("Labels read",
			zap.Int("images", len(args)),
			zap.Int("candidates", len(result.Candidates)),
			zap.Int("accepted", len(result.Accepted)),
			zap.Int("review", len(result.Review)),
		)
		return nil
	},
}

func init() {
	labelsCmd.Flags().BoolVar(&confirmLabelsFlag, "confirm", false, "Ask for every uncertain read and print the confirmed identifiers")
	labelsCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Accept every read without asking")
	RootCmd.AddCommand(labelsCmd)
}
