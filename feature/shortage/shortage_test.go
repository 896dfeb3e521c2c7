package shortage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"
	"github.com/hanneshbsrt/fehlmengen/core/storage"
	"github.com/hanneshbsrt/fehlmengen/feature/shortage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const stockCSV = "Artikelnummer;Bezeichnung;Bestand;Einheit\n" +
	"A00001;Widget;10;pcs\n" +
	"A00002;Gadget;0;kg\n" +
	"A00003;Bolt;7;pcs\n"

const ordersCSV = "Belegnr.;Artikelnr.;Menge;Einheit;Lieferdatum;Sachbearbeiter;Geliefert\n" +
	"B1;A00001;5;pcs;01.01.2030;MK;0\n" +
	"B1;A00002;2;kg;01.01.2030;MK;0\n" +
	"B2;A00003;1;pcs;15.02.2030;JS;1\n" +
	"B3;A00004;3;pcs;bald;JS;0\n"

func ingestConfig() ingest.Config {
	return ingest.Config{
		StockFormat:       ingest.FormatCSV,
		OrdersFormat:      ingest.FormatCSV,
		OverridesFormat:   ingest.FormatCSV,
		IdentifiersFormat: ingest.FormatCSV,
		Delimiter:         ";",
		Encoding:          "utf-8",
		CacheTTLSeconds:   60,
	}
}

type options struct {
	reconcile reconcile.Config
	report    report.Config
	client    storage.Client
	runner    ocr.Runner
}

func newService(t *testing.T, o options) *shortage.Service {
	t.Helper()
	ing, err := ingest.NewService(ingestConfig(), zap.NewNop())
	require.NoError(t, err)

	if o.report.Format == "" {
		o.report.Format = report.FormatJSON
	}

	var publisher *report.Publisher
	if o.client != nil {
		publisher = report.NewPublisher(o.client, "fehlmengen", "reports/")
	}

	var extractor *ocr.Extractor
	if o.runner != nil {
		extractor, err = ocr.NewExtractorWithRunner(ocr.Config{MinConfidence: 80}, o.runner, zap.NewNop())
		require.NoError(t, err)
	}

	return shortage.NewService(ing, extractor, publisher, nil, o.reconcile, o.report, zap.NewNop())
}

func newApp(svc *shortage.Service) *fiber.App {
	app := fiber.New()
	f := shortage.NewFeature(svc, zap.NewNop())
	_ = f.Load(app)
	return app
}

// multipartBody builds a form with one file per entry in files.
func multipartBody(t *testing.T, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for field, value := range values {
		require.NoError(t, w.WriteField(field, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// tsvRunner answers every tesseract call with the same TSV words.
type tsvRunner struct {
	words []string
	seen  []string
}

func (r *tsvRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if _, err := os.Stat(args[0]); err != nil {
		return nil, []byte("cannot open image"), err
	}
	r.seen = append(r.seen, args[0])
	out := "level\tconf\ttext\n"
	for _, w := range r.words {
		out += "5\t" + w + "\n"
	}
	return []byte(out), nil, nil
}
