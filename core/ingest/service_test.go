package ingest

import (
	"context"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testConfig mirrors the configuration defaults with csv orders.
func testConfig() Config {
	return Config{
		StockFormat:       FormatCSV,
		OrdersFormat:      FormatCSV,
		OverridesFormat:   FormatCSV,
		IdentifiersFormat: FormatCSV,
		Delimiter:         ";",
		Encoding:          "utf-8",
		HeaderRow:         2,
		CacheTTLSeconds:   60,
	}
}

func TestService_EndToEnd(t *testing.T) {
	svc, err := NewService(testConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	stock, err := svc.Stock(ctx, []byte(stockCSV))
	require.NoError(t, err)
	lines, err := svc.Orders(ctx, []byte(ordersCSV))
	require.NoError(t, err)
	overrides, err := svc.Overrides(ctx, []byte("Artikelnummer;Menge;Einheit\nA00002;4;box\n"))
	require.NoError(t, err)
	ids, err := svc.Identifiers(ctx, []byte("Artikelnummer\nA00002\nA00001\n"))
	require.NoError(t, err)

	stockCatalog, err := reconcile.NewStockCatalog(stock, reconcile.CatalogOptions{})
	require.NoError(t, err)
	overrideCatalog, err := reconcile.NewOverrideCatalog(overrides, reconcile.CatalogOptions{})
	require.NoError(t, err)
	ledger := reconcile.NewOrderLedger(lines, reconcile.LedgerOptions{})

	records := reconcile.Reconcile(ids, stockCatalog, overrideCatalog, ledger)
	require.Len(t, records, 2)

	assert.Equal(t, "A00002", records[0].Identifier)
	assert.Equal(t, "4", records[0].QuantityDisplay)
	assert.Equal(t, "box", records[0].UnitDisplay)
	assert.Equal(t, reconcile.OnOrderYes, records[0].IsOnOrder)
	assert.Equal(t, "2 kg", records[0].OrderQuantity)

	assert.Equal(t, "A00001", records[1].Identifier)
	assert.Equal(t, reconcile.OnOrderYes, records[1].IsOnOrder)
	assert.Equal(t, "01.01.2030", records[1].OrderDeliveryDate)
}

func TestService_UsesCache(t *testing.T) {
	svc, err := NewService(testConfig(), zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Stock(context.Background(), []byte(stockCSV))
	require.NoError(t, err)
	_, err = svc.Stock(context.Background(), []byte(stockCSV))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Cache().Len())

	// Identifier files use another header row, so the parser version differs
	_, _ = svc.Identifiers(context.Background(), []byte(stockCSV))
	assert.Equal(t, 2, svc.Cache().Len())

	assert.Equal(t, 2, svc.Cache().Purge())
	assert.Equal(t, 0, svc.Cache().Len())
}

func TestService_MalformedDataset(t *testing.T) {
	svc, err := NewService(testConfig(), zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Orders(context.Background(), []byte(stockCSV))
	assert.ErrorIs(t, err, reconcile.ErrMalformedDataset)
}

func TestNewService_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.StockFormat = "ods"
	_, err := NewService(cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	cfg = testConfig()
	cfg.OrdersColumns = "colour=Farbe"
	_, err = NewService(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestConfig_Format(t *testing.T) {
	cfg := testConfig()
	cfg.OrdersFormat = FormatXLSX
	cfg.OverridesHeaderRow = 0

	assert.Equal(t, FormatXLSX, cfg.Format(DatasetOrders).Format)
	assert.Equal(t, 2, cfg.Format(DatasetOrders).HeaderRow)
	assert.Equal(t, 0, cfg.Format(DatasetOverrides).HeaderRow)
	assert.Equal(t, 0, cfg.Format(DatasetIdentifiers).HeaderRow)
}
