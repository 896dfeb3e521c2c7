package integrity

import (
	"context"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestService_Storage(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(Options{Client: mockClient, Bucket: "fehlmengen", Prefix: "reports/"}, zap.NewNop())

	t.Run("CheckStorage", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "fehlmengen").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "fehlmengen", mock.Anything).Return(mocks.Listing())

		report, err := svc.CheckStorage(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.Equal(t, 0, report.Reports)
	})

	t.Run("FixStorage", func(t *testing.T) {
		mockClient.On("MakeBucket", mock.Anything, "fehlmengen", mock.Anything).Return(nil)
		assert.NoError(t, svc.FixStorage(context.Background()))
	})
}

func TestService_Database(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	svc := NewService(Options{DB: db, OrdersTable: "open_orders"}, zap.NewNop())

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Belegnr.", "varchar(20)", "NO", "", nil, "").
		AddRow("Artikelnr.", "varchar(20)", "NO", "", nil, "").
		AddRow("Geliefert", "decimal(10,3)", "YES", "", nil, "")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `open_orders`").WillReturnRows(rows)

	report, err := svc.CheckDatabase()
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "geliefert", report.Columns[ingest.FieldDeliveredQty])
}

func TestService_DatabaseHeaderOverride(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	schema, err := ingest.OrderSchema().WithOverrides("delivered_qty=qty_delivered")
	require.NoError(t, err)
	svc := NewService(Options{DB: db, OrdersTable: "open_orders", Schema: schema}, zap.NewNop())

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Belegnr.", "varchar(20)", "NO", "", nil, "").
		AddRow("Artikelnr.", "varchar(20)", "NO", "", nil, "").
		AddRow("qty_delivered", "decimal(10,3)", "YES", "", nil, "")
	sqlMock.ExpectQuery("SHOW COLUMNS").WillReturnRows(rows)

	report, err := svc.CheckDatabase()
	require.NoError(t, err)
	assert.True(t, report.Matched)
}

func TestService_OCRDisabled(t *testing.T) {
	svc := NewService(Options{}, zap.NewNop())
	_, err := svc.CheckOCR(context.Background())
	assert.Error(t, err)
}
