package ingest

import (
	"context"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE open_orders (
		"Belegnr." TEXT, "Artikelnr." TEXT, "Menge" REAL, "Einheit" TEXT,
		"Lieferdatum" TEXT, "Sachbearbeiter" TEXT, "Geliefert" REAL)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO open_orders VALUES
		('B1', 'A00001', 5, 'pcs', '01.01.2030', 'MK', 0),
		('B2', 'A00002', 2.5, 'kg', '15.02.2030', 'JS', 1)`).Error)

	return db
}

func TestSQLSource_Load(t *testing.T) {
	db := setupSQLite(t)

	table, err := (&SQLSource{DB: db, Table: "open_orders"}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Belegnr.", "Artikelnr.", "Menge", "Einheit", "Lieferdatum", "Sachbearbeiter", "Geliefert"}, table.Headers)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "5", table.Cell(0, 2))
	assert.Equal(t, "2.5", table.Cell(1, 2))
	assert.Equal(t, "0", table.Cell(0, 6))
}

func TestSQLSource_MissingTable(t *testing.T) {
	db := setupSQLite(t)

	_, err := (&SQLSource{DB: db, Table: "nope"}).Load(context.Background())
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = (&SQLSource{Table: "open_orders"}).Load(context.Background())
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestSQLSource_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SHOW COLUMNS FROM `open_orders`").WillReturnRows(
		sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("Belegnr.", "varchar(20)", "NO", "", nil, "").
			AddRow("Artikelnr.", "varchar(20)", "NO", "", nil, "").
			AddRow("Geliefert", "decimal(10,3)", "NO", "", nil, ""),
	)
	mock.ExpectQuery("SELECT \\* FROM `open_orders`").WillReturnRows(
		sqlmock.NewRows([]string{"Belegnr.", "Artikelnr.", "Geliefert"}).
			AddRow([]byte("B1"), []byte("A00001"), []byte("0.000")),
	)

	table, err := (&SQLSource{DB: db, Table: "open_orders"}).Load(context.Background())
	require.NoError(t, err)

	lines, err := DecodeOrderLines(table, OrderSchema())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "B1", lines[0].OrderRef)
	assert.True(t, lines[0].Undelivered())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_OrdersFromDB(t *testing.T) {
	db := setupSQLite(t)

	cfg := testConfig()
	cfg.OrdersTable = "open_orders"
	svc, err := NewService(cfg, zap.NewNop())
	require.NoError(t, err)

	lines, err := svc.OrdersFromDB(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "A00001", lines[0].ItemIdentifier)
	assert.Equal(t, "01.01.2030", lines[0].DeliveryDate)
	assert.True(t, lines[0].Undelivered())
	assert.False(t, lines[1].Undelivered())

	cfg.OrdersTable = ""
	svc, err = NewService(cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = svc.OrdersFromDB(context.Background(), db)
	assert.ErrorIs(t, err, ErrUnreadable)
}
