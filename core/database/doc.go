// Package database handles the optional ERP database connection and schema inspection.
//
// It wraps GORM and configures MySQL, PostgreSQL or SQLite connections from the
// application's configuration. Open purchase orders can be read from a table
// of this database instead of an uploaded export.
//
// # Connect
//
// Connect opens the connection with bounded timeouts and verifies it with a
// ping. The connection is optional; callers log the failure and continue with
// file uploads only.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for each supported dialect.
// The integrity check resolves these names against the orders schema, so
// header aliases apply to table columns as well.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "open_orders")
package database
