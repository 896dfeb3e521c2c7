// Package ingest turns uploaded spreadsheets and ERP tables into the records
// consumed by the reconciliation engine.
//
// # Adapters
//
// Each input format has one Parser that yields a Table (header row plus data
// rows). The adapter is chosen from configuration, never by sniffing the
// content:
//
//   - CSVParser: delimited text, any WHATWG encoding, configurable header row.
//   - XLSXParser: first or named worksheet of an Excel workbook.
//   - SQLSource: an ERP table read through GORM.
//
// # Schemas
//
// A Schema maps normalized field names to the header names used by the ERP
// exports. Missing required columns are reported up front as a
// reconcile.MalformedDatasetError. Header names can be replaced per field via
// configuration, e.g. INGEST_ORDERS_COLUMNS="quantity=Bestellmenge".
//
// # Cache
//
// Parsed tables are cached by content hash and parser identity so that
// repeated uploads of the same export skip parsing. The cache belongs to the
// Service and is purged through the HTTP API or expires after its TTL.
//
// # Usage
//
//	svc, err := ingest.NewService(cfg.Ingest, logg)
//	stock, err := svc.Stock(ctx, stockBytes)
//	lines, err := svc.Orders(ctx, orderBytes)
package ingest
