package ingest

import "time"

// Config holds configuration for the ingest adapters.
type Config struct {
	// StockFormat is the parser for stock files (csv, xlsx).
	StockFormat string `mapstructure:"stock_format" default:"csv"`
	// OrdersFormat is the parser for open order files (csv, xlsx).
	OrdersFormat string `mapstructure:"orders_format" default:"xlsx"`
	// OverridesFormat is the parser for override files (csv, xlsx).
	OverridesFormat string `mapstructure:"overrides_format" default:"csv"`
	// IdentifiersFormat is the parser for identifier list files (csv, xlsx).
	IdentifiersFormat string `mapstructure:"identifiers_format" default:"csv"`

	// Delimiter is the CSV field separator.
	Delimiter string `mapstructure:"delimiter" default:";"`
	// Encoding is the CSV character encoding (utf-8, windows-1252, ...).
	Encoding string `mapstructure:"encoding" default:"utf-8"`
	// HeaderRow is the 0-based header index of the ERP exports.
	HeaderRow int `mapstructure:"header_row" default:"2"`
	// OverridesHeaderRow is the 0-based header index of override and identifier files.
	OverridesHeaderRow int `mapstructure:"overrides_header_row" default:"0"`
	// Sheet is the worksheet name for xlsx input. Empty selects the first sheet.
	Sheet string `mapstructure:"sheet" default:""`

	// StockColumns overrides stock header names ("field=Header A|Header B,...").
	StockColumns string `mapstructure:"stock_columns" default:""`
	// OrdersColumns overrides order header names.
	OrdersColumns string `mapstructure:"orders_columns" default:""`
	// OverridesColumns overrides override header names.
	OverridesColumns string `mapstructure:"overrides_columns" default:""`

	// OrdersTable reads open orders from this database table instead of a file.
	OrdersTable string `mapstructure:"orders_table" default:""`

	// CacheTTLSeconds is how long parsed uploads are kept. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Format returns the parser settings for a dataset.
func (c Config) Format(dataset string) FormatConfig {
	fc := FormatConfig{
		Delimiter: c.Delimiter,
		Encoding:  c.Encoding,
		HeaderRow: c.HeaderRow,
		Sheet:     c.Sheet,
	}
	switch dataset {
	case DatasetStock:
		fc.Format = c.StockFormat
	case DatasetOrders:
		fc.Format = c.OrdersFormat
	case DatasetOverrides:
		fc.Format = c.OverridesFormat
		fc.HeaderRow = c.OverridesHeaderRow
	case DatasetIdentifiers:
		fc.Format = c.IdentifiersFormat
		fc.HeaderRow = c.OverridesHeaderRow
	}
	return fc
}

// Columns returns the header override mapping for a dataset.
func (c Config) Columns(dataset string) string {
	switch dataset {
	case DatasetStock:
		return c.StockColumns
	case DatasetOrders:
		return c.OrdersColumns
	case DatasetOverrides:
		return c.OverridesColumns
	}
	return ""
}

// CacheTTL returns the cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
