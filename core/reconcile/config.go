package reconcile

// Config holds configuration for the reconciliation engine and its sources.
type Config struct {
	// Strict rejects duplicate identifiers in the stock and override catalogs.
	Strict bool `mapstructure:"strict" default:"false"`
	// NotFoundLabel is written as name and quantity for identifiers missing in stock.
	NotFoundLabel string `mapstructure:"not_found_label" default:"not found"`
	// ExcludeOverdue ignores order lines whose delivery date has passed.
	ExcludeOverdue bool `mapstructure:"exclude_overdue" default:"false"`
	// Workers is the number of goroutines used for large identifier lists.
	Workers int `mapstructure:"workers" default:"1"`
}

// CatalogOptions returns the catalog options for this configuration.
func (c Config) CatalogOptions() CatalogOptions {
	return CatalogOptions{Strict: c.Strict}
}

// LedgerOptions returns the ledger options for this configuration.
func (c Config) LedgerOptions() LedgerOptions {
	return LedgerOptions{ExcludeOverdue: c.ExcludeOverdue}
}
