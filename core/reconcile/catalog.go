package reconcile

// CatalogOptions controls catalog construction.
type CatalogOptions struct {
	// Strict rejects duplicate identifiers instead of letting the last row win.
	Strict bool
}

// index maps identifiers to records and remembers first-seen order.
type index[T any] struct {
	name    string
	records map[string]T
	rows    map[string]int
	order   []string
}

func buildIndex[T any](name string, records []T, key func(T) string, opts CatalogOptions) (*index[T], error) {
	idx := &index[T]{
		name:    name,
		records: make(map[string]T, len(records)),
		rows:    make(map[string]int, len(records)),
		order:   make([]string, 0, len(records)),
	}

	for i, rec := range records {
		id := key(rec)
		// Blank rows in exports carry no identifier
		if id == "" {
			continue
		}

		row := i + 1
		if first, exists := idx.rows[id]; exists {
			if opts.Strict {
				return nil, &DuplicateIdentifierError{
					Catalog:    name,
					Identifier: id,
					First:      first,
					Second:     row,
				}
			}
		} else {
			idx.rows[id] = row
			idx.order = append(idx.order, id)
		}
		idx.records[id] = rec
	}

	return idx, nil
}

func (i *index[T]) lookup(id string) (T, bool) {
	rec, ok := i.records[id]
	return rec, ok
}

// StockCatalog maps identifiers to stock records.
type StockCatalog struct {
	idx *index[StockRecord]
}

// NewStockCatalog builds the catalog. Without strict mode the last occurrence
// of a duplicated identifier overwrites earlier ones.
func NewStockCatalog(records []StockRecord, opts CatalogOptions) (*StockCatalog, error) {
	idx, err := buildIndex("stock", records, func(r StockRecord) string { return r.Identifier }, opts)
	if err != nil {
		return nil, err
	}
	return &StockCatalog{idx: idx}, nil
}

// Lookup returns the stock record for the identifier.
func (c *StockCatalog) Lookup(id string) (StockRecord, bool) {
	if c == nil {
		return StockRecord{}, false
	}
	return c.idx.lookup(id)
}

// Len returns the number of distinct identifiers.
func (c *StockCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.idx.records)
}

// Identifiers returns the distinct identifiers in first-seen order.
func (c *StockCatalog) Identifiers() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.idx.order))
	copy(out, c.idx.order)
	return out
}

// OverrideCatalog maps identifiers to quantity overrides.
// A nil catalog is valid and contains nothing.
type OverrideCatalog struct {
	idx *index[OverrideRecord]
}

// NewOverrideCatalog builds the catalog with the same duplicate policy as NewStockCatalog.
func NewOverrideCatalog(records []OverrideRecord, opts CatalogOptions) (*OverrideCatalog, error) {
	idx, err := buildIndex("override", records, func(r OverrideRecord) string { return r.Identifier }, opts)
	if err != nil {
		return nil, err
	}
	return &OverrideCatalog{idx: idx}, nil
}

// Lookup returns the override for the identifier. Absence is the normal case.
func (c *OverrideCatalog) Lookup(id string) (OverrideRecord, bool) {
	if c == nil {
		return OverrideRecord{}, false
	}
	return c.idx.lookup(id)
}

// Len returns the number of distinct identifiers.
func (c *OverrideCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.idx.records)
}
