package reconcile

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// defaultChunkSize is the number of identifiers reconciled per unit of work.
const defaultChunkSize = 512

// Engine joins identifiers with the stock, override and order sources.
// The zero value is usable and reconciles sequentially.
type Engine struct {
	// NotFoundLabel replaces name and quantity for identifiers missing in stock.
	NotFoundLabel string

	// Workers is the number of goroutines used for large requests. Values
	// below 2 reconcile on the calling goroutine.
	Workers int

	// ChunkSize is the number of identifiers per unit of work.
	ChunkSize int
}

// NewEngine creates an engine from configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		NotFoundLabel: cfg.NotFoundLabel,
		Workers:       cfg.Workers,
	}
}

// Reconcile maps every identifier to one output record, preserving order and
// duplicates. overrides may be nil.
func Reconcile(ids []string, stock *StockCatalog, overrides *OverrideCatalog, ledger *OrderLedger) []OutputRecord {
	res, _ := (&Engine{}).Run(context.Background(), ids, stock, overrides, ledger)
	return res.Records
}

// outcome is the per-identifier result before summarising.
type outcome struct {
	record     OutputRecord
	warning    *Warning
	inStock    bool
	overridden bool
	partial    bool
}

// Run reconciles the identifiers and returns records, warnings and a summary.
// The only error is a cancelled context.
func (e *Engine) Run(ctx context.Context, ids []string, stock *StockCatalog, overrides *OverrideCatalog, ledger *OrderLedger) (*Result, error) {
	outcomes := make([]outcome, len(ids))

	chunk := e.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}

	work := func(start, end int) {
		for i := start; i < end; i++ {
			outcomes[i] = e.reconcileOne(i, ids[i], stock, overrides, ledger)
		}
	}

	if e.Workers > 1 && len(ids) > chunk {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.Workers)
		for start := 0; start < len(ids); start += chunk {
			end := min(start+chunk, len(ids))
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				work(start, end)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for start := 0; start < len(ids); start += chunk {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			work(start, min(start+chunk, len(ids)))
		}
	}

	return summarise(outcomes), nil
}

func (e *Engine) reconcileOne(i int, id string, stock *StockCatalog, overrides *OverrideCatalog, ledger *OrderLedger) outcome {
	notFound := e.NotFoundLabel
	if notFound == "" {
		notFound = NotFound
	}

	out := outcome{
		record: OutputRecord{
			Identifier: id,
			IsOnOrder:  OnOrderNo,
		},
	}
	rec := &out.record

	if s, ok := stock.Lookup(id); ok {
		out.inStock = true
		rec.DisplayName = s.DisplayName
		rec.QuantityDisplay = s.Quantity
		rec.UnitDisplay = s.Unit
		if o, ok := overrides.Lookup(id); ok {
			out.overridden = true
			rec.QuantityDisplay = o.Quantity
			rec.UnitDisplay = o.Unit
		}
	} else {
		rec.DisplayName = notFound
		rec.QuantityDisplay = notFound
	}

	match := ledger.MatchOpenOrder(id)
	if match == nil {
		out.partial = ledger.PartiallyDelivered(id)
		return out
	}

	rec.IsOnOrder = OnOrderYes
	rec.OrderQuantity = formatQuantity(match.Quantity, match.Unit)
	rec.OrderHandler = match.Handler
	rec.OrderRef = match.OrderRef

	date, ok := formatDeliveryDate(match)
	if !ok {
		out.warning = &Warning{
			Index:      i,
			Identifier: id,
			Field:      "order_delivery_date",
			Value:      match.DeliveryDate,
			Reason:     "expected DD.MM.YYYY",
		}
	}
	rec.OrderDeliveryDate = date

	return out
}

func summarise(outcomes []outcome) *Result {
	res := &Result{
		Records:  make([]OutputRecord, len(outcomes)),
		Warnings: []Warning{},
	}
	res.Summary.Total = len(outcomes)

	for i, o := range outcomes {
		res.Records[i] = o.record
		if o.inStock {
			res.Summary.InStock++
		} else {
			res.Summary.MissingStock++
		}
		if o.overridden {
			res.Summary.Overridden++
		}
		if o.record.OnOrder() {
			res.Summary.OnOrder++
		}
		if o.partial {
			res.Summary.PartiallyDelivered++
		}
		if o.warning != nil {
			res.Warnings = append(res.Warnings, *o.warning)
		}
	}
	res.Summary.Warnings = len(res.Warnings)

	return res
}

// formatQuantity renders "<quantity> <unit>" or nothing when either part is missing.
func formatQuantity(quantity, unit string) string {
	quantity = strings.TrimSpace(quantity)
	unit = strings.TrimSpace(unit)
	if quantity == "" || unit == "" {
		return ""
	}
	return quantity + " " + unit
}

// formatDeliveryDate normalises the match date to DD.MM.YYYY. ok is false
// only when a non-empty value could not be read.
func formatDeliveryDate(m *OrderMatch) (string, bool) {
	t, parsed := parseDeliveryDate(m.DeliveryTime, m.DeliveryDate)
	if parsed {
		return t.Format(DateLayout), true
	}
	return "", strings.TrimSpace(m.DeliveryDate) == ""
}
