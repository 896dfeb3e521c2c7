// Package reconcile joins shortage identifiers with stock levels and open
// purchase orders.
//
// The package works on already normalized records and performs no I/O. Callers
// build three read-only sources for a run and hand them to the engine together
// with the ordered identifier list:
//
//   - StockCatalog: identifier -> name, quantity on hand, unit.
//   - OverrideCatalog: optional identifier -> quantity/unit that replace the stock values.
//   - OrderLedger: open purchase order lines grouped by order reference.
//
// # Matching
//
// An order counts as open only while every line of that order is still fully
// undelivered (delivered quantity numerically zero). For each identifier the
// ledger returns the first line, in input order, that belongs to an open
// order. Orders with partial deliveries are reported as not on order.
//
// # Output
//
// Reconcile emits exactly one OutputRecord per requested identifier, in the
// same order and including duplicates. Identifiers missing in stock carry the
// not-found sentinel and are still matched against the ledger. Unreadable
// delivery dates become empty fields and are reported as warnings in Result.
//
// # Usage
//
//	stock, err := reconcile.NewStockCatalog(stockRecords, reconcile.CatalogOptions{})
//	ledger := reconcile.NewOrderLedger(orderLines, reconcile.LedgerOptions{})
//	records := reconcile.Reconcile(ids, stock, nil, ledger)
//
//	// With warnings, summary and parallel workers:
//	res, err := reconcile.NewEngine(cfg.Reconcile).Run(ctx, ids, stock, overrides, ledger)
package reconcile
