package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// OnOrderYes marks an output record whose identifier has an open order.
	OnOrderYes = "yes"
	// OnOrderNo marks an output record without an open order.
	OnOrderNo = "no"

	// NotFound is the default sentinel for identifiers missing in the stock catalog.
	NotFound = "not found"

	// DateLayout is the DD.MM.YYYY layout used for delivery dates in and out of the engine.
	DateLayout = "02.01.2006"
)

// StockRecord is one row of the stock export, keyed by Identifier.
type StockRecord struct {
	// Identifier is the item number (e.g. "A00001").
	Identifier string `json:"identifier"`

	// DisplayName is the human readable item description.
	DisplayName string `json:"display_name"`

	// Quantity is the quantity on hand, kept verbatim as exported.
	Quantity string `json:"quantity"`

	// Unit is the unit of Quantity (e.g. "pcs", "Stk").
	Unit string `json:"unit"`
}

// OverrideRecord supersedes the quantity and unit of a StockRecord.
type OverrideRecord struct {
	Identifier string `json:"identifier"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
}

// OrderLine is one item line of an open purchase order.
// Lines sharing an OrderRef belong to the same order.
type OrderLine struct {
	// OrderRef is the purchase order document number.
	OrderRef string `json:"order_ref"`

	// OrderDate is the order date as exported.
	OrderDate string `json:"order_date"`

	// SupplierName is the supplier short name.
	SupplierName string `json:"supplier_name"`

	// Handler is the person in charge of the order.
	Handler string `json:"handler"`

	// ItemIdentifier is the ordered item number.
	ItemIdentifier string `json:"item_identifier"`

	// DeliveryDate is the raw delivery date, expected as DD.MM.YYYY.
	DeliveryDate string `json:"delivery_date"`

	// DeliveryTime is the pre-parsed delivery date when the source cell was a
	// native date. It takes precedence over DeliveryDate when set.
	DeliveryTime time.Time `json:"delivery_time,omitempty"`

	// Unit is the unit of Quantity.
	Unit string `json:"unit"`

	// Quantity is the ordered quantity, kept verbatim for display.
	Quantity string `json:"quantity"`

	// DeliveredQty is the quantity delivered so far. Invalid when the cell was empty.
	DeliveredQty decimal.NullDecimal `json:"delivered_qty"`

	// OpenQty is the quantity still outstanding.
	OpenQty decimal.NullDecimal `json:"open_qty"`

	// OpenQtyAlt is the outstanding quantity in the alternative unit.
	OpenQtyAlt decimal.NullDecimal `json:"open_qty_alt"`
}

// Undelivered reports whether nothing of this line has been delivered yet.
// An empty delivered cell never counts as undelivered.
func (l OrderLine) Undelivered() bool {
	return l.DeliveredQty.Valid && l.DeliveredQty.Decimal.IsZero()
}

// OrderMatch is the open order line selected for an identifier.
type OrderMatch struct {
	OrderRef     string    `json:"order_ref"`
	Quantity     string    `json:"quantity"`
	Unit         string    `json:"unit"`
	DeliveryDate string    `json:"delivery_date"`
	DeliveryTime time.Time `json:"delivery_time,omitempty"`
	Handler      string    `json:"handler"`
	Supplier     string    `json:"supplier"`

	// Line is the index of the matched line in the ledger input.
	Line int `json:"line"`
}

// OutputRecord is one reconciled row of the report. Field order follows the
// report column order.
type OutputRecord struct {
	Identifier        string `json:"identifier"`
	DisplayName       string `json:"display_name"`
	QuantityDisplay   string `json:"quantity_display"`
	UnitDisplay       string `json:"unit_display"`
	IsOnOrder         string `json:"is_on_order"`
	OrderQuantity     string `json:"order_quantity"`
	OrderDeliveryDate string `json:"order_delivery_date"`
	OrderHandler      string `json:"order_handler"`
	OrderRef          string `json:"order_ref"`
}

// OnOrder reports whether the record was matched against an open order.
func (r OutputRecord) OnOrder() bool {
	return r.IsOnOrder == OnOrderYes
}

// Warning describes a value the engine could not use and replaced with an empty field.
type Warning struct {
	// Index is the position of the identifier in the request.
	Index      int    `json:"index"`
	Identifier string `json:"identifier"`
	Field      string `json:"field"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
}

// Summary provides aggregate counts for a reconciliation run.
type Summary struct {
	// Total is the number of requested identifiers (duplicates included).
	Total int `json:"total"`

	// InStock counts identifiers found in the stock catalog.
	InStock int `json:"in_stock"`

	// MissingStock counts identifiers absent from the stock catalog.
	MissingStock int `json:"missing_stock"`

	// Overridden counts identifiers whose quantity came from the override catalog.
	Overridden int `json:"overridden"`

	// OnOrder counts identifiers with an open order.
	OnOrder int `json:"on_order"`

	// PartiallyDelivered counts identifiers reported as not on order only
	// because every order they appear on has started delivery.
	PartiallyDelivered int `json:"partially_delivered"`

	// Warnings counts degraded fields.
	Warnings int `json:"warnings"`
}

// Result is the complete output of a reconciliation run.
type Result struct {
	Records  []OutputRecord `json:"records"`
	Warnings []Warning      `json:"warnings"`
	Summary  Summary        `json:"summary"`
}
