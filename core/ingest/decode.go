package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/utils"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order for textual date cells.
var dateLayouts = []string{
	reconcile.DateLayout,
	"02.01.2006 15:04:05",
	"02.01.06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// DecodeStock turns a stock table into records.
func DecodeStock(t *Table, s Schema) ([]reconcile.StockRecord, error) {
	cols, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.StockRecord, 0, t.Len())
	for i := range t.Rows {
		out = append(out, reconcile.StockRecord{
			Identifier:  t.Cell(i, cols.Index(FieldIdentifier)),
			DisplayName: t.Cell(i, cols.Index(FieldDisplayName)),
			Quantity:    t.Cell(i, cols.Index(FieldQuantity)),
			Unit:        t.Cell(i, cols.Index(FieldUnit)),
		})
	}
	return out, nil
}

// DecodeOverrides turns an override table into records.
func DecodeOverrides(t *Table, s Schema) ([]reconcile.OverrideRecord, error) {
	cols, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.OverrideRecord, 0, t.Len())
	for i := range t.Rows {
		out = append(out, reconcile.OverrideRecord{
			Identifier: t.Cell(i, cols.Index(FieldIdentifier)),
			Quantity:   t.Cell(i, cols.Index(FieldQuantity)),
			Unit:       t.Cell(i, cols.Index(FieldUnit)),
		})
	}
	return out, nil
}

// DecodeOrderLines turns an order table into lines. A delivered quantity that
// is present but not a number rejects the whole dataset.
func DecodeOrderLines(t *Table, s Schema) ([]reconcile.OrderLine, error) {
	cols, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}

	deliveredCol := cols.Index(FieldDeliveredQty)
	out := make([]reconcile.OrderLine, 0, t.Len())
	for i := range t.Rows {
		delivered, err := utils.ToDecimal(t.Cell(i, deliveredCol))
		if err != nil {
			return nil, &reconcile.MalformedDatasetError{
				Dataset: s.Dataset,
				Row:     i + 1,
				Column:  t.Headers[deliveredCol],
				Reason:  "delivered quantity is not a number",
			}
		}
		// Open quantities are informational only
		open, _ := utils.ToDecimal(t.Cell(i, cols.Index(FieldOpenQty)))
		openAlt, _ := utils.ToDecimal(t.Cell(i, cols.Index(FieldOpenQtyAlt)))

		rawDelivery := t.Cell(i, cols.Index(FieldDeliveryDate))
		orderDate := t.Cell(i, cols.Index(FieldOrderDate))
		if d, ok := CellTime(orderDate); ok {
			orderDate = d.Format(reconcile.DateLayout)
		}
		deliveryTime, _ := CellTime(rawDelivery)

		out = append(out, reconcile.OrderLine{
			OrderRef:       t.Cell(i, cols.Index(FieldOrderRef)),
			OrderDate:      orderDate,
			SupplierName:   t.Cell(i, cols.Index(FieldSupplier)),
			Handler:        t.Cell(i, cols.Index(FieldHandler)),
			ItemIdentifier: t.Cell(i, cols.Index(FieldItem)),
			DeliveryDate:   rawDelivery,
			DeliveryTime:   deliveryTime,
			Unit:           t.Cell(i, cols.Index(FieldUnit)),
			Quantity:       t.Cell(i, cols.Index(FieldQuantity)),
			DeliveredQty:   delivered,
			OpenQty:        open,
			OpenQtyAlt:     openAlt,
		})
	}
	return out, nil
}

// DecodeIdentifiers returns the non-blank identifiers of a table in row order.
func DecodeIdentifiers(t *Table, s Schema) ([]string, error) {
	cols, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}

	col := cols.Index(FieldIdentifier)
	out := make([]string, 0, t.Len())
	for i := range t.Rows {
		if id := t.Cell(i, col); id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

// ParseIdentifierList splits manual input on commas, semicolons and
// whitespace. Order and duplicates are kept.
func ParseIdentifierList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// CellTime reads a date cell. Excel serial numbers and the common textual
// layouts are recognised.
func CellTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		// Serial 1 is 1900-01-01 and Excel's calendar ends at 9999-12-31
		if math.IsNaN(serial) || serial < 1 || serial > 2958465 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
