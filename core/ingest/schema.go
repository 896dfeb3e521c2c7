package ingest

import (
	"fmt"
	"strings"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/utils"
)

// Dataset names used in errors and configuration.
const (
	DatasetStock       = "stock"
	DatasetOrders      = "orders"
	DatasetOverrides   = "overrides"
	DatasetIdentifiers = "identifiers"
)

// Normalized field names.
const (
	FieldIdentifier   = "identifier"
	FieldDisplayName  = "display_name"
	FieldQuantity     = "quantity"
	FieldUnit         = "unit"
	FieldOrderRef     = "order_ref"
	FieldOrderDate    = "order_date"
	FieldSupplier     = "supplier_name"
	FieldHandler      = "handler"
	FieldItem         = "item_identifier"
	FieldDeliveryDate = "delivery_date"
	FieldDeliveredQty = "delivered_qty"
	FieldOpenQty      = "open_qty"
	FieldOpenQtyAlt   = "open_qty_alt"
)

// Field maps one normalized field to the header names that may carry it.
// The first header found in the table wins.
type Field struct {
	Name     string
	Headers  []string
	Required bool
}

// Schema describes the columns of one dataset.
type Schema struct {
	Dataset string
	Fields  []Field
}

// Columns maps normalized field names to column positions in a Table.
// Absent optional fields are not present in the map.
type Columns map[string]int

// Index returns the column for the field or -1.
func (c Columns) Index(field string) int {
	if i, ok := c[field]; ok {
		return i
	}
	return -1
}

func StockSchema() Schema {
	return Schema{
		Dataset: DatasetStock,
		Fields: []Field{
			{Name: FieldIdentifier, Headers: []string{"Artikelnummer", "Artikelnr.", "Artikel"}, Required: true},
			{Name: FieldDisplayName, Headers: []string{"Bezeichnung", "Artikelbezeichnung", "Beschreibung"}},
			{Name: FieldQuantity, Headers: []string{"Bestand", "Lagerbestand", "Fehlmenge", "Menge"}},
			{Name: FieldUnit, Headers: []string{"Einheit", "ME", "Mengeneinheit"}},
		},
	}
}

func OverrideSchema() Schema {
	return Schema{
		Dataset: DatasetOverrides,
		Fields: []Field{
			{Name: FieldIdentifier, Headers: []string{"Artikelnummer", "Artikelnr.", "Artikel"}, Required: true},
			{Name: FieldQuantity, Headers: []string{"Bestand", "Menge"}},
			{Name: FieldUnit, Headers: []string{"Einheit", "ME"}},
		},
	}
}

func OrderSchema() Schema {
	return Schema{
		Dataset: DatasetOrders,
		Fields: []Field{
			{Name: FieldOrderRef, Headers: []string{"Belegnr.", "Belegnummer", "Bestellnummer", "Bestellung"}, Required: true},
			{Name: FieldOrderDate, Headers: []string{"Belegdatum", "Bestelldatum", "Datum"}},
			{Name: FieldSupplier, Headers: []string{"Lieferant", "Kurzbezeichnung", "Lieferantenname"}},
			{Name: FieldHandler, Headers: []string{"Sachbearbeiter", "Bearbeiter", "Einkäufer"}},
			{Name: FieldItem, Headers: []string{"Artikelnr.", "Artikelnummer"}, Required: true},
			{Name: FieldDeliveryDate, Headers: []string{"Lieferdatum", "Liefertermin"}},
			{Name: FieldUnit, Headers: []string{"Einheit", "ME", "Mengeneinheit"}},
			{Name: FieldQuantity, Headers: []string{"Menge", "Gesamtmenge", "Bestellmenge"}},
			{Name: FieldDeliveredQty, Headers: []string{"Geliefert", "Gelieferte Menge"}, Required: true},
			{Name: FieldOpenQty, Headers: []string{"Offen", "Offene Menge"}},
			{Name: FieldOpenQtyAlt, Headers: []string{"Rest", "Restmenge"}},
		},
	}
}

func IdentifierSchema() Schema {
	return Schema{
		Dataset: DatasetIdentifiers,
		Fields: []Field{
			{Name: FieldIdentifier, Headers: []string{"Artikelnummer", "Artikelnr.", "Artikel", "Identifier"}, Required: true},
		},
	}
}

// SchemaFor returns the default schema of a dataset.
func SchemaFor(dataset string) (Schema, error) {
	switch dataset {
	case DatasetStock:
		return StockSchema(), nil
	case DatasetOrders:
		return OrderSchema(), nil
	case DatasetOverrides:
		return OverrideSchema(), nil
	case DatasetIdentifiers:
		return IdentifierSchema(), nil
	}
	return Schema{}, fmt.Errorf("unknown dataset %q", dataset)
}

// WithOverrides replaces the header names of individual fields. The mapping has
// the form "field=Header A|Header B,field2=Header C".
func (s Schema) WithOverrides(mapping string) (Schema, error) {
	mapping = strings.TrimSpace(mapping)
	if mapping == "" {
		return s, nil
	}

	out := Schema{Dataset: s.Dataset, Fields: make([]Field, len(s.Fields))}
	copy(out.Fields, s.Fields)

	for _, entry := range strings.Split(mapping, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, headers, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return Schema{}, fmt.Errorf("%s columns: expected field=Header, got %q", s.Dataset, entry)
		}

		var list []string
		for _, h := range strings.Split(headers, "|") {
			if h = strings.TrimSpace(h); h != "" {
				list = append(list, h)
			}
		}
		if len(list) == 0 {
			return Schema{}, fmt.Errorf("%s columns: no header given for %q", s.Dataset, name)
		}

		found := false
		for i := range out.Fields {
			if out.Fields[i].Name == name {
				out.Fields[i].Headers = list
				found = true
				break
			}
		}
		if !found {
			return Schema{}, fmt.Errorf("%s columns: unknown field %q", s.Dataset, name)
		}
	}

	return out, nil
}

// Resolve locates every field in the table header. All missing required
// fields are reported together.
func (s Schema) Resolve(t *Table) (Columns, error) {
	positions := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		key := utils.NormalizeHeader(h)
		if _, seen := positions[key]; !seen && key != "" {
			positions[key] = i
		}
	}

	cols := make(Columns, len(s.Fields))
	var missing []string
	for _, f := range s.Fields {
		idx := -1
		for _, h := range f.Headers {
			if i, ok := positions[utils.NormalizeHeader(h)]; ok {
				idx = i
				break
			}
		}
		if idx >= 0 {
			cols[f.Name] = idx
			continue
		}
		if f.Required {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &reconcile.MalformedDatasetError{Dataset: s.Dataset, Missing: missing}
	}
	return cols, nil
}
