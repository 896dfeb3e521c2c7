package report

import "github.com/hanneshbsrt/fehlmengen/core/reconcile"

// Labels are the column headers and display values of a report.
type Labels struct {
	Identifier    string
	DisplayName   string
	Quantity      string
	Unit          string
	OnOrder       string
	OrderQuantity string
	DeliveryDate  string
	Handler       string
	OrderRef      string

	Yes   string
	No    string
	Sheet string
}

// DefaultLabels returns the German headers used by the purchasing department.
func DefaultLabels() Labels {
	return Labels{
		Identifier:    "Artikelnummer",
		DisplayName:   "Bezeichnung",
		Quantity:      "Bestand",
		Unit:          "Einheit",
		OnOrder:       "Ist Bestellt?",
		OrderQuantity: "Bestellmenge",
		DeliveryDate:  "Lieferdatum",
		Handler:       "Sachbearbeiter",
		OrderRef:      "Bestellung",
		Yes:           "Ja",
		No:            "Nein",
		Sheet:         "Fehlmengen",
	}
}

// Headers returns the column headers in report order.
func (l Labels) Headers() []string {
	return []string{
		l.Identifier,
		l.DisplayName,
		l.Quantity,
		l.Unit,
		l.OnOrder,
		l.OrderQuantity,
		l.DeliveryDate,
		l.Handler,
		l.OrderRef,
	}
}

// Row returns the cells of one record in report order.
func (l Labels) Row(r reconcile.OutputRecord) []string {
	return []string{
		r.Identifier,
		r.DisplayName,
		r.QuantityDisplay,
		r.UnitDisplay,
		l.onOrder(r),
		r.OrderQuantity,
		r.OrderDeliveryDate,
		r.OrderHandler,
		r.OrderRef,
	}
}

func (l Labels) onOrder(r reconcile.OutputRecord) string {
	switch r.IsOnOrder {
	case reconcile.OnOrderYes:
		if l.Yes != "" {
			return l.Yes
		}
	case reconcile.OnOrderNo:
		if l.No != "" {
			return l.No
		}
	}
	return r.IsOnOrder
}
