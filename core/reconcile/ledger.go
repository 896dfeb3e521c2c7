package reconcile

import (
	"strings"
	"time"
)

// LedgerOptions controls order matching.
type LedgerOptions struct {
	// ExcludeOverdue skips lines whose delivery date lies before today.
	// Lines with an unreadable date are never skipped by this filter.
	ExcludeOverdue bool

	// Now returns the reference time for ExcludeOverdue. Defaults to time.Now.
	Now func() time.Time
}

// OrderLedger holds open purchase order lines grouped by order reference.
type OrderLedger struct {
	lines  []OrderLine
	byItem map[string][]int
	groups map[string][]int
	open   map[string]bool
	opts   LedgerOptions
}

// NewOrderLedger groups lines by OrderRef and precomputes which groups are open.
func NewOrderLedger(lines []OrderLine, opts LedgerOptions) *OrderLedger {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &OrderLedger{
		lines:  lines,
		byItem: make(map[string][]int),
		groups: make(map[string][]int),
		open:   make(map[string]bool),
		opts:   opts,
	}

	for i, line := range lines {
		l.byItem[line.ItemIdentifier] = append(l.byItem[line.ItemIdentifier], i)
		l.groups[line.OrderRef] = append(l.groups[line.OrderRef], i)
	}

	for ref, members := range l.groups {
		open := true
		for _, i := range members {
			if !lines[i].Undelivered() {
				open = false
				break
			}
		}
		l.open[ref] = open
	}

	return l
}

// Len returns the number of order lines.
func (l *OrderLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.lines)
}

// Orders returns the number of distinct order references.
func (l *OrderLedger) Orders() int {
	if l == nil {
		return 0
	}
	return len(l.groups)
}

// Group returns the lines sharing the order reference, in input order.
func (l *OrderLedger) Group(orderRef string) []OrderLine {
	if l == nil {
		return nil
	}
	members := l.groups[orderRef]
	out := make([]OrderLine, 0, len(members))
	for _, i := range members {
		out = append(out, l.lines[i])
	}
	return out
}

// IsOpen reports whether no line of the order has been delivered.
func (l *OrderLedger) IsOpen(orderRef string) bool {
	if l == nil {
		return false
	}
	return l.open[orderRef]
}

// MatchOpenOrder returns the first line for the identifier, in input order,
// whose whole order is still undelivered. It returns nil when there is none.
func (l *OrderLedger) MatchOpenOrder(id string) *OrderMatch {
	if l == nil {
		return nil
	}

	for _, i := range l.byItem[id] {
		line := l.lines[i]
		if !l.open[line.OrderRef] {
			continue
		}
		if l.opts.ExcludeOverdue && l.overdue(line) {
			continue
		}
		return &OrderMatch{
			OrderRef:     line.OrderRef,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			DeliveryDate: line.DeliveryDate,
			DeliveryTime: line.DeliveryTime,
			Handler:      line.Handler,
			Supplier:     line.SupplierName,
			Line:         i,
		}
	}

	return nil
}

// PartiallyDelivered reports whether the identifier is on at least one order
// and every such order has started delivery.
func (l *OrderLedger) PartiallyDelivered(id string) bool {
	if l == nil {
		return false
	}
	lines := l.byItem[id]
	if len(lines) == 0 {
		return false
	}
	for _, i := range lines {
		if l.open[l.lines[i].OrderRef] {
			return false
		}
	}
	return true
}

func (l *OrderLedger) overdue(line OrderLine) bool {
	due, ok := parseDeliveryDate(line.DeliveryTime, line.DeliveryDate)
	if !ok {
		return false
	}
	now := l.opts.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, due.Location())
	return due.Before(today)
}

// parseDeliveryDate prefers the pre-parsed time and falls back to DD.MM.YYYY.
func parseDeliveryDate(t time.Time, raw string) (time.Time, bool) {
	if !t.IsZero() {
		return t, true
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	// Exports sometimes append a midnight time component
	if i := strings.IndexByte(raw, ' '); i > 0 {
		raw = raw[:i]
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
