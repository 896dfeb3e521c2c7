package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderLedger_FullyUndeliveredRule tests that any delivered line closes the whole order.
func TestOrderLedger_FullyUndeliveredRule(t *testing.T) {
	tests := []struct {
		name      string
		delivered []decimal.NullDecimal
		wantOpen  bool
	}{
		{"AllZero", []decimal.NullDecimal{delivered(0), delivered(0), delivered(0)}, true},
		{"OneDelivered", []decimal.NullDecimal{delivered(0), delivered(2), delivered(0)}, false},
		{"Negative", []decimal.NullDecimal{delivered(0), delivered(-1)}, false},
		{"Fraction", []decimal.NullDecimal{delivered(0), decimal.NewNullDecimal(decimal.RequireFromString("0.001"))}, false},
		{"ZeroWithScale", []decimal.NullDecimal{decimal.NewNullDecimal(decimal.RequireFromString("0.000")), delivered(0)}, true},
		{"EmptyCell", []decimal.NullDecimal{delivered(0), {}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []OrderLine
			for i, d := range tt.delivered {
				item := "OTHER"
				if i == 0 {
					item = "A1"
				}
				lines = append(lines, OrderLine{OrderRef: "B1", ItemIdentifier: item, DeliveredQty: d})
			}

			ledger := NewOrderLedger(lines, LedgerOptions{})
			assert.Equal(t, tt.wantOpen, ledger.IsOpen("B1"))

			match := ledger.MatchOpenOrder("A1")
			if tt.wantOpen {
				require.NotNil(t, match)
				assert.Equal(t, "B1", match.OrderRef)
			} else {
				assert.Nil(t, match)
				assert.True(t, ledger.PartiallyDelivered("A1"))
			}
		})
	}
}

// TestOrderLedger_FirstMatch tests that the earliest open line wins and closed orders are skipped.
func TestOrderLedger_FirstMatch(t *testing.T) {
	lines := []OrderLine{
		{OrderRef: "B0", ItemIdentifier: "A1", Handler: "closed", DeliveredQty: delivered(0)},
		{OrderRef: "B0", ItemIdentifier: "A9", DeliveredQty: delivered(4)},
		{OrderRef: "B1", ItemIdentifier: "A1", Handler: "first", DeliveredQty: delivered(0)},
		{OrderRef: "B2", ItemIdentifier: "A1", Handler: "second", DeliveredQty: delivered(0)},
	}

	match := NewOrderLedger(lines, LedgerOptions{}).MatchOpenOrder("A1")
	require.NotNil(t, match)
	assert.Equal(t, "B1", match.OrderRef)
	assert.Equal(t, "first", match.Handler)
	assert.Equal(t, 2, match.Line)
}

// TestOrderLedger_FirstMatchIgnoresIrrelevantRows tests determinism under shuffled unrelated rows.
func TestOrderLedger_FirstMatchIgnoresIrrelevantRows(t *testing.T) {
	first := OrderLine{OrderRef: "B1", ItemIdentifier: "A1", DeliveredQty: delivered(0)}
	second := OrderLine{OrderRef: "B2", ItemIdentifier: "A1", DeliveredQty: delivered(0)}
	noise := []OrderLine{
		{OrderRef: "B7", ItemIdentifier: "A7", DeliveredQty: delivered(1)},
		{OrderRef: "B8", ItemIdentifier: "A8", DeliveredQty: delivered(0)},
		{OrderRef: "B9", ItemIdentifier: "A9", DeliveredQty: delivered(0)},
	}

	layouts := [][]OrderLine{
		{first, second, noise[0], noise[1], noise[2]},
		{noise[2], first, noise[0], second, noise[1]},
		{noise[1], noise[0], noise[2], first, second},
	}

	for _, lines := range layouts {
		match := NewOrderLedger(lines, LedgerOptions{}).MatchOpenOrder("A1")
		require.NotNil(t, match)
		assert.Equal(t, "B1", match.OrderRef)
	}
}

// TestOrderLedger_NoLines tests identifiers that never appear on an order.
func TestOrderLedger_NoLines(t *testing.T) {
	ledger := NewOrderLedger(widgetLines(0), LedgerOptions{})
	assert.Nil(t, ledger.MatchOpenOrder("X99999"))
	assert.False(t, ledger.PartiallyDelivered("X99999"))

	var nilLedger *OrderLedger
	assert.Nil(t, nilLedger.MatchOpenOrder("A1"))
	assert.Equal(t, 0, nilLedger.Len())
}

// TestOrderLedger_Groups tests grouping accessors.
func TestOrderLedger_Groups(t *testing.T) {
	ledger := NewOrderLedger([]OrderLine{
		{OrderRef: "B1", ItemIdentifier: "A1", DeliveredQty: delivered(0)},
		{OrderRef: "B2", ItemIdentifier: "A2", DeliveredQty: delivered(0)},
		{OrderRef: "B1", ItemIdentifier: "A3", DeliveredQty: delivered(0)},
	}, LedgerOptions{})

	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, 2, ledger.Orders())

	group := ledger.Group("B1")
	require.Len(t, group, 2)
	assert.Equal(t, "A1", group[0].ItemIdentifier)
	assert.Equal(t, "A3", group[1].ItemIdentifier)
	assert.Empty(t, ledger.Group("missing"))
}

// TestOrderLedger_ExcludeOverdue tests the optional delivery date filter.
func TestOrderLedger_ExcludeOverdue(t *testing.T) {
	now := func() time.Time { return time.Date(2030, 6, 15, 13, 0, 0, 0, time.UTC) }
	lines := []OrderLine{
		{OrderRef: "B1", ItemIdentifier: "A1", DeliveryDate: "14.06.2030", DeliveredQty: delivered(0)},
		{OrderRef: "B2", ItemIdentifier: "A1", DeliveryDate: "15.06.2030", DeliveredQty: delivered(0)},
		{OrderRef: "B3", ItemIdentifier: "A2", DeliveryDate: "unknown", DeliveredQty: delivered(0)},
	}

	plain := NewOrderLedger(lines, LedgerOptions{Now: now})
	assert.Equal(t, "B1", plain.MatchOpenOrder("A1").OrderRef)

	filtered := NewOrderLedger(lines, LedgerOptions{ExcludeOverdue: true, Now: now})
	match := filtered.MatchOpenOrder("A1")
	require.NotNil(t, match)
	assert.Equal(t, "B2", match.OrderRef)

	// Unreadable dates are left to the engine's warning path
	assert.NotNil(t, filtered.MatchOpenOrder("A2"))
}
