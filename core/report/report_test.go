package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var records = []reconcile.OutputRecord{
	{
		Identifier:        "A00001",
		DisplayName:       "Widget",
		QuantityDisplay:   "5",
		UnitDisplay:       "pcs",
		IsOnOrder:         reconcile.OnOrderYes,
		OrderQuantity:     "10 pcs",
		OrderDeliveryDate: "15.03.2030",
		OrderHandler:      "Maier",
		OrderRef:          "PO-1",
	},
	{
		Identifier:      "A99999",
		DisplayName:     reconcile.NotFound,
		QuantityDisplay: reconcile.NotFound,
		IsOnOrder:       reconcile.OnOrderNo,
	},
}

func TestLabels(t *testing.T) {
	l := report.DefaultLabels()
	assert.Equal(t, []string{
		"Artikelnummer", "Bezeichnung", "Bestand", "Einheit", "Ist Bestellt?",
		"Bestellmenge", "Lieferdatum", "Sachbearbeiter", "Bestellung",
	}, l.Headers())

	assert.Equal(t, "Ja", l.Row(records[0])[4])
	assert.Equal(t, "Nein", l.Row(records[1])[4])

	l.Yes = ""
	assert.Equal(t, "yes", l.Row(records[0])[4])
}

func TestConfig_Labels(t *testing.T) {
	cfg := report.Config{YesLabel: "Y", NoLabel: "N", Sheet: "Shortages"}
	l := cfg.Labels()
	assert.Equal(t, "Y", l.Yes)
	assert.Equal(t, "N", l.No)
	assert.Equal(t, "Shortages", l.Sheet)
	assert.Equal(t, "Artikelnummer", l.Identifier)
}

func TestConfig_Comma(t *testing.T) {
	assert.Equal(t, ';', report.Config{}.Comma())
	assert.Equal(t, ',', report.Config{Delimiter: ","}.Comma())
	assert.Equal(t, '\t', report.Config{Delimiter: "\t"}.Comma())
	assert.Equal(t, ';', report.Config{Delimiter: ",,"}.Comma())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, records, report.DefaultLabels(), 0))

	assert.Equal(t,
		"Artikelnummer;Bezeichnung;Bestand;Einheit;Ist Bestellt?;Bestellmenge;Lieferdatum;Sachbearbeiter;Bestellung\n"+
			"A00001;Widget;5;pcs;Ja;10 pcs;15.03.2030;Maier;PO-1\n"+
			"A99999;not found;not found;;Nein;;;;\n",
		buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, records, report.DefaultLabels()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fehlmengen"}, f.GetSheetList())

	rows, err := f.GetRows("Fehlmengen")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.DefaultLabels().Headers(), rows[0])
	assert.Equal(t, []string{"A00001", "Widget", "5", "pcs", "Ja", "10 pcs", "15.03.2030", "Maier", "PO-1"}, rows[1])
	assert.Equal(t, "A99999", rows[2][0])
	assert.Equal(t, "Nein", rows[2][4])

	styleID, err := f.GetCellStyle("Fehlmengen", "C1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteXLSX_ColumnWidths(t *testing.T) {
	long := []reconcile.OutputRecord{{Identifier: "A1", DisplayName: strings.Repeat("x", 100)}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, long, report.DefaultLabels()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth("Fehlmengen", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(60), width)

	for i := range report.DefaultLabels().Headers() {
		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		width, err := f.GetColWidth("Fehlmengen", col)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, width, float64(10), col)
	}
}

func TestRender(t *testing.T) {
	result := &reconcile.Result{Records: records, Summary: reconcile.Summary{Total: 2, OnOrder: 1}}
	cfg := report.Config{Delimiter: ",", YesLabel: "Ja", NoLabel: "Nein"}

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, " CSV ", result, cfg))
		assert.Contains(t, buf.String(), "A00001,Widget,5,pcs,Ja,10 pcs,15.03.2030,Maier,PO-1")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, "json", result, cfg))

		var decoded reconcile.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 2, decoded.Summary.Total)
		assert.Equal(t, "yes", decoded.Records[0].IsOnOrder)
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := report.Render(&bytes.Buffer{}, "pdf", result, cfg)
		assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
	})
}

func TestFormats(t *testing.T) {
	tests := []struct {
		format      string
		valid       bool
		contentType string
	}{
		{"xlsx", true, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"csv", true, "text/csv; charset=utf-8"},
		{"JSON", true, "application/json"},
		{"pdf", false, "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.valid, report.IsValidFormat(tt.format))
			assert.Equal(t, tt.valid, report.Config{Format: tt.format}.IsValidFormat())
			assert.Equal(t, tt.contentType, report.ContentType(tt.format))
		})
	}
	assert.Equal(t, "ergebnis.csv", report.FileName("CSV"))
}
