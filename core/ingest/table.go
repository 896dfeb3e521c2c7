package ingest

import "strings"

// Table is a parsed dataset: one header row and the data rows below it.
// Tables handed out by the Cache are shared and must not be modified.
type Table struct {
	// Headers holds the header cells as read from the source.
	Headers []string
	// Rows holds the data rows. Rows may be shorter than Headers.
	Rows [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the trimmed cell at the data row and column, or "" when the
// position lies outside the row.
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// newTable splits raw rows at the header index and drops blank rows.
func newTable(raw [][]string, headerRow int) (*Table, error) {
	if headerRow < 0 {
		headerRow = 0
	}
	if headerRow >= len(raw) {
		return nil, errMissingHeader(headerRow, len(raw))
	}

	t := &Table{
		Headers: make([]string, len(raw[headerRow])),
		Rows:    make([][]string, 0, len(raw)-headerRow-1),
	}
	for i, h := range raw[headerRow] {
		t.Headers[i] = strings.TrimSpace(h)
	}
	for _, row := range raw[headerRow+1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
