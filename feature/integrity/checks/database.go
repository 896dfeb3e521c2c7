package checks

import (
	"errors"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"

	"gorm.io/gorm"
)

// DatabaseReport strictly types the result of an orders table check.
type DatabaseReport struct {
	Table   string `json:"table"`
	Matched bool   `json:"matched"`
	// Columns maps each schema field to the table column it is read from.
	Columns map[string]string `json:"columns"`
	// MissingFields are required fields without a matching column.
	MissingFields []string `json:"missing_fields"`
	// OptionalFields are optional fields without a matching column.
	OptionalFields []string `json:"optional_fields"`
	Errors         []string `json:"errors"`
}

// CheckDatabase verifies that the orders table has a column for every
// required field of the orders schema.
func CheckDatabase(db *gorm.DB, table string, schema ingest.Schema) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if table == "" {
		return nil, fmt.Errorf("no orders table configured")
	}

	report := &DatabaseReport{
		Table:          table,
		Matched:        true,
		Columns:        make(map[string]string),
		MissingFields:  []string{},
		OptionalFields: []string{},
	}

	cols, err := database.GetTableColumns(db, table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		report.Matched = false
		return report, nil // Partial fail
	}
	if len(cols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("table %s does not exist or has no columns", table))
		report.Matched = false
		return report, nil
	}

	t := &ingest.Table{}
	for _, c := range cols {
		t.Headers = append(t.Headers, c.Field)
	}

	resolved, err := schema.Resolve(t)
	var malformed *reconcile.MalformedDatasetError
	switch {
	case errors.As(err, &malformed):
		report.Matched = false
		report.MissingFields = malformed.Missing
		// Resolve stops at missing required fields; resolve again without them
		// to report the columns that do match.
		resolved, _ = optionalOnly(schema).Resolve(t)
	case err != nil:
		return nil, err
	}

	for _, f := range schema.Fields {
		if i := resolved.Index(f.Name); i >= 0 {
			report.Columns[f.Name] = t.Headers[i]
		} else if !f.Required {
			report.OptionalFields = append(report.OptionalFields, f.Name)
		}
	}

	return report, nil
}

func optionalOnly(s ingest.Schema) ingest.Schema {
	out := ingest.Schema{Dataset: s.Dataset, Fields: make([]ingest.Field, len(s.Fields))}
	for i, f := range s.Fields {
		f.Required = false
		out.Fields[i] = f
	}
	return out
}
