package ingest

import (
	"context"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/utils"

	"gorm.io/gorm"
)

// SQLSource reads a dataset straight from an ERP table.
type SQLSource struct {
	DB    *gorm.DB
	Table string
}

// Load checks that the table exists and reads all of its rows as text cells.
func (s *SQLSource) Load(ctx context.Context) (*Table, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("%w: no database connection", ErrUnreadable)
	}

	columns, err := database.GetTableColumns(s.DB.WithContext(ctx), s.Table)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %q not found", ErrUnreadable, s.Table)
	}

	rows, err := s.DB.WithContext(ctx).Table(s.Table).Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrUnreadable, s.Table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	t := &Table{Headers: names}
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrUnreadable, s.Table, err)
		}
		row := make([]string, len(names))
		for i, v := range values {
			row[i] = utils.ToString(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return t, nil
}
