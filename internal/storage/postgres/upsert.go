package postgres

import (
	"context"
	"fmt"
	"strings"
)

// insertBatch performs one multi-row INSERT ... ON CONFLICT (row_hash)
// DO NOTHING. A single statement is atomic, so a failed batch leaves
// no partially committed rows. Returns the number of rows actually
// inserted; re-delivered fingerprints count as zero.
func insertBatch(ctx context.Context, pool *Pool, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("insert into %s: row %d has %d values, want %d", table, i, len(row), len(columns))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}
	b.WriteString(" ON CONFLICT (row_hash) DO NOTHING")

	tag, err := pool.Exec(ctx, b.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("insert batch into %s: %w", table, err)
	}

	return tag.RowsAffected(), nil
}

// qualify builds a sanitized schema-qualified table name.
func qualify(schema, table string) string {
	return fmt.Sprintf("%q.%q", schema, table)
}
