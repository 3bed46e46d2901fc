package ioclean

import (
	"context"
	"fmt"
	"strings"

	"github.com/pwcdb/pwcdb/pkg/pwcdb"
)

// junctionsByTable maps an entity table to the junction tables that
// reference it and must be cleared first.
var junctionsByTable = map[string][]struct {
	table, column string
}{
	"methods": {
		{table: "paper_methods", column: "method_id"},
		{table: "method_categories_rel", column: "method_id"},
	},
	"datasets": nil,
}

// remove deletes flagged entities grouped per table, each group in
// its own transaction: junction rows first, then the entities.
func (c *cleaner) remove(
	ctx context.Context,
	flagged []pwcdb.FlaggedEntity,
) (int, int, error) {
	byTable := make(map[string][]int64)
	for _, f := range flagged {
		byTable[f.Table] = append(byTable[f.Table], f.ID)
	}

	var removed, junctions int
	for table, ids := range byTable {
		r, j, err := c.removeFrom(ctx, table, ids)
		if err != nil {
			return removed, junctions, err
		}
		removed += r
		junctions += j
	}
	return removed, junctions, nil
}

func (c *cleaner) removeFrom(
	ctx context.Context,
	table string,
	ids []int64,
) (int, int, error) {
	tx, err := c.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, DeleteError(table, err)
	}
	defer tx.Rollback()

	var removed, junctions int

	// SQLite caps bound parameters; chunked IN lists stay well below
	// the limit.
	const chunkSize = 500
	for start := 0; start < len(ids); start += chunkSize {
		end := min(start+chunkSize, len(ids))
		chunk := ids[start:end]

		placeholders := strings.TrimSuffix(
			strings.Repeat("?,", len(chunk)), ",")
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		for _, j := range junctionsByTable[table] {
			res, err := tx.ExecContext(ctx, fmt.Sprintf(
				"DELETE FROM %s WHERE %s IN (%s)",
				j.table, j.column, placeholders), args...)
			if err != nil {
				return 0, 0, DeleteError(j.table, err)
			}
			n, _ := res.RowsAffected()
			junctions += int(n)
		}

		res, err := tx.ExecContext(ctx, fmt.Sprintf(
			"DELETE FROM %s WHERE id IN (%s)",
			table, placeholders), args...)
		if err != nil {
			return 0, 0, DeleteError(table, err)
		}
		n, _ := res.RowsAffected()
		removed += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, DeleteError(table, err)
	}
	return removed, junctions, nil
}
