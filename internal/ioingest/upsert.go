package ioingest

import (
	"context"
	"database/sql"
)

// upsertID inserts a row with INSERT OR IGNORE semantics and returns
// the id of the row owning the natural key, whether freshly inserted
// or already present. The boolean reports a fresh insert.
//
// LastInsertId is read only when RowsAffected shows a real insert;
// after an ignored conflict it still holds the previous value and
// must not be trusted.
func upsertID(
	ctx context.Context,
	tx *sql.Tx,
	insertSQL string, insertArgs []any,
	selectSQL string, selectArgs []any,
) (int64, bool, error) {
	res, err := tx.ExecContext(ctx, insertSQL, insertArgs...)
	if err != nil {
		return 0, false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, false, err
		}
		return id, true, nil
	}

	var id int64
	err = tx.QueryRowContext(ctx, selectSQL, selectArgs...).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}

// insertIgnore runs INSERT OR IGNORE and reports whether a row was
// written.
func insertIgnore(
	ctx context.Context,
	tx *sql.Tx,
	query string, args ...any,
) (bool, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// idCache memoizes natural-key to id lookups of one table for the
// lifetime of an ingest run. Snapshot files repeat author and task
// names heavily; the cache keeps those from hitting the database
// twice.
type idCache struct {
	m map[string]int64
}

func newIDCache() *idCache {
	return &idCache{m: make(map[string]int64)}
}

func (c *idCache) get(key string) (int64, bool) {
	id, ok := c.m[key]
	return id, ok
}

func (c *idCache) put(key string, id int64) {
	c.m[key] = id
}

func (c *idCache) len() int {
	return len(c.m)
}
