package ioingest

import (
	"context"
	"database/sql"
)

// batcher groups record writes into transactions of a fixed size.
// SQLite commits are expensive; one transaction per record would slow
// ingest by orders of magnitude, one transaction for a whole snapshot
// would lose everything on a late failure. Committed batches survive
// cancellation, so an interrupted run resumes idempotently.
type batcher struct {
	db   *sql.DB
	size int
	tx   *sql.Tx
	n    int
}

func newBatcher(ctx context.Context, db *sql.DB, size int) (*batcher, error) {
	if size < 1 {
		size = 1
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &batcher{db: db, size: size, tx: tx}, nil
}

// Tx returns the transaction of the current batch.
func (b *batcher) Tx() *sql.Tx {
	return b.tx
}

// Bump marks one record done. On a batch boundary the current
// transaction commits and a new one starts. Cancellation is honored
// only here, between batches, so committed work is never rolled back.
func (b *batcher) Bump(ctx context.Context) error {
	b.n++
	if b.n%b.size != 0 {
		return nil
	}

	if err := b.tx.Commit(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	b.tx = tx
	return nil
}

// Close commits the final partial batch.
func (b *batcher) Close() error {
	if b.tx == nil {
		return nil
	}
	err := b.tx.Commit()
	b.tx = nil
	return err
}

// Abort rolls back the current batch. Safe after Close.
func (b *batcher) Abort() {
	if b.tx != nil {
		b.tx.Rollback()
		b.tx = nil
	}
}
