package iorelink

import (
	"context"
	"database/sql"
	"log/slog"
)

// loadMethodIndex maps normalized method names and full names to
// method ids. On a name collision the first catalog row wins; later
// claimants are logged and ignored, so resolution stays
// deterministic in id order.
func (r *relinker) loadMethodIndex(
	ctx context.Context,
) (map[string]int64, error) {
	rows, err := r.operator.DB().QueryContext(ctx, `
		SELECT id, name, full_name FROM methods
		WHERE name IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, CatalogError(err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	add := func(key string, id int64) {
		if key == "" {
			return
		}
		if prev, ok := index[key]; ok {
			if prev != id {
				slog.Warn("Method name collision",
					"name", key, "kept", prev, "ignored", id)
			}
			return
		}
		index[key] = id
	}

	for rows.Next() {
		var id int64
		var name, fullName sql.NullString
		if err := rows.Scan(&id, &name, &fullName); err != nil {
			return nil, CatalogError(err)
		}
		add(normalizeName(name.String), id)
		add(normalizeName(fullName.String), id)
	}
	if err := rows.Err(); err != nil {
		return nil, CatalogError(err)
	}
	return index, nil
}

// loadPaperIndex maps paper URLs to ids.
func (r *relinker) loadPaperIndex(
	ctx context.Context,
) (map[string]int64, error) {
	rows, err := r.operator.DB().QueryContext(ctx,
		"SELECT id, paper_url FROM papers")
	if err != nil {
		return nil, CatalogError(err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var id int64
		var url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, CatalogError(err)
		}
		index[url] = id
	}
	if err := rows.Err(); err != nil {
		return nil, CatalogError(err)
	}
	return index, nil
}

// rebuildLinks replaces paper_methods with the resolved pair set in
// one transaction: either the old links or the new links exist, never
// a mix. Returns the number of distinct methods that kept at least
// one paper.
func (r *relinker) rebuildLinks(
	ctx context.Context,
	pairs map[pair]struct{},
) (int, error) {
	tx, err := r.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, RebuildError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM paper_methods"); err != nil {
		return 0, RebuildError(err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO paper_methods (paper_id, method_id) VALUES (?, ?)")
	if err != nil {
		return 0, RebuildError(err)
	}
	defer stmt.Close()

	methods := make(map[int64]struct{})
	for p := range pairs {
		if _, err := stmt.ExecContext(ctx, p.paperID, p.methodID); err != nil {
			return 0, RebuildError(err)
		}
		methods[p.methodID] = struct{}{}
	}

	if err := tx.Commit(); err != nil {
		return 0, RebuildError(err)
	}
	return len(methods), nil
}

// recountPapers recomputes num_papers for every method from the
// junction table.
func (r *relinker) recountPapers(ctx context.Context) error {
	_, err := r.operator.DB().ExecContext(ctx, `
		UPDATE methods
		SET num_papers = (
			SELECT COUNT(DISTINCT pm.paper_id)
			FROM paper_methods pm
			WHERE pm.method_id = methods.id
		)`)
	if err != nil {
		return RecountError(err)
	}
	return nil
}
