// Package ioenhance upgrades a store built before the taxonomy
// existed: it extends the schema with the method area and category
// tables, then enriches method rows from the methods snapshot. This
// is an impure I/O package.
package ioenhance

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/internal/ioingest"
	"github.com/pwcdb/pwcdb/internal/ioschema"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
)

const updateMethodSQL = `
	UPDATE methods SET
		introduced_year = ?,
		source_url = ?,
		source_title = ?,
		code_snippet_url = ?
	WHERE url = ?`

type enhancer struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates an Enhancer over a connected main-target operator.
func New(cfg *config.Config, op db.Operator) pwcdb.Enhancer {
	return &enhancer{cfg: cfg, operator: op}
}

// Enhance brings the taxonomy tables up to date and enriches method
// rows by canonical URL. Methods absent from the store are left
// alone: enhance never creates entities, and num_papers stays a
// derived column untouched by snapshot claims.
func (e *enhancer) Enhance(
	ctx context.Context,
	methodsPath string,
) (*pwcdb.EnhanceReport, error) {
	if e.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	start := time.Now()

	// AutoMigrate is additive: on a store predating the taxonomy it
	// creates the missing tables and columns, elsewhere it is a noop.
	if err := ioschema.NewManager(e.operator, "main").Create(ctx); err != nil {
		return nil, SchemaError(err)
	}

	rep := &pwcdb.EnhanceReport{}
	areas := make(map[string]int64)
	categories := make(map[string]int64)

	tx, err := e.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, UpdateError(err)
	}
	defer tx.Rollback()

	err = forEachMethod(methodsPath, func(rec *ioingest.MethodRecord) error {
		if strings.TrimSpace(rec.URL) == "" {
			return nil
		}

		var year int
		if rec.IntroducedYear != nil {
			year = *rec.IntroducedYear
		}
		res, err := tx.ExecContext(ctx, updateMethodSQL,
			year, rec.SourceURL, rec.SourceTitle,
			rec.CodeSnippetURL, rec.URL)
		if err != nil {
			return UpdateError(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}
		rep.MethodsUpdated++

		var methodID int64
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM methods WHERE url = ?", rec.URL).
			Scan(&methodID)
		if err != nil {
			return UpdateError(err)
		}

		return e.linkTaxonomy(ctx, tx, rep, areas, categories,
			methodID, rec.Collections)
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, UpdateError(err)
	}

	rep.Areas = len(areas)
	rep.Categories = len(categories)
	rep.Duration = time.Since(start)
	slog.Info("Enhancement finished",
		"methods", humanize.Comma(int64(rep.MethodsUpdated)),
		"areas", rep.Areas,
		"categories", rep.Categories,
		"links", rep.CategoryLinks,
	)
	return rep, nil
}

// linkTaxonomy upserts areas and categories and links the method.
func (e *enhancer) linkTaxonomy(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.EnhanceReport,
	areas, categories map[string]int64,
	methodID int64,
	collections []ioingest.CollectionRecord,
) error {
	for _, col := range collections {
		if col.AreaID == "" || col.Area == "" {
			continue
		}

		areaID, ok := areas[col.AreaID]
		if !ok {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO method_areas (area_id, area_name)
					VALUES (?, ?)`,
				col.AreaID, col.Area); err != nil {
				return UpdateError(err)
			}
			if err := tx.QueryRowContext(ctx,
				"SELECT id FROM method_areas WHERE area_name = ?",
				col.Area).Scan(&areaID); err != nil {
				return UpdateError(err)
			}
			areas[col.AreaID] = areaID
		}

		if col.Collection == "" {
			continue
		}

		catKey := col.AreaID + "\x00" + col.Collection
		catID, ok := categories[catKey]
		if !ok {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO method_categories (area_id, name)
					VALUES (?, ?)`,
				areaID, col.Collection); err != nil {
				return UpdateError(err)
			}
			if err := tx.QueryRowContext(ctx,
				`SELECT id FROM method_categories
					WHERE area_id = ? AND name = ?`,
				areaID, col.Collection).Scan(&catID); err != nil {
				return UpdateError(err)
			}
			categories[catKey] = catID
		}

		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO method_categories_rel
				(method_id, category_id) VALUES (?, ?)`,
			methodID, catID)
		if err != nil {
			return UpdateError(err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rep.CategoryLinks++
		}
	}
	return nil
}

// forEachMethod streams the methods snapshot.
func forEachMethod(
	path string,
	fn func(rec *ioingest.MethodRecord) error,
) error {
	f, err := os.Open(path)
	if err != nil {
		return OpenFileError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return OpenFileError(path, err)
	}

	bar := pb.Full.Start64(info.Size())
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", "Enhancing: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	dec := json.NewDecoder(bar.NewProxyReader(f))
	if _, err := dec.Token(); err != nil {
		return DecodeError(path, err)
	}

	for dec.More() {
		var rec ioingest.MethodRecord
		if err := dec.Decode(&rec); err != nil {
			return DecodeError(path, err)
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}
	return nil
}
