package ioingest

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

const insertMethodSQL = `
	INSERT OR IGNORE INTO methods (
		url, name, full_name, description, introduced_year,
		num_papers, paper_title, paper_arxiv_id, paper_url_abs,
		paper_url_pdf, paper_url, source_url, source_title,
		code_snippet_url
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ingestMethods loads methods.json: the full method catalog with its
// area and category taxonomy. num_papers is always written as zero;
// the relink stage recomputes it from actual links.
func (p *ingestor) ingestMethods(
	ctx context.Context,
	src sources.SourceFile,
) (*pwcdb.IngestReport, error) {
	start := time.Now()
	rep := &pwcdb.IngestReport{File: src.File}

	areas := newIDCache()
	categories := newIDCache()

	b, err := newBatcher(ctx, p.operator.DB(), p.cfg.Database.BatchSize)
	if err != nil {
		return nil, UpsertError(src.File, err)
	}
	defer b.Abort()

	records, err := forEachRecord(ctx, src.Path, "Methods",
		func(rec *MethodRecord) error {
			if strings.TrimSpace(rec.URL) == "" {
				rep.Skipped++
				return nil
			}

			methodID, inserted, err := p.upsertMethod(ctx, b.Tx(), rec)
			if err != nil {
				return UpsertError(src.File, err)
			}
			if inserted {
				rep.Entities++
			}

			if err := p.linkCollections(ctx, b.Tx(), rep,
				areas, categories, methodID, rec.Collections); err != nil {
				return err
			}

			return p.bump(ctx, b, src.File)
		})
	if err != nil {
		return nil, err
	}

	if err := b.Close(); err != nil {
		return nil, UpsertError(src.File, err)
	}

	rep.Records = records
	rep.Duration = time.Since(start)
	slog.Info("Methods ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Entities)),
		"areas", areas.len(),
		"categories", categories.len(),
		"skipped", rep.Skipped,
	)
	return rep, nil
}

// upsertMethod writes one method row keyed by URL.
func (p *ingestor) upsertMethod(
	ctx context.Context,
	tx *sql.Tx,
	rec *MethodRecord,
) (int64, bool, error) {
	var year int
	if rec.IntroducedYear != nil {
		year = *rec.IntroducedYear
	}
	paper := rec.Paper
	if paper == nil {
		paper = &MethodPaperRef{}
	}

	return upsertID(ctx, tx,
		insertMethodSQL, []any{
			rec.URL, rec.Name, rec.FullName, rec.Description, year,
			0, paper.Title, paper.ArxivID, paper.URLAbs, paper.URLPDF,
			paper.URL, rec.SourceURL, rec.SourceTitle,
			rec.CodeSnippetURL,
		},
		"SELECT id FROM methods WHERE url = ?",
		[]any{rec.URL},
	)
}

// linkCollections places a method into the area/category taxonomy.
// Categories are scoped by area: the same category name under two
// areas stays two rows.
func (p *ingestor) linkCollections(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	areas, categories *idCache,
	methodID int64,
	collections []CollectionRecord,
) error {
	for _, col := range collections {
		if col.AreaID == "" || col.Area == "" {
			continue
		}

		areaID, ok := areas.get(col.AreaID)
		if !ok {
			var inserted bool
			var err error
			areaID, inserted, err = upsertID(ctx, tx,
				`INSERT OR IGNORE INTO method_areas (area_id, area_name)
					VALUES (?, ?)`,
				[]any{col.AreaID, col.Area},
				"SELECT id FROM method_areas WHERE area_name = ?",
				[]any{col.Area},
			)
			if err != nil {
				return LinkError("method_areas", err)
			}
			if inserted {
				rep.Entities++
			}
			areas.put(col.AreaID, areaID)
		}

		if col.Collection == "" {
			continue
		}

		catKey := col.AreaID + "\x00" + col.Collection
		catID, ok := categories.get(catKey)
		if !ok {
			var inserted bool
			var err error
			catID, inserted, err = upsertID(ctx, tx,
				`INSERT OR IGNORE INTO method_categories (area_id, name)
					VALUES (?, ?)`,
				[]any{areaID, col.Collection},
				`SELECT id FROM method_categories
					WHERE area_id = ? AND name = ?`,
				[]any{areaID, col.Collection},
			)
			if err != nil {
				return LinkError("method_categories", err)
			}
			if inserted {
				rep.Entities++
			}
			categories.put(catKey, catID)
		}

		linked, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO method_categories_rel
				(method_id, category_id) VALUES (?, ?)`,
			methodID, catID)
		if err != nil {
			return LinkError("method_categories_rel", err)
		}
		if linked {
			rep.Links++
		}
	}
	return nil
}
