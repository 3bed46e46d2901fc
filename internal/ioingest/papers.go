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

const insertPaperSQL = `
	INSERT OR IGNORE INTO papers (
		paper_url, arxiv_id, nips_id, openreview_id, title, abstract,
		short_abstract, url_abs, url_pdf, proceeding, date,
		conference_url_abs, conference_url_pdf, conference,
		reproduces_paper
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ingestPapers loads papers-with-abstracts.json: the paper entities
// plus their author, task and inline method relationships.
func (p *ingestor) ingestPapers(
	ctx context.Context,
	src sources.SourceFile,
) (*pwcdb.IngestReport, error) {
	start := time.Now()
	rep := &pwcdb.IngestReport{File: src.File}

	authors := newIDCache()
	tasks := newIDCache()
	methods := newIDCache()

	b, err := newBatcher(ctx, p.operator.DB(), p.cfg.Database.BatchSize)
	if err != nil {
		return nil, UpsertError(src.File, err)
	}
	defer b.Abort()

	records, err := forEachRecord(ctx, src.Path, "Papers",
		func(rec *PaperRecord) error {
			if strings.TrimSpace(rec.PaperURL) == "" {
				rep.Skipped++
				return nil
			}

			paperID, inserted, err := upsertID(ctx, b.Tx(),
				insertPaperSQL, []any{
					rec.PaperURL, rec.ArxivID, rec.NipsID,
					rec.OpenreviewID, rec.Title, rec.Abstract,
					rec.ShortAbstract, rec.URLAbs, rec.URLPDF,
					rec.Proceeding, rec.Date, rec.ConferenceURLAbs,
					rec.ConferenceURLPDF, rec.Conference,
					rec.ReproducesPaper,
				},
				"SELECT id FROM papers WHERE paper_url = ?",
				[]any{rec.PaperURL},
			)
			if err != nil {
				return UpsertError(src.File, err)
			}
			if inserted {
				rep.Entities++
			}

			if err := p.linkAuthors(ctx, b.Tx(), rep, authors,
				paperID, rec.Authors); err != nil {
				return err
			}
			if err := p.linkTasks(ctx, b.Tx(), rep, tasks,
				paperID, rec.Tasks); err != nil {
				return err
			}
			if err := p.linkInlineMethods(ctx, b.Tx(), rep, methods,
				paperID, rec.Methods); err != nil {
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
	slog.Info("Papers ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Entities)),
		"links", humanize.Comma(int64(rep.Links)),
		"skipped", rep.Skipped,
	)
	return rep, nil
}

// linkAuthors materializes the authors array into authors and
// paper_authors, keeping the array position as author_order.
func (p *ingestor) linkAuthors(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	cache *idCache,
	paperID int64,
	names []string,
) error {
	for order, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		authorID, ok := cache.get(name)
		if !ok {
			var inserted bool
			var err error
			authorID, inserted, err = upsertID(ctx, tx,
				"INSERT OR IGNORE INTO authors (name) VALUES (?)",
				[]any{name},
				"SELECT id FROM authors WHERE name = ?",
				[]any{name},
			)
			if err != nil {
				return LinkError("authors", err)
			}
			if inserted {
				rep.Entities++
			}
			cache.put(name, authorID)
		}

		linked, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO paper_authors
				(paper_id, author_id, author_order)
				VALUES (?, ?, ?)`,
			paperID, authorID, order)
		if err != nil {
			return LinkError("paper_authors", err)
		}
		if linked {
			rep.Links++
		}
	}
	return nil
}

// linkTasks materializes the tasks array into tasks and paper_tasks.
func (p *ingestor) linkTasks(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	cache *idCache,
	paperID int64,
	names []string,
) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		taskID, ok := cache.get(name)
		if !ok {
			var inserted bool
			var err error
			taskID, inserted, err = upsertID(ctx, tx,
				"INSERT OR IGNORE INTO tasks (name) VALUES (?)",
				[]any{name},
				"SELECT id FROM tasks WHERE name = ?",
				[]any{name},
			)
			if err != nil {
				return LinkError("tasks", err)
			}
			if inserted {
				rep.Entities++
			}
			cache.put(name, taskID)
		}

		linked, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO paper_tasks (paper_id, task_id)
				VALUES (?, ?)`,
			paperID, taskID)
		if err != nil {
			return LinkError("paper_tasks", err)
		}
		if linked {
			rep.Links++
		}
	}
	return nil
}

// linkInlineMethods upserts the method stubs embedded in a paper
// record and links them through paper_methods. A stub never
// overwrites a method already present from the methods snapshot.
func (p *ingestor) linkInlineMethods(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	cache *idCache,
	paperID int64,
	mentions []MethodRecord,
) error {
	for _, m := range mentions {
		if strings.TrimSpace(m.URL) == "" {
			continue
		}

		methodID, ok := cache.get(m.URL)
		if !ok {
			var inserted bool
			var err error
			methodID, inserted, err = p.upsertMethod(ctx, tx, &m)
			if err != nil {
				return LinkError("methods", err)
			}
			if inserted {
				rep.Entities++
			}
			cache.put(m.URL, methodID)
		}

		linked, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO paper_methods (paper_id, method_id)
				VALUES (?, ?)`,
			paperID, methodID)
		if err != nil {
			return LinkError("paper_methods", err)
		}
		if linked {
			rep.Links++
		}
	}
	return nil
}

// bump advances the batcher, translating cancellation into an ingest
// error code.
func (p *ingestor) bump(
	ctx context.Context, b *batcher, file string,
) error {
	if err := b.Bump(ctx); err != nil {
		if ctx.Err() != nil {
			return CancelledError(file, err)
		}
		return UpsertError(file, err)
	}
	return nil
}
