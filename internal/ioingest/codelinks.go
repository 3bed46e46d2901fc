package ioingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

const insertCodeLinkSQL = `
	INSERT OR IGNORE INTO code_links (
		paper_url, paper_title, paper_arxiv_id, paper_url_abs,
		paper_url_pdf, repo_url, is_official, mentioned_in_paper
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// ingestCodeLinks loads links-between-papers-and-code.json. Rows are
// keyed by (paper_url, repo_url); re-ingest writes nothing new.
func (p *ingestor) ingestCodeLinks(
	ctx context.Context,
	src sources.SourceFile,
) (*pwcdb.IngestReport, error) {
	start := time.Now()
	rep := &pwcdb.IngestReport{File: src.File}

	b, err := newBatcher(ctx, p.operator.DB(), p.cfg.Database.BatchSize)
	if err != nil {
		return nil, UpsertError(src.File, err)
	}
	defer b.Abort()

	records, err := forEachRecord(ctx, src.Path, "Code links",
		func(rec *CodeLinkRecord) error {
			if strings.TrimSpace(rec.PaperURL) == "" ||
				strings.TrimSpace(rec.RepoURL) == "" {
				rep.Skipped++
				return nil
			}

			inserted, err := insertIgnore(ctx, b.Tx(),
				insertCodeLinkSQL,
				rec.PaperURL, rec.PaperTitle, rec.PaperArxivID,
				rec.PaperURLAbs, rec.PaperURLPDF, rec.RepoURL,
				rec.IsOfficial, rec.MentionedInPaper)
			if err != nil {
				return UpsertError(src.File, err)
			}
			if inserted {
				rep.Links++
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
	slog.Info("Code links ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Links)),
		"skipped", rep.Skipped,
	)
	return rep, nil
}
