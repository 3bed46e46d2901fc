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

// ingestEvaluations loads evaluation-tables.json into the main target
// as flat task summaries. The leaderboard detail belongs to the eval
// target.
func (p *ingestor) ingestEvaluations(
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

	records, err := forEachRecord(ctx, src.Path, "Evaluations",
		func(rec *EvaluationRecord) error {
			if strings.TrimSpace(rec.Task) == "" {
				rep.Skipped++
				return nil
			}

			inserted, err := insertIgnore(ctx, b.Tx(),
				`INSERT OR IGNORE INTO evaluations (task, description)
					VALUES (?, ?)`,
				rec.Task, rec.Description)
			if err != nil {
				return UpsertError(src.File, err)
			}
			if inserted {
				rep.Entities++
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
	slog.Info("Evaluations ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Entities)),
		"skipped", rep.Skipped,
	)
	return rep, nil
}
