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

const insertDatasetSQL = `
	INSERT OR IGNORE INTO datasets (
		url, name, full_name, homepage, description,
		short_description, parent_dataset, image
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// ingestDatasets loads datasets.json. Dataset records carry no
// relationships; parent_dataset stays a soft name reference.
func (p *ingestor) ingestDatasets(
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

	records, err := forEachRecord(ctx, src.Path, "Datasets",
		func(rec *DatasetRecord) error {
			if strings.TrimSpace(rec.URL) == "" {
				rep.Skipped++
				return nil
			}

			inserted, err := insertIgnore(ctx, b.Tx(),
				insertDatasetSQL,
				rec.URL, rec.Name, rec.FullName, rec.Homepage,
				rec.Description, rec.ShortDescription,
				rec.ParentDataset, rec.Image)
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
	slog.Info("Datasets ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Entities)),
		"skipped", rep.Skipped,
	)
	return rep, nil
}
