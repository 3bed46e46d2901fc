package ioingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

// ingestEvalTables loads evaluation-tables.json into the eval target,
// walking the full tree: tasks, subtasks, benchmark datasets,
// leaderboard rows, metrics and links. One top-level record is one
// checkpoint unit; a task's subtree always lands in a single batch
// span.
func (p *ingestor) ingestEvalTables(
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

	records, err := forEachRecord(ctx, src.Path, "Eval tables",
		func(rec *EvaluationRecord) error {
			if strings.TrimSpace(rec.Task) == "" {
				rep.Skipped++
				return nil
			}
			if err := p.upsertEvalTask(ctx, b.Tx(), rep, rec); err != nil {
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
	slog.Info("Evaluation tables ingested",
		"records", humanize.Comma(int64(records)),
		"new", humanize.Comma(int64(rep.Entities)),
		"rows", humanize.Comma(int64(rep.Links)),
		"skipped", rep.Skipped,
	)
	return rep, nil
}

func (p *ingestor) upsertEvalTask(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	rec *EvaluationRecord,
) error {
	taskID, inserted, err := upsertID(ctx, tx,
		`INSERT OR IGNORE INTO tasks
			(name, description, categories, source_link)
			VALUES (?, ?, ?, ?)`,
		[]any{rec.Task, rec.Description, jsonList(rec.Categories),
			rec.SourceLink},
		"SELECT id FROM tasks WHERE name = ?",
		[]any{rec.Task},
	)
	if err != nil {
		return UpsertError("tasks", err)
	}
	if inserted {
		rep.Entities++
	}

	for _, st := range rec.Subtasks {
		if strings.TrimSpace(st.Name) == "" {
			continue
		}
		ok, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO subtasks (task_id, name, description)
				VALUES (?, ?, ?)`,
			taskID, st.Name, st.Description)
		if err != nil {
			return UpsertError("subtasks", err)
		}
		if ok {
			rep.Entities++
		}
	}

	for _, ds := range rec.Datasets {
		if err := p.upsertBenchmark(ctx, tx, rep, taskID, &ds); err != nil {
			return err
		}
	}
	return nil
}

func (p *ingestor) upsertBenchmark(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	taskID int64,
	ds *BenchmarkRecord,
) error {
	if strings.TrimSpace(ds.Dataset) == "" {
		return nil
	}

	datasetID, inserted, err := upsertID(ctx, tx,
		`INSERT OR IGNORE INTO datasets
			(task_id, name, description, dataset_links, subdatasets,
			dataset_citations)
			VALUES (?, ?, ?, ?, ?, ?)`,
		[]any{taskID, ds.Dataset, ds.Description,
			jsonList(ds.DatasetLinks), jsonList(ds.Subdatasets),
			jsonList(ds.DatasetCitations)},
		"SELECT id FROM datasets WHERE task_id = ? AND name = ?",
		[]any{taskID, ds.Dataset},
	)
	if err != nil {
		return UpsertError("datasets", err)
	}
	if inserted {
		rep.Entities++
	}

	for _, row := range ds.Sota.Rows {
		if err := p.upsertResultRow(ctx, tx, rep,
			taskID, datasetID, &row); err != nil {
			return err
		}
	}
	return nil
}

func (p *ingestor) upsertResultRow(
	ctx context.Context,
	tx *sql.Tx,
	rep *pwcdb.IngestReport,
	taskID, datasetID int64,
	row *SotaRow,
) error {
	rowID, inserted, err := upsertID(ctx, tx,
		`INSERT OR IGNORE INTO result_rows
			(task_id, dataset_id, model_name, paper_url, paper_title,
			paper_date, uses_additional_data)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{taskID, datasetID, row.ModelName, row.PaperURL,
			row.PaperTitle, row.PaperDate, row.UsesAdditionalData},
		`SELECT id FROM result_rows
			WHERE task_id = ? AND dataset_id = ? AND model_name = ?`,
		[]any{taskID, datasetID, row.ModelName},
	)
	if err != nil {
		return UpsertError("result_rows", err)
	}
	if inserted {
		rep.Links++
	}

	for name, value := range row.Metrics {
		ok, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO metrics (row_id, name, value)
				VALUES (?, ?, ?)`,
			rowID, name, metricString(value))
		if err != nil {
			return UpsertError("metrics", err)
		}
		if ok {
			rep.Links++
		}
	}

	for _, l := range row.CodeLinks {
		if l.URL == "" {
			continue
		}
		ok, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO code_links (row_id, url, title)
				VALUES (?, ?, ?)`,
			rowID, l.URL, l.Title)
		if err != nil {
			return UpsertError("code_links", err)
		}
		if ok {
			rep.Links++
		}
	}

	for _, l := range row.ModelLinks {
		if l.URL == "" {
			continue
		}
		ok, err := insertIgnore(ctx, tx,
			`INSERT OR IGNORE INTO model_links (row_id, url, title)
				VALUES (?, ?, ?)`,
			rowID, l.URL, l.Title)
		if err != nil {
			return UpsertError("model_links", err)
		}
		if ok {
			rep.Links++
		}
	}
	return nil
}

// jsonList serializes a snapshot list for a TEXT column. nil encodes
// as an empty array, not null.
func jsonList[T any](v []T) string {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// metricString renders a metric value the way it appeared in JSON.
// Values mix numbers, percent strings and footnotes.
func metricString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
