// Package iobuild orchestrates full database builds. One run walks
// every requested target through schema creation, snapshot ingestion,
// relationship rebuild, classification, index creation and stats,
// recording per-stage timing and failures. Targets are independent:
// a failed target never stops the others.
package iobuild

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/pwcdb/pwcdb/internal/ioclean"
	"github.com/pwcdb/pwcdb/internal/iodb"
	"github.com/pwcdb/pwcdb/internal/ioindex"
	"github.com/pwcdb/pwcdb/internal/ioingest"
	"github.com/pwcdb/pwcdb/internal/iorelink"
	"github.com/pwcdb/pwcdb/internal/ioschema"
	"github.com/pwcdb/pwcdb/internal/iostats"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

// statsTopN is the leaderboard size reported at the end of a build.
const statsTopN = 10

type builder struct {
	cfg  *config.Config
	srcs sources.Sources
}

// New creates a Builder. Targets come from cfg.Build.Targets, resolved
// against the sources registry.
func New(cfg *config.Config, srcs sources.Sources) pwcdb.Builder {
	return &builder{cfg: cfg, srcs: srcs}
}

// Build runs the full pipeline for every requested target.
func (b *builder) Build(ctx context.Context) (*pwcdb.BuildReport, error) {
	start := time.Now()
	rep := &pwcdb.BuildReport{
		RunID:   uuid.New().String(),
		Started: start,
	}
	slog.Info("Starting build", "run_id", rep.RunID,
		"targets", b.cfg.Build.Targets)

	sc, err := b.srcs.Load()
	if err != nil {
		return nil, err
	}
	targets, err := b.srcs.Resolve(sc, b.cfg.Build.Targets)
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		tr := pwcdb.TargetReport{
			Target: t.Name,
			State:  pwcdb.StateNotStarted,
		}
		if err := b.buildTarget(ctx, t, &tr); err != nil {
			slog.Error("Target build failed", "target", t.Name,
				"stage", tr.FailedStage, "error", err)
		}
		rep.Targets = append(rep.Targets, tr)
		if ctx.Err() != nil {
			break
		}
	}

	rep.Duration = time.Since(start)
	succeeded := 0
	for i := range rep.Targets {
		if rep.Targets[i].Succeeded() {
			succeeded++
		}
	}
	slog.Info("Build complete", "run_id", rep.RunID,
		"succeeded", succeeded,
		"failed", len(rep.Targets)-succeeded,
		"duration", gnfmt.TimeString(rep.Duration.Seconds()))

	if succeeded == 0 {
		return rep, AllTargetsFailedError(len(rep.Targets))
	}
	if failed := len(rep.Targets) - succeeded; failed > 0 {
		return rep, TargetsFailedError(failed, len(rep.Targets))
	}
	return rep, nil
}

func (b *builder) buildTarget(
	ctx context.Context,
	t sources.TargetConfig,
	tr *pwcdb.TargetReport,
) error {
	op := iodb.NewSQLiteOperator()
	dbPath := filepath.Join(b.cfg.Database.Dir, t.DBFile)
	if err := op.Connect(ctx, dbPath); err != nil {
		tr.State = pwcdb.StateFailed
		tr.FailedStage = pwcdb.StageSchema
		return err
	}
	defer op.Close()

	err := b.stage(ctx, tr, pwcdb.StageSchema, "", func(ctx context.Context) error {
		return ioschema.NewManager(op, t.Name).Create(ctx)
	})
	if err != nil {
		return err
	}
	tr.State = pwcdb.StateSchemaReady

	tr.State = pwcdb.StateIngesting
	ing := ioingest.New(b.cfg, op)
	for _, f := range t.Files {
		file := f
		err = b.stage(ctx, tr, pwcdb.StageIngest, file.File,
			func(ctx context.Context) error {
				_, err := ing.Ingest(ctx, file)
				return err
			})
		if err != nil {
			return err
		}
	}

	if papersPath := papersFile(t); papersPath != "" {
		err = b.stage(ctx, tr, pwcdb.StageRelink, "",
			func(ctx context.Context) error {
				_, err := iorelink.New(b.cfg, op).Relink(ctx, papersPath)
				return err
			})
		if err != nil {
			return err
		}
		tr.State = pwcdb.StateRelinked
	}

	if clean, err := b.cleanable(ctx, op); err != nil {
		tr.State = pwcdb.StateFailed
		tr.FailedStage = pwcdb.StageClean
		return err
	} else if clean {
		err = b.stage(ctx, tr, pwcdb.StageClean,
			"", func(ctx context.Context) error {
				rep, err := ioclean.New(b.cleanConfig(), op).Clean(ctx)
				if err != nil {
					return err
				}
				slog.Info("Classification done", "target", t.Name,
					"checked", rep.Checked, "flagged", len(rep.Flagged),
					"removed", rep.Removed, "dry_run", rep.DryRun)
				return nil
			})
		if err != nil {
			return err
		}
		tr.State = pwcdb.StateCleaned
	}

	err = b.stage(ctx, tr, pwcdb.StageIndex, "",
		func(ctx context.Context) error {
			return ioindex.New(op, t.Name).Index(ctx)
		})
	if err != nil {
		return err
	}
	tr.State = pwcdb.StateIndexed

	err = b.stage(ctx, tr, pwcdb.StageStats, "",
		func(ctx context.Context) error {
			_, err := iostats.New(op, t.Name).Stats(ctx, statsTopN)
			return err
		})
	if err != nil {
		return err
	}
	tr.State = pwcdb.StateStatsReported

	tr.State = pwcdb.StateDone
	slog.Info("Target built", "target", t.Name, "file", dbPath)
	return nil
}

// stage runs one stage under the configured deadline and records its
// outcome. On failure the target is marked failed; committed work from
// earlier stages stays on disk.
func (b *builder) stage(
	ctx context.Context,
	tr *pwcdb.TargetReport,
	stage pwcdb.Stage,
	file string,
	fn func(ctx context.Context) error,
) error {
	timeout := time.Duration(b.cfg.Database.StageTimeoutMin) * time.Minute
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(stageCtx)
	res := pwcdb.StageResult{
		Stage:    stage,
		File:     file,
		Err:      err,
		Duration: time.Since(start),
	}
	tr.Stages = append(tr.Stages, res)

	if err != nil {
		tr.State = pwcdb.StateFailed
		tr.FailedStage = stage
		return StageError(tr.Target, stage, err)
	}
	slog.Info("Stage complete", "target", tr.Target, "stage", stage,
		"file", file, "duration", res.Duration.String())
	return nil
}

// cleanable reports whether the target carries a method catalog; the
// classification filter only applies to catalog stores.
func (b *builder) cleanable(
	ctx context.Context, op db.Operator,
) (bool, error) {
	return op.TableExists(ctx, "methods")
}

// cleanConfig derives the clean-stage config: build runs apply mode
// only when --with-clean was given, otherwise the stage is a dry run
// that reports what a clean would remove.
func (b *builder) cleanConfig() *config.Config {
	cfg := *b.cfg
	cfg.Clean.Apply = b.cfg.Build.WithClean
	return &cfg
}

// papersFile returns the resolved papers snapshot path of a target, or
// empty when the target ingests no papers and needs no relink pass.
func papersFile(t sources.TargetConfig) string {
	for _, f := range t.Files {
		if f.Kind == sources.KindPapers {
			return f.Path
		}
	}
	return ""
}
