// Package ioclean scans catalog tables for spam entries using the
// classification rules in pkg/spam, and removes flagged rows together
// with their junction links when apply is requested. This is an
// impure I/O package.
package ioclean

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/spam"
	"golang.org/x/sync/errgroup"
)

// candidate is one row read from a catalog table, ready for
// classification.
type candidate struct {
	table string
	id    int64
	rec   spam.Record
}

type cleaner struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Cleaner over a connected main-target operator.
func New(cfg *config.Config, op db.Operator) pwcdb.Cleaner {
	return &cleaner{cfg: cfg, operator: op}
}

// Clean classifies datasets and methods against the spam rules. In
// dry-run mode (the default) no row is touched; with apply the
// flagged entities and their junction rows are deleted in one
// transaction per table.
func (c *cleaner) Clean(ctx context.Context) (*pwcdb.CleanReport, error) {
	if c.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	start := time.Now()

	classifier := spam.Default(c.cfg.Clean.Categories)
	rep := &pwcdb.CleanReport{
		DryRun:     !c.cfg.Clean.Apply,
		ByCategory: make(map[string]int),
	}

	candidates, err := c.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}
	rep.Checked = len(candidates)

	flagged, err := c.classify(ctx, classifier, candidates)
	if err != nil {
		return nil, err
	}
	rep.Flagged = flagged
	for _, f := range flagged {
		rep.ByCategory[f.Category]++
	}

	if rep.DryRun {
		rep.Duration = time.Since(start)
		slog.Info("Spam scan finished (dry run)",
			"checked", humanize.Comma(int64(rep.Checked)),
			"flagged", len(flagged))
		return rep, nil
	}

	removed, junctions, err := c.remove(ctx, flagged)
	if err != nil {
		return nil, err
	}
	rep.Removed = removed
	rep.JunctionRows = junctions

	rep.Duration = time.Since(start)
	slog.Info("Spam cleanup finished",
		"checked", humanize.Comma(int64(rep.Checked)),
		"removed", removed,
		"junction_rows", junctions)
	return rep, nil
}

// loadCandidates reads the classifiable columns of datasets and
// methods. Datasets carry a homepage, so the structural rule applies
// to them only.
func (c *cleaner) loadCandidates(
	ctx context.Context,
) ([]candidate, error) {
	var candidates []candidate

	rows, err := c.operator.DB().QueryContext(ctx, `
		SELECT id, name, full_name, description, homepage
		FROM datasets`)
	if err != nil {
		return nil, ScanError("datasets", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name, fullName, description, homepage sql.NullString
		if err := rows.Scan(
			&id, &name, &fullName, &description, &homepage); err != nil {
			return nil, ScanError("datasets", err)
		}
		candidates = append(candidates, candidate{
			table: "datasets",
			id:    id,
			rec: spam.Record{
				Name:        name.String,
				FullName:    fullName.String,
				Description: description.String,
				Homepage:    homepage.String,
				HasHomepage: true,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError("datasets", err)
	}

	mrows, err := c.operator.DB().QueryContext(ctx, `
		SELECT id, name, full_name, description FROM methods`)
	if err != nil {
		return nil, ScanError("methods", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var id int64
		var name, fullName, description sql.NullString
		if err := mrows.Scan(
			&id, &name, &fullName, &description); err != nil {
			return nil, ScanError("methods", err)
		}
		candidates = append(candidates, candidate{
			table: "methods",
			id:    id,
			rec: spam.Record{
				Name:        name.String,
				FullName:    fullName.String,
				Description: description.String,
			},
		})
	}
	if err := mrows.Err(); err != nil {
		return nil, ScanError("methods", err)
	}

	return candidates, nil
}

// classify fans the candidates out to workers. Rule matching is pure
// regex work, so the pool scales with CPUs.
func (c *cleaner) classify(
	ctx context.Context,
	classifier *spam.Classifier,
	candidates []candidate,
) ([]pwcdb.FlaggedEntity, error) {
	g, gCtx := errgroup.WithContext(ctx)

	chIn := make(chan candidate, 1000)
	chOut := make(chan pwcdb.FlaggedEntity, 1000)

	g.Go(func() error {
		defer close(chIn)
		for _, cand := range candidates {
			select {
			case chIn <- cand:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range c.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for cand := range chIn {
				res := classifier.Classify(cand.rec)
				if !res.IsSpam {
					continue
				}
				select {
				case chOut <- pwcdb.FlaggedEntity{
					Table:    cand.table,
					ID:       cand.id,
					Name:     cand.rec.Name,
					Category: res.Category,
					Pattern:  res.Pattern,
				}:
				case <-gCtx.Done():
					for range chIn {
					}
					return gCtx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(chOut)
		return nil
	})

	var flagged []pwcdb.FlaggedEntity
	g.Go(func() error {
		for f := range chOut {
			flagged = append(flagged, f)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flagged, nil
}
