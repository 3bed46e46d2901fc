// Package iorelink rebuilds the paper_methods junction by resolving
// the method mentions embedded in the papers snapshot against the
// method catalog. Mentions carry no stable URL, so resolution runs on
// normalized names. This is an impure I/O package.
package iorelink

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/internal/ioingest"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"golang.org/x/sync/errgroup"
)

// pair is one resolved paper-method relationship.
type pair struct {
	paperID  int64
	methodID int64
}

// mention is the unit of work handed to resolver workers.
type mention struct {
	paperID  int64
	name     string
	fullName string
}

type relinker struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Relinker over a connected main-target operator.
func New(cfg *config.Config, op db.Operator) pwcdb.Relinker {
	return &relinker{cfg: cfg, operator: op}
}

// Relink scans the papers snapshot, resolves every method mention by
// normalized name or full name, then replaces the paper_methods table
// with the deduplicated pair set and recomputes num_papers.
func (r *relinker) Relink(
	ctx context.Context,
	papersPath string,
) (*pwcdb.RelinkReport, error) {
	if r.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	start := time.Now()

	methods, err := r.loadMethodIndex(ctx)
	if err != nil {
		return nil, err
	}
	papers, err := r.loadPaperIndex(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Built resolution indexes",
		"method_names", len(methods), "papers", len(papers))

	rep := &pwcdb.RelinkReport{}
	pairs, err := r.resolveMentions(ctx, papersPath, methods, papers, rep)
	if err != nil {
		return nil, err
	}
	rep.UniquePairs = len(pairs)

	relinked, err := r.rebuildLinks(ctx, pairs)
	if err != nil {
		return nil, err
	}
	rep.MethodsRelinked = relinked

	if err := r.recountPapers(ctx); err != nil {
		return nil, err
	}

	rep.Duration = time.Since(start)
	slog.Info("Relink finished",
		"papers", humanize.Comma(int64(rep.PapersScanned)),
		"mentions", humanize.Comma(int64(rep.MentionsSeen)),
		"unresolved", humanize.Comma(int64(rep.Unresolved)),
		"pairs", humanize.Comma(int64(rep.UniquePairs)),
		"methods", humanize.Comma(int64(rep.MethodsRelinked)),
	)
	return rep, nil
}

// resolveMentions streams the snapshot and fans mentions out to
// resolver workers. Workers only touch in-memory indexes; a single
// collector owns the result set.
func (r *relinker) resolveMentions(
	ctx context.Context,
	papersPath string,
	methods map[string]int64,
	papers map[string]int64,
	rep *pwcdb.RelinkReport,
) (map[pair]struct{}, error) {
	g, gCtx := errgroup.WithContext(ctx)

	chIn := make(chan mention, 1000)
	chOut := make(chan pair, 1000)

	var scanned, seen int

	g.Go(func() error {
		defer close(chIn)
		n, err := forEachPaper(gCtx, papersPath, func(rec *ioingest.PaperRecord) error {
			paperID, ok := papers[rec.PaperURL]
			if !ok {
				return nil
			}
			for _, m := range rec.Methods {
				seen++
				select {
				case chIn <- mention{
					paperID:  paperID,
					name:     m.Name,
					fullName: m.FullName,
				}:
				case <-gCtx.Done():
					return gCtx.Err()
				}
			}
			return nil
		})
		scanned = n
		return err
	})

	var unresolved int64
	var wg sync.WaitGroup
	var mu sync.Mutex
	for range r.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			var misses int64
			for m := range chIn {
				id, ok := resolve(methods, m.name, m.fullName)
				if !ok {
					misses++
					continue
				}
				select {
				case chOut <- pair{paperID: m.paperID, methodID: id}:
				case <-gCtx.Done():
					for range chIn {
					}
					return gCtx.Err()
				}
			}
			mu.Lock()
			unresolved += misses
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(chOut)
		return nil
	})

	pairs := make(map[pair]struct{})
	g.Go(func() error {
		for p := range chOut {
			pairs[p] = struct{}{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ScanError(papersPath, ctx.Err())
		}
		return nil, err
	}

	rep.PapersScanned = scanned
	rep.MentionsSeen = seen
	rep.Unresolved = int(unresolved)
	return pairs, nil
}

// resolve looks a mention up by name first, full name second.
func resolve(
	methods map[string]int64, name, fullName string,
) (int64, bool) {
	if key := normalizeName(name); key != "" {
		if id, ok := methods[key]; ok {
			return id, true
		}
	}
	if key := normalizeName(fullName); key != "" {
		if id, ok := methods[key]; ok {
			return id, true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// forEachPaper streams the papers snapshot with a byte progress bar.
func forEachPaper(
	ctx context.Context,
	path string,
	fn func(rec *ioingest.PaperRecord) error,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, ScanError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, ScanError(path, err)
	}

	bar := pb.Full.Start64(info.Size())
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", "Relinking: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	dec := json.NewDecoder(bar.NewProxyReader(f))
	if _, err := dec.Token(); err != nil {
		return 0, ScanError(path, err)
	}

	var n int
	for dec.More() {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		default:
		}
		var rec ioingest.PaperRecord
		if err := dec.Decode(&rec); err != nil {
			return n, ScanError(path, err)
		}
		if err := fn(&rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
