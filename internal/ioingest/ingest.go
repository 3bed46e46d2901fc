// Package ioingest implements the Ingestor interface: it streams JSON
// snapshot files into SQLite with natural-key upserts. This is an
// impure I/O package.
package ioingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

// ingestor implements pwcdb.Ingestor for one connected target.
type ingestor struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates an Ingestor over an already connected operator.
func New(cfg *config.Config, op db.Operator) pwcdb.Ingestor {
	return &ingestor{cfg: cfg, operator: op}
}

// Ingest loads one snapshot file into the connected database. Records
// without their natural key are skipped and counted, never fatal.
func (p *ingestor) Ingest(
	ctx context.Context,
	src sources.SourceFile,
) (*pwcdb.IngestReport, error) {
	if p.operator.DB() == nil {
		return nil, NotConnectedError()
	}

	slog.Info("Ingesting snapshot", "kind", src.Kind, "file", src.File)

	switch src.Kind {
	case sources.KindPapers:
		return p.ingestPapers(ctx, src)
	case sources.KindMethods:
		return p.ingestMethods(ctx, src)
	case sources.KindDatasets:
		return p.ingestDatasets(ctx, src)
	case sources.KindEvaluations:
		return p.ingestEvaluations(ctx, src)
	case sources.KindCodeLinks:
		return p.ingestCodeLinks(ctx, src)
	case sources.KindEvalTables:
		return p.ingestEvalTables(ctx, src)
	}
	return nil, UnknownKindError(src.Kind)
}

// forEachRecord streams a JSON array file record by record, so even
// the 600 MB papers snapshot never sits in memory whole. The progress
// bar tracks consumed bytes.
func forEachRecord[T any](
	ctx context.Context,
	path, prefix string,
	fn func(rec *T) error,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, OpenFileError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, OpenFileError(path, err)
	}

	bar := pb.Full.Start64(info.Size())
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix+": ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	dec := json.NewDecoder(bar.NewProxyReader(f))

	tok, err := dec.Token()
	if err != nil {
		return 0, DecodeError(path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return 0, DecodeError(path,
			fmt.Errorf("expected JSON array, got %v", tok))
	}

	var n int
	for dec.More() {
		var rec T
		if err := dec.Decode(&rec); err != nil {
			return n, DecodeError(path, err)
		}
		if err := fn(&rec); err != nil {
			return n, err
		}
		n++
	}

	if _, err := dec.Token(); err != nil {
		return n, DecodeError(path, err)
	}
	return n, nil
}
