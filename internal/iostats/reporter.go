// Package iostats derives row counts and method leaderboards from a
// built database. Everything it produces is computed on demand and
// never written back.
package iostats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
)

type reporter struct {
	operator db.Operator
	target   string
}

// New creates a Reporter for one build target.
func New(op db.Operator, target string) pwcdb.Reporter {
	return &reporter{operator: op, target: target}
}

// Stats counts rows per table and, for targets carrying a method
// catalog, ranks the topN methods by paper count.
func (r *reporter) Stats(
	ctx context.Context, topN int,
) (*pwcdb.StatsReport, error) {
	sqlDB := r.operator.DB()
	if sqlDB == nil {
		return nil, NotConnectedError()
	}

	tables, err := r.tableNames(ctx)
	if err != nil {
		return nil, err
	}

	rep := &pwcdb.StatsReport{}
	hasMethods := false
	for _, table := range tables {
		if table == "methods" {
			hasMethods = true
		}
		var n int64
		q := fmt.Sprintf("SELECT count(*) FROM %q", table)
		if err := sqlDB.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return nil, QueryError(table, err)
		}
		rep.Counts = append(rep.Counts,
			pwcdb.TableCount{Table: table, Rows: n})
		slog.Info("Counted table", "target", r.target,
			"table", table, "rows", humanize.Comma(n))
	}

	if hasMethods && topN > 0 {
		rep.TopMethods, err = r.topMethods(ctx, topN)
		if err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func (r *reporter) tableNames(ctx context.Context) ([]string, error) {
	rows, err := r.operator.DB().QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, QueryError("sqlite_master", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, QueryError("sqlite_master", err)
		}
		res = append(res, name)
	}
	return res, rows.Err()
}

func (r *reporter) topMethods(
	ctx context.Context, topN int,
) ([]pwcdb.RankedMethod, error) {
	rows, err := r.operator.DB().QueryContext(ctx, `
		SELECT name, COALESCE(full_name, ''), num_papers,
			COALESCE(introduced_year, 0)
		FROM methods
		ORDER BY num_papers DESC, name
		LIMIT ?`, topN)
	if err != nil {
		return nil, QueryError("methods", err)
	}
	defer rows.Close()

	var res []pwcdb.RankedMethod
	for rows.Next() {
		var m pwcdb.RankedMethod
		err = rows.Scan(&m.Name, &m.FullName, &m.NumPapers,
			&m.IntroducedYear)
		if err != nil {
			return nil, QueryError("methods", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
