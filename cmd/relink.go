package cmd

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/pwcdb/pwcdb/internal/iorelink"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/spf13/cobra"
)

// getRelinkCmd returns the relink command.
func getRelinkCmd() *cobra.Command {
	var papersFile string

	relinkCmd := &cobra.Command{
		Use:   "relink",
		Short: "Rebuild paper-method relationships",
		Long: `Relink rebuilds the paper_methods junction table of the main
database from the papers snapshot.

Method mentions are matched against the method catalog by normalized
name or full name; unmatched mentions are dropped and counted, never
used to create methods. The junction table is cleared and rewritten in
a single transaction, then num_papers is recomputed for every method.

Examples:
  pwcdb relink
  pwcdb relink --papers /data/papers-with-abstracts.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update([]config.Option{
				config.OptRelinkPapersFile(papersFile),
			})
			return runRelink(cmd.Context())
		},
	}

	relinkCmd.Flags().StringVarP(&papersFile, "papers", "p", "",
		"papers snapshot file (default: papers-with-abstracts.json in "+
			"the data dir)")

	return relinkCmd
}

func runRelink(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	papersPath := cfg.Relink.PapersFile
	if papersPath == "" {
		papersPath = filepath.Join(cfg.Ingest.DataDir,
			"papers-with-abstracts.json")
	}

	op, err := connectTarget(ctx, "main")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rep, err := iorelink.New(cfg, op).Relink(ctx, papersPath)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Relink complete
Papers scanned: %s, mentions %s, unresolved %s
Unique pairs: %s, methods relinked: %s
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(rep.PapersScanned)),
		humanize.Comma(int64(rep.MentionsSeen)),
		humanize.Comma(int64(rep.Unresolved)),
		humanize.Comma(int64(rep.UniquePairs)),
		humanize.Comma(int64(rep.MethodsRelinked)),
		gnfmt.TimeString(rep.Duration.Seconds()),
	)
	return nil
}
