package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/pwcdb/pwcdb/internal/iostats"
	"github.com/spf13/cobra"
)

// getStatsCmd returns the stats command.
func getStatsCmd() *cobra.Command {
	var target string
	var top int

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Report row counts and top methods for a target",
		Long: `Stats prints per-table row counts of a built database and, for the
main target, the methods with the most linked papers.

Examples:
  pwcdb stats
  pwcdb stats --target eval
  pwcdb stats --top 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), target, top)
		},
	}

	statsCmd.Flags().StringVarP(&target, "target", "t", "main",
		"database target ('main' or 'eval')")
	statsCmd.Flags().IntVarP(&top, "top", "n", 10,
		"number of leaderboard methods to show")

	return statsCmd
}

func runStats(ctx context.Context, target string, top int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := connectTarget(ctx, target)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rep, err := iostats.New(op, target).Stats(ctx, top)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Tables of <em>%s</em>:", op.Path())
	for _, c := range rep.Counts {
		fmt.Printf("  %-24s %12s\n", c.Table, humanize.Comma(c.Rows))
	}

	if len(rep.TopMethods) > 0 {
		gn.Info("Top methods by linked papers:")
		for i, m := range rep.TopMethods {
			name := m.Name
			if m.FullName != "" && m.FullName != m.Name {
				name = fmt.Sprintf("%s (%s)", m.Name, m.FullName)
			}
			year := ""
			if m.IntroducedYear > 0 {
				year = fmt.Sprintf(" [%d]", m.IntroducedYear)
			}
			fmt.Printf("  %2d. %s%s: %s papers\n", i+1, name, year,
				humanize.Comma(int64(m.NumPapers)))
		}
	}
	return nil
}
