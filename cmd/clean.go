package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/pwcdb/pwcdb/internal/ioclean"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/spf13/cobra"
)

// getCleanCmd returns the clean command.
func getCleanCmd() *cobra.Command {
	var apply bool
	var categories []string

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Classify and remove spam methods and datasets",
		Long: `Clean classifies methods and datasets of the main database with
the spam rule table and removes the matches.

Default is a dry run: entries are classified, counted and listed, but
nothing is deleted. Pass --apply to delete the flagged entries together
with their junction rows.

Examples:
  pwcdb clean
  pwcdb clean --apply
  pwcdb clean --categories phone_numbers,question_spam`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update([]config.Option{
				config.OptCleanApply(apply),
				config.OptCleanCategories(categories),
			})
			return runClean(cmd.Context())
		},
	}

	cleanCmd.Flags().BoolVarP(&apply, "apply", "a", false,
		"delete flagged entries (default is a dry run)")
	cleanCmd.Flags().StringSliceVarP(&categories, "categories", "c", nil,
		"restrict classification to the named rule categories")

	return cleanCmd
}

func runClean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := connectTarget(ctx, "main")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rep, err := ioclean.New(cfg, op).Clean(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	for _, f := range rep.Flagged {
		fmt.Printf("%s %d: %q matched %s\n",
			f.Table, f.ID, f.Name, f.Category)
	}

	if rep.DryRun {
		gn.Info(`Dry run: checked %d entries, flagged %d
Run with <em>--apply</em> to delete them.`,
			rep.Checked, len(rep.Flagged))
		return nil
	}

	gn.Info("Removed %d entries and %d junction rows (checked %d)",
		rep.Removed, rep.JunctionRows, rep.Checked)
	return nil
}
