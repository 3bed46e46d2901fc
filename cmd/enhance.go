package cmd

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/pwcdb/pwcdb/internal/ioenhance"
	"github.com/spf13/cobra"
)

// getEnhanceCmd returns the enhance command.
func getEnhanceCmd() *cobra.Command {
	var methodsFile string

	enhanceCmd := &cobra.Command{
		Use:   "enhance",
		Short: "Enrich existing methods from the methods snapshot",
		Long: `Enhance updates methods of an existing main database with fields
from the methods snapshot: introduction year, source paper links, code
snippet URL and the area/category taxonomy.

Methods are matched by their canonical URL. Snapshot entries absent
from the database are skipped; enhance never creates new methods.

Examples:
  pwcdb enhance
  pwcdb enhance --methods /data/methods.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnhance(cmd.Context(), methodsFile)
		},
	}

	enhanceCmd.Flags().StringVarP(&methodsFile, "methods", "m", "",
		"methods snapshot file (default: methods.json in the data dir)")

	return enhanceCmd
}

func runEnhance(ctx context.Context, methodsFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if methodsFile == "" {
		methodsFile = filepath.Join(cfg.Ingest.DataDir, "methods.json")
	}

	op, err := connectTarget(ctx, "main")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rep, err := ioenhance.New(cfg, op).Enhance(ctx, methodsFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Enhancement complete
Methods updated: %s
Areas: %d, categories: %d, category links: %s
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(rep.MethodsUpdated)),
		rep.Areas,
		rep.Categories,
		humanize.Comma(int64(rep.CategoryLinks)),
		gnfmt.TimeString(rep.Duration.Seconds()),
	)
	return nil
}
