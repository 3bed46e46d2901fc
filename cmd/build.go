package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/pwcdb/pwcdb/internal/iobuild"
	"github.com/pwcdb/pwcdb/internal/iosources"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	var targets []string
	var withClean bool
	var dataDir string

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build database targets from snapshot files",
		Long: `Build runs the full pipeline for each requested target: schema
creation, snapshot ingestion, paper-method relinking, spam
classification, index creation and statistics.

Targets are built independently; a failure in one target does not stop
the others. Default is all targets from sources.yaml.

Ingestion is idempotent: re-running build on an existing database adds
missing records and leaves existing ones untouched.

Examples:
  pwcdb build
  pwcdb build --targets main
  pwcdb build --with-clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []config.Option{
				config.OptBuildTargets(targets),
				config.OptBuildWithClean(withClean),
			}
			if dataDir != "" {
				opts = append(opts, config.OptIngestDataDir(dataDir))
			}
			cfg.Update(opts)
			return runBuild(cmd.Context())
		},
	}

	buildCmd.Flags().StringSliceVarP(&targets, "targets", "t", nil,
		"targets to build (default: all from sources.yaml)")
	buildCmd.Flags().BoolVar(&withClean, "with-clean", false,
		"remove spam entries during build instead of dry-run reporting")
	buildCmd.Flags().StringVar(&dataDir, "data-dir", "",
		"directory holding the snapshot files")

	return buildCmd
}

func runBuild(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b := iobuild.New(cfg, iosources.New(cfg))
	rep, err := b.Build(ctx)
	if rep != nil {
		for _, tr := range rep.Targets {
			if tr.Succeeded() {
				gn.Info("Target <em>%s</em>: done", tr.Target)
				continue
			}
			gn.Warn("Target %s: failed at stage %s",
				tr.Target, tr.FailedStage)
		}
		gn.Info("Build %s finished in %s", rep.RunID,
			gnfmt.TimeString(rep.Duration.Seconds()))
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
