package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/pwcdb/pwcdb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var target string
	var drop bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema for a target",
		Long: `Create the schema of one database target.

Schema creation is additive and idempotent: existing tables gain
missing columns, existing data stays in place. Use --drop to remove
all tables first and rebuild the target from scratch.

Examples:
  pwcdb create
  pwcdb create --target eval
  pwcdb create --drop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), target, drop)
		},
	}

	createCmd.Flags().StringVarP(&target, "target", "t", "main",
		"database target ('main' or 'eval')")
	createCmd.Flags().BoolVarP(&drop, "drop", "d", false,
		"drop existing tables before creating the schema")

	return createCmd
}

func runCreate(ctx context.Context, target string, drop bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := connectTarget(ctx, target)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	mgr := ioschema.NewManager(op, target)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if drop && hasTables {
		gn.Warn("Dropping ALL tables of %s.", op.Path())
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			gn.Info("Schema creation cancelled")
			return nil
		}

		if err = mgr.Drop(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("All tables dropped")
	}

	if err = mgr.Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Created schema for <em>%s</em> at <em>%s</em>",
		target, op.Path())
	return nil
}
