package main

import (
	"github.com/4oBuko/mission-archive/internal/repositories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the archive tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(load)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Migrate(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("schema applied", zap.Int("statements", len(repositories.SchemaStatements())))
			return nil
		},
	}
}
