// cmd/issuetracker/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github-issue-tracker/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(a.cfg.DBURL); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
			a.ui.Success("Database migrations applied")
			return nil
		},
	}
}
