// cmd/issuetracker/sync.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github-issue-tracker/internal/database"
	"github-issue-tracker/internal/syncer"
)

func newSyncCmd(a *app) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync against GitHub and exit",
		Long: `Without flags, every repository in REPOS_TO_SYNC is mirrored.
With --user, only the open issues assigned to that GitHub user are mirrored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sync(cmd.Context(), user)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Sync the open issues assigned to this GitHub user")
	return cmd
}

func (a *app) sync(ctx context.Context, user string) error {
	dbpool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	s, err := a.newSyncer(database.NewStore(dbpool))
	if err != nil {
		return err
	}

	var result syncer.Result
	if user != "" {
		result, err = s.SyncUser(ctx, user)
	} else {
		result, err = s.SyncAll(ctx)
	}
	if err != nil {
		return err
	}

	a.ui.Success("Created %d, updated %d", result.Created, result.Updated)
	for _, e := range result.Errors {
		a.ui.Warning("%s", e)
	}
	return nil
}
