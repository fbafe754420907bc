// cmd/issuetracker/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github-issue-tracker/internal/api"
	"github-issue-tracker/internal/database"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations, then run the HTTP API and the periodic sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	if err := database.Migrate(a.cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	a.logger.Info("Database migrations applied successfully")

	dbpool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	store := database.NewStore(dbpool)
	appSyncer, err := a.newSyncer(store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: a.cfg.HTTPAddr,
		Handler: api.NewRouter(store, appSyncer, api.Options{
			ServiceOptions: a.cfg.ServiceOptions,
			RequestTimeout: a.cfg.RequestTimeout,
			SyncTimeout:    a.cfg.SyncTimeout,
		}, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		appSyncer.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown signal received, draining HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Shutdown complete")
	return nil
}
