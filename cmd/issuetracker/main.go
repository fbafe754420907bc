// cmd/issuetracker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github-issue-tracker/internal/config"
	"github-issue-tracker/internal/database"
	"github-issue-tracker/internal/github"
	"github-issue-tracker/internal/output"
	"github-issue-tracker/internal/syncer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(newApp())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app holds the dependencies shared by every subcommand.
type app struct {
	envFile  string
	cfg      *config.Config
	logger   *slog.Logger
	logLevel *slog.LevelVar
	ui       *output.UI
}

func newApp() *app {
	logLevel := new(slog.LevelVar)
	// Logs go to stderr so that command output on stdout stays readable.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	return &app{
		logger:   logger,
		logLevel: logLevel,
		ui:       output.New(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "issuetracker",
		Short: "Mirror GitHub issues and track their local workflow status",
		Long: `issuetracker keeps a local PostgreSQL copy of GitHub issues for a set of
repositories and layers a pending -> in_process -> end workflow on top of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to a .env file; real environment variables take precedence")

	root.AddCommand(
		newServeCmd(a),
		newSyncCmd(a),
		newListCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := config.LoadConfig(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, a.logLevel)
	a.cfg = cfg
	a.logger.Debug("Configuration loaded successfully")
	return nil
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, a.cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	a.logger.Info("Database connection established")
	return dbpool, nil
}

func (a *app) newSyncer(store database.TxRunner) (*syncer.Syncer, error) {
	ghClient := github.NewClient(a.cfg.GithubToken, a.logger)
	if a.cfg.GithubAPIURL != "" {
		if err := ghClient.SetBaseURL(a.cfg.GithubAPIURL); err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL: %w", err)
		}
	}

	s, err := syncer.NewSyncer(store, ghClient, a.logger, syncer.Options{
		Token:    a.cfg.GithubToken,
		Repos:    a.cfg.ReposToSync,
		Interval: a.cfg.SyncInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create syncer: %w", err)
	}
	return s, nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
