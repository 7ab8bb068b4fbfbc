package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rentai/config"
	"rentai/storage"
	"rentai/utils"
)

// app carries what every command needs once flags are parsed.
type app struct {
	verbose bool
	cfg     *config.Config
	logger  *utils.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rentai",
		Short:         "Rental marketing site and catalog tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = utils.NewLogger(a.verbose)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		ServeCmd(a),
		SeedCmd(a),
		ImportCmd(a),
		ExportCmd(a),
		InsightsCmd(a),
		SearchCmd(a),
		CrawlCmd(a),
		SnapshotCmd(a),
	)
	return root
}

// retryConfig is the back-off used for store connections.
func (a *app) retryConfig() *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: a.cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      a.logger,
	}
}

// openStore opens the catalog store selected by cfg.StoreDriver.
func (a *app) openStore() (storage.CatalogStore, error) {
	switch a.cfg.StoreDriver {
	case config.StorePostgres:
		a.logger.Info("Connecting to PostgreSQL at %s:%s/%s", a.cfg.PostgresHost, a.cfg.PostgresPort, a.cfg.PostgresDB)
		return storage.OpenPostgres(a.cfg.DSN(), a.retryConfig())
	case config.StoreSQLite:
		a.logger.Info("Opening SQLite catalog at %s", a.cfg.SQLitePath)
		return storage.NewSQLiteStore(a.cfg.SQLitePath)
	default:
		a.logger.Debug("Using the in-memory seed catalog")
		return storage.NewMemoryStore(), nil
	}
}
