package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/date-invite/internal/config"
	"github.com/evcraddock/date-invite/internal/db"
	"github.com/evcraddock/date-invite/internal/logging"
	"github.com/evcraddock/date-invite/internal/submission"
	"github.com/evcraddock/date-invite/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
		store   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API that stores date submissions. Settings come from the environment and an optional .env file; flags override them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if store != "" {
				cfg.StoreDriver = store
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 5000, "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load")
	cmd.Flags().StringVar(&store, "store", "", "storage backend: file, sqlite or memory (overrides DI_STORE)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.Setup(os.Stdout, cfg.DevMode)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(store, web.Options{AllowedOrigins: cfg.AllowedOrigins})
	addr := fmt.Sprintf(":%d", cfg.Port)

	if subs, err := store.ListAll(ctx); err == nil {
		slog.InfoContext(ctx, "store ready", "driver", cfg.StoreDriver, "dates", len(subs))
	}

	return srv.ListenAndServe(ctx, addr)
}

// openStore builds the configured submission store. The returned func
// releases whatever the store holds open.
func openStore(cfg config.Config) (submission.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		slog.Warn("using in-memory store; dates are lost on exit")
		return submission.NewMemoryStore(), func() {}, nil

	case config.DriverSQLite:
		path := cfg.DBPath
		if path == "" {
			var err error
			path, err = db.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using sqlite store", "path", path)
		return submission.NewSQLStore(database), func() { closeDB(database) }, nil

	default:
		store, err := submission.OpenFile(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using file store", "path", store.Path())
		return store, func() {}, nil
	}
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
