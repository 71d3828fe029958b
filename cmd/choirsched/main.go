package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sandeepkv93/choirsched/internal/config"
	"github.com/sandeepkv93/choirsched/internal/logging"
	"github.com/sandeepkv93/choirsched/internal/storage"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "choirsched failed: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "choirsched",
		Usage: "Choir rehearsal and worship schedule in the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to choirsched.yaml", EnvVars: []string{config.PathEnv}},
		},
		Commands: []*cli.Command{
			runCommand(),
			listCommand(),
			exportCommand(),
			seedCommand(),
		},
		DefaultCommand: "run",
	}
}

// env is what every subcommand needs: config, a file logger and the chosen
// storage backend.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	adapter storage.Adapter
	closers []io.Closer
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger, logCloser := logging.New(cfg.Log)
	e := &env{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	adapter, err := openAdapter(c.Context, cfg, logger)
	if err != nil {
		e.close()
		return nil, err
	}
	e.adapter = adapter
	e.closers = append([]io.Closer{adapter}, e.closers...)
	logger.Info("storage ready", "backend", cfg.Backend)
	return e, nil
}

func (e *env) close() {
	for _, c := range e.closers {
		if err := c.Close(); err != nil && e.logger != nil {
			e.logger.Warn("close failed", "err", err)
		}
	}
}

// openAdapter selects the backend once at startup.
func openAdapter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Adapter, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		store, err := storage.OpenFirestore(ctx, storage.FirestoreOptions{
			ProjectID:       cfg.Firestore.ProjectID,
			Collection:      cfg.Firestore.Collection,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open firestore: %w", err)
		}
		return store, nil
	default:
		store, err := storage.OpenLocal(ctx, cfg.Local.Path, storage.LocalOptions{
			Key:    cfg.Local.Key,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		return store, nil
	}
}
