// main is the entry point of the student result manager.
//
// STARTUP SEQUENCE:
//  1. Load an optional .env file, then the configuration
//  2. Initialise the logger (stderr, so it never mixes with prompts)
//  3. Open the record store
//  4. Run the interactive menu on stdin/stdout until the user exits
//  5. Close the store on the way out
//
// RUNNING:
//
//	go run ./cmd/result-manager
//
// or with a configuration file:
//
//	go run ./cmd/result-manager --config=config/local.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/aanand-mishra/result-manager/internal/config"
	"github.com/aanand-mishra/result-manager/internal/menu"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/storage/memory"
	"github.com/aanand-mishra/result-manager/internal/storage/sqlite"
	"github.com/aanand-mishra/result-manager/internal/utils/terminal"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "result-manager",
	Short: "Record student exam results and look them up by roll number.",
	Long: `result-manager is an interactive terminal tool. Add students with ` +
		`their three subject marks, then look them up by roll number to see ` +
		`the average and the Pass/Fail result. Nothing is kept after exit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to an optional configuration YAML file (or set CONFIG_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(in io.Reader, out io.Writer) error {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// A missing .env is normal; anything else is worth stopping for.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg := config.MustLoad(configPath)

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env).With(slog.String("session", xid.New().String()))
	slog.SetDefault(log)

	log.Info("starting result-manager",
		slog.String("env", cfg.Env),
		slog.Int("capacity", cfg.Capacity),
		slog.String("storage", cfg.Driver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, err := newStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return err
	}
	atexit.Register(func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	})

	// ── 4. Run the Menu ───────────────────────────────────────────────────
	m := menu.New(terminal.New(in, out), store, log)
	if err := m.Run(); err != nil {
		log.Error("menu stopped", slog.String("error", err.Error()))
		return err
	}

	log.Info("session ended")
	return nil
}

// newStorage picks the record store backend named in the config.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverMemory, "":
		return memory.New(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Local (default): text at WARN, so a normal session prints nothing extra.
// Development (dev): text at DEBUG.
// Production (prod): JSON at INFO.
//
// Logs go to stderr; stdout belongs to the menu.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}),
		)
	}
}
