package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/recipebox/internal/config"
	"github.com/lehigh-university-libraries/recipebox/internal/source"
	"github.com/lehigh-university-libraries/recipebox/internal/storage"
	"github.com/lehigh-university-libraries/recipebox/internal/store"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the config they override.
type rootOptions struct {
	source      string
	storage     string
	storagePath string
	verbose     bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "recipebox",
		Short: "Browse, search and save recipes from a JSON cookbook",
		Long: `Recipebox fetches a cookbook of schema.org-style recipes, normalizes them
and lets you search, page through and save the ones you like.

Saved recipes are kept under the "savedRecipes" key of the configured storage
backend (a directory of JSON files by default, or a SQLite database).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "Recipe source: an http(s) URL or a .json, .jsonl or .parquet file (env RECIPES_SOURCE)")
	cmd.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage backend: file, sqlite or memory (env RECIPES_STORAGE)")
	cmd.PersistentFlags().StringVar(&opts.storagePath, "storage-path", "", "Storage directory or database file (env RECIPES_STORAGE_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newSavedCmd(opts))
	cmd.AddCommand(newSaveCmd(opts))
	cmd.AddCommand(newRemoveCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newThumbnailCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("storage") {
		cfg.StorageBackend = o.storage
		if !flags.Changed("storage-path") && os.Getenv("RECIPES_STORAGE_PATH") == "" {
			cfg.StoragePath = config.DefaultStoragePath(o.storage)
		}
	}
	if flags.Changed("storage-path") {
		cfg.StoragePath = o.storagePath
	}

	level := cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	o.cfg = cfg
	return nil
}

// openStore builds a store over the configured source and storage. The
// returned func closes the storage backend.
func (o *rootOptions) openStore() (*store.Store, func(), error) {
	backend, err := storage.Open(o.cfg.StorageBackend, o.cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	slog.Debug("Storage opened", "backend", o.cfg.StorageBackend, "path", o.cfg.StoragePath)

	src := source.New(o.cfg.Source, o.cfg.HTTPTimeout)
	closeFn := func() {
		if err := backend.Close(); err != nil {
			slog.Warn("Unable to close storage", "err", err)
		}
	}
	return store.New(src, backend), closeFn, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", arg)
	}
	return id, nil
}
