package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abiiranathan/filesearch/search"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewStore returns the index store of config.Root.
func NewStore(config *Config) *search.Store {
	return search.NewStore(config.IndexDir, config.Root)
}

// ValidateIndex builds the index if it is missing or reindex is set and
// checks that it can be read.
func ValidateIndex(store *search.Store, reindex bool) error {
	rebuild, err := store.ShouldRebuild(reindex)
	if err != nil {
		return err
	}

	if rebuild {
		log.Printf("Indexing %s\n", store.Root)
		if err := store.Rebuild(); err != nil {
			return err
		}
	}

	stat, err := os.Stat(store.Path())
	if err != nil {
		return fmt.Errorf("unable to stat index: %w", err)
	}

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("%w; run again with --reindex", err)
	}
	log.Printf("Using index: %s [%d files, %d bytes]\n", store.Path(), len(entries), stat.Size())
	return nil
}

// setRoot resolves the directory to search: the first argument or the
// working directory.
func setRoot(config *Config, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("unable to resolve %s: %w", root, err)
	}

	stat, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !stat.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}

	config.Root = abs
	return nil
}

// useColor decides whether output to f is styled.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// DefineFlags builds the command line. runserver is called by the serve
// subcommand once the index is ready.
func DefineFlags(config *Config, runserver func(store *search.Store) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filesearch [root]",
		Short: "Find files by the words in their names",
		Long: `filesearch ranks the files under root (default: the working directory)
by how well their names match a query, and opens the one you pick.

The index of root is built on first use and reused until --reindex is given.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			SetupLogging(cmd.ErrOrStderr(), config.LogLevel)

			if config.MaxResults < 1 {
				return fmt.Errorf("--max-results must be at least 1")
			}
			return setRoot(config, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := NewShell(cmd.InOrStdin(), cmd.OutOrStdout(), config)
			shell.Color = useColor(config.Color, os.Stdout)
			return shell.Run(NewStore(config), config.Reindex)
		},
	}

	// Flags shared by every subcommand
	cmd.PersistentFlags().BoolVarP(&config.Reindex, "reindex", "r", false,
		"Rebuild the index before searching")
	cmd.PersistentFlags().StringVar(&config.IndexDir, "index-dir", config.IndexDir,
		"Directory holding the generated indexes")
	cmd.PersistentFlags().IntVarP(&config.MaxResults, "max-results", "n", config.MaxResults,
		"Number of ranked results to return")

	serve := &cobra.Command{
		Use:   "serve [root]",
		Short: "Start an HTTP server for search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := NewStore(config)
			if err := ValidateIndex(store, config.Reindex); err != nil {
				return err
			}
			return runserver(store)
		},
	}
	serve.Flags().IntVarP(&config.Port, "port", "p", config.Port, "The port to run the server on")

	cmd.AddCommand(serve)
	return cmd
}
