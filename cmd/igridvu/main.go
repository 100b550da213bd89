package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Dav0ud/imagegridviewer/internal/config"
	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/gui"
	"github.com/Dav0ud/imagegridviewer/internal/log"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	var (
		columns    int
		filter     string
		configPath string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:     "igridvu <prefix> [suffix_file]",
		Short:   "Synchronized image grid viewer",
		Long: `igridvu shows a set of related images (prefix plus suffix per image) in a
grid whose viewports pan and zoom in lockstep, with an aggregated per-pixel
readout across all of them.`,
		Version: version,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(configPath)
			if debug {
				cfg.Settings.Debug = true
			}
			log.SetDebug(cfg.Settings.Debug)

			prefix := args[0]

			suffixFile, err := resolveSuffixFile(prefix, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("columns") {
				columns = cfg.Grid.Columns
			}
			if columns < 1 {
				return fmt.Errorf("columns must be at least 1, got %d", columns)
			}

			gui.NewApp(cfg, prefix, suffixFile, filter, columns).Run()
			return nil
		},
	}

	rootCmd.Flags().IntVarP(&columns, "columns", "c", 0, "number of grid columns")
	rootCmd.Flags().StringVar(&filter, "filter", "", "glob pattern to select suffixes, e.g. '*_depth.png'")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/igridvu/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(editCmd(&configPath, &debug))
	rootCmd.AddCommand(examplesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveSuffixFile picks the suffix file for a run. An explicitly named file
// must exist; the default file next to the prefix may be absent, in which
// case the GUI starts in its welcome state and waits for it.
func resolveSuffixFile(prefix string, args []string) (string, error) {
	if len(args) > 1 {
		suffixFile := args[1]
		if _, err := os.Stat(suffixFile); err != nil {
			return "", fmt.Errorf("suffix file %s: %w", suffixFile, err)
		}
		return suffixFile, nil
	}

	baseDir := filepath.Dir(prefix)
	if info, err := os.Stat(prefix); err == nil && info.IsDir() {
		baseDir = prefix
	}
	return filepath.Join(baseDir, dataset.DefaultSuffixFile), nil
}

// loadConfig loads the named config file, or the default one, falling back to
// built-in defaults rather than refusing to start.
func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadConfigFile(path)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v. Using default settings.\n", err)
		return config.New()
	}
	return cfg
}
