package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/movietrends/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Pipeline flags (override config if set)
	flagData  string
	flagOut   string
	flagSheet string

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "movietrends",
	Short: "Explore the movie metadata dataset and chart its trends",
	Long: `movietrends loads the movie metadata CSV, cleans it, and writes four charts:
the most common genres, budget vs. revenue, releases per year and the most
profitable genres. A Markdown report, an xlsx workbook and a run manifest
are written next to the charts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runPipeline,
}

// Execute is the entry point called by main.main()
func Execute() {
	if code := execute(os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// execute runs the root command, flushes the logger and returns the exit
// status.
func execute(stderr io.Writer) int {
	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintln(stderr, "✗ Error:", err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.movietrends/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagData, "data", "", "input CSV (overrides data_path)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "output directory (overrides output_dir)")
	rootCmd.Flags().StringVar(&flagSheet, "sheet", "", "worksheet to read when the input is .xlsx (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here: config show/set still work, the pipeline reports it
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg, cfgErr = nil, err
		return
	}
	cfg, cfgErr = c, nil

	if debug {
		cfg.Log.Level = "debug"
	}
	if err := cfgpkg.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	if cfgErr != nil {
		return nil, cfgErr
	}
	return cfgpkg.Load(cfgFile)
}
