package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/movietrends/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set movietrends configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "min_budget: %g\n", cfg.MinBudget)
		fmt.Fprintf(out, "year_min: %d\n", cfg.YearMin)
		fmt.Fprintf(out, "year_max: %d\n", cfg.YearMax)
		fmt.Fprintf(out, "top_n: %d\n", cfg.TopN)
		fmt.Fprintf(out, "min_genre_count: %d\n", cfg.MinGenreCount)
		fmt.Fprintf(out, "report: %t\n", cfg.Report)
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(out, "log.level: %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "log.format: %s\n", cfg.Log.Format)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		if err := setKey(&next, key, val); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		*cfg = next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "output_dir":
		c.OutputDir = val
	case "min_budget":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid float for min_budget: %v", val)
		}
		c.MinBudget = f
	case "year_min", "year_max", "top_n", "min_genre_count", "preview_rows":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %w", key, err)
		}
		switch key {
		case "year_min":
			c.YearMin = i
		case "year_max":
			c.YearMax = i
		case "top_n":
			c.TopN = i
		case "min_genre_count":
			c.MinGenreCount = i
		case "preview_rows":
			c.PreviewRows = i
		}
	case "report":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for report: %w", err)
		}
		c.Report = b
	case "log.level":
		c.Log.Level = strings.ToLower(val)
	case "log.format":
		switch strings.ToLower(val) {
		case "console", "json":
			c.Log.Format = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log.format: %s (use console or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
