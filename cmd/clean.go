package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/movietrends/internal/utils"
)

var (
	cleanData   string
	cleanSheet  string
	cleanOutput string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the dataset and write the result as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		path := c.DataPath
		if cleanData != "" {
			path = cleanData
		}
		out := cmd.OutOrStdout()

		cleaned, ok, err := loadAndClean(out, path, cleanSheet)
		if err != nil || !ok {
			return err
		}
		var buf bytes.Buffer
		if err := cleaned.Table().Write(&buf); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(cleanOutput, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Cleaned table written: %s\n", cleanOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanData, "data", "", "input CSV (overrides data_path)")
	cleanCmd.Flags().StringVar(&cleanSheet, "sheet", "", "worksheet to read when the input is .xlsx (default first sheet)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "cleaned.csv", "output CSV path")
}
