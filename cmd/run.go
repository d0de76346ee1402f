package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KaramelBytes/movietrends/internal/analysis"
	cfgpkg "github.com/KaramelBytes/movietrends/internal/config"
	"github.com/KaramelBytes/movietrends/internal/dataset"
	"github.com/KaramelBytes/movietrends/internal/movies"
)

// numeric columns shown in the describe block of the preview
var previewNumeric = []string{
	movies.ColBudget, movies.ColRevenue, movies.ColPopularity,
	movies.ColVoteCount, movies.ColReleaseYear, "runtime", "vote_average",
}

func runPipeline(cmd *cobra.Command, args []string) error {
	c, err := requireConfig()
	if err != nil {
		return err
	}
	dataPath, outDir := c.DataPath, c.OutputDir
	if flagData != "" {
		dataPath = flagData
	}
	if flagOut != "" {
		outDir = flagOut
	}

	out := cmd.OutOrStdout()
	started := time.Now()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Debug("pipeline started", zap.String("data", dataPath), zap.String("out", outDir))

	cleaned, ok, err := loadAndClean(out, dataPath, flagSheet)
	if err != nil || !ok {
		return err
	}
	if preview, err := dataset.Preview(cleaned.Table(), c.PreviewRows, previewNumeric); err != nil {
		log.Warn("preview failed", zap.Error(err))
	} else if preview != "" {
		fmt.Fprintln(out, preview)
	}

	th := thresholds(c)
	res, err := analysis.Run(cleaned, outDir, th, func(o analysis.Output) {
		fmt.Fprintf(out, "✓ Plot saved. [%s]\n", o.Title)
	})
	if err != nil {
		return err
	}

	if c.Report {
		rep := &analysis.Report{
			RunID:      runID,
			Input:      dataPath,
			Started:    started,
			Thresholds: th,
			Stats:      cleaned.Stats,
			Columns:    len(cleaned.Columns),
			Results:    res,
		}
		if err := writeRunArtifacts(out, rep, outDir); err != nil {
			return err
		}
	}
	log.Info("pipeline finished", zap.Duration("elapsed", time.Since(started)))
	return nil
}

// loadAndClean reads and cleans the dataset, printing progress. ok is false
// when the run should stop quietly: the file is missing or nothing survived
// cleaning.
func loadAndClean(out io.Writer, path, sheet string) (*movies.Cleaned, bool, error) {
	p := message.NewPrinter(language.English)

	t, err := dataset.Load(path, sheet)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			fmt.Fprintf(out, "✗ File not found: %s\n", path)
			return nil, false, nil
		}
		return nil, false, err
	}
	rows, cols := t.Shape()
	fmt.Fprintln(out, "File loaded successfully.")
	p.Fprintf(out, "Initial shape: %d rows, %d columns\n", rows, cols)

	cleaned, err := movies.Clean(t)
	if err != nil {
		return nil, false, err
	}
	fmt.Fprintln(out, "Data cleaned successfully.")
	p.Fprintf(out, "Shape after cleaning: %d rows, %d columns (%d rows dropped)\n",
		cleaned.Len(), len(cleaned.Columns), cleaned.Stats.Dropped())
	if cleaned.Empty() {
		fmt.Fprintln(out, "Data cleaning resulted in an empty table.")
		return cleaned, false, nil
	}
	return cleaned, true, nil
}

func writeRunArtifacts(out io.Writer, rep *analysis.Report, outDir string) error {
	files := make([]string, 0, len(rep.Results.Charts)+2)
	for _, ch := range rep.Results.Charts {
		files = append(files, filepath.Base(ch.Path))
	}

	reportPath := filepath.Join(outDir, "report.md")
	if err := rep.WriteMarkdown(reportPath); err != nil {
		return err
	}
	files = append(files, filepath.Base(reportPath))
	fmt.Fprintf(out, "✓ Report written: %s\n", reportPath)

	xlsxPath := filepath.Join(outDir, "aggregates.xlsx")
	if err := analysis.WriteWorkbook(xlsxPath, rep.Results); err != nil {
		return err
	}
	files = append(files, filepath.Base(xlsxPath))
	fmt.Fprintf(out, "✓ Workbook written: %s\n", xlsxPath)

	manifestPath := filepath.Join(outDir, "manifest.yaml")
	if err := analysis.NewManifest(rep, time.Now(), files).Save(manifestPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Manifest written: %s\n", manifestPath)
	return nil
}

func thresholds(c *cfgpkg.Global) analysis.Thresholds {
	return analysis.Thresholds{
		TopN:          c.TopN,
		MinBudget:     c.MinBudget,
		YearMin:       c.YearMin,
		YearMax:       c.YearMax,
		MinGenreCount: c.MinGenreCount,
	}
}
