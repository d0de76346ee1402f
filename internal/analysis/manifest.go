package analysis

import (
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/movietrends/internal/utils"
)

// Manifest records what a run read and wrote.
type Manifest struct {
	RunID      string    `yaml:"run_id"`
	Started    time.Time `yaml:"started"`
	Finished   time.Time `yaml:"finished"`
	Input      string    `yaml:"input"`
	RowsIn     int       `yaml:"rows_in"`
	RowsKept   int       `yaml:"rows_kept"`
	Thresholds struct {
		TopN          int     `yaml:"top_n"`
		MinBudget     float64 `yaml:"min_budget"`
		YearMin       int     `yaml:"year_min"`
		YearMax       int     `yaml:"year_max"`
		MinGenreCount int     `yaml:"min_genre_count"`
	} `yaml:"thresholds"`
	Files []string `yaml:"files"`
}

// NewManifest fills a manifest from a finished report.
func NewManifest(r *Report, finished time.Time, files []string) *Manifest {
	m := &Manifest{
		RunID:    r.RunID,
		Started:  r.Started.UTC(),
		Finished: finished.UTC(),
		Input:    r.Input,
		RowsIn:   r.Stats.RowsIn,
		RowsKept: r.Stats.RowsKept,
		Files:    files,
	}
	m.Thresholds.TopN = r.Thresholds.TopN
	m.Thresholds.MinBudget = r.Thresholds.MinBudget
	m.Thresholds.YearMin = r.Thresholds.YearMin
	m.Thresholds.YearMax = r.Thresholds.YearMax
	m.Thresholds.MinGenreCount = r.Thresholds.MinGenreCount
	return m
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "manifest: marshal")
	}
	return utils.SafeWriteFile(path, b)
}
