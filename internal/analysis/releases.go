package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/movietrends/internal/chart"
	"github.com/KaramelBytes/movietrends/internal/movies"
	"gonum.org/v1/plot/vg"
)

// YearCount is the number of releases in one year.
type YearCount struct {
	Year  int
	Count int
}

// ReleasesPerYear counts movies per release year for years strictly between
// after and before, sorted by year.
func ReleasesPerYear(ms []movies.Movie, after, before int) []YearCount {
	counts := map[int]int{}
	for _, m := range ms {
		if m.ReleaseYear > after && m.ReleaseYear < before {
			counts[m.ReleaseYear]++
		}
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PeakYear returns the year with most releases; earliest wins ties.
func PeakYear(counts []YearCount) (YearCount, bool) {
	if len(counts) == 0 {
		return YearCount{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best, true
}

func releasesTitle(th Thresholds) string {
	return fmt.Sprintf("Number of Movies Released Per Year (%d-%d)", th.YearMin+1, th.YearMax-1)
}

func runReleases(ms []movies.Movie, th Thresholds, out Output, res *Results) error {
	res.Releases = ReleasesPerYear(ms, th.YearMin, th.YearMax)
	xs := make([]float64, len(res.Releases))
	ys := make([]float64, len(res.Releases))
	for i, c := range res.Releases {
		xs[i] = float64(c.Year)
		ys[i] = float64(c.Count)
	}
	return chart.Line(out.Path, xs, ys, chart.Style{
		Title:  out.Title,
		XLabel: "Year",
		YLabel: "Number of Movies",
		Color:  chart.Red,
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
		Grid:   true,
	})
}
