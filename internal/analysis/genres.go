package analysis

import (
	"sort"

	"github.com/KaramelBytes/movietrends/internal/chart"
	"github.com/KaramelBytes/movietrends/internal/movies"
	"gonum.org/v1/plot/vg"
)

// CategoryCount is a value and its number of occurrences.
type CategoryCount struct {
	Value string
	Count int
}

// TopGenres explodes each movie into one entry per genre name and returns
// the n most frequent names, most frequent first. Ties are broken by name.
func TopGenres(ms []movies.Movie, n int) []CategoryCount {
	counts := map[string]int{}
	for _, m := range ms {
		for _, name := range m.GenreNames() {
			counts[name]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func runTopGenres(ms []movies.Movie, th Thresholds, out Output, res *Results) error {
	res.TopGenres = TopGenres(ms, th.TopN)

	// ascending, so the most frequent genre sits at the top of the chart
	n := len(res.TopGenres)
	labels := make([]string, n)
	values := make([]float64, n)
	for i, c := range res.TopGenres {
		labels[n-1-i] = c.Value
		values[n-1-i] = float64(c.Count)
	}
	return chart.HorizontalBars(out.Path, labels, values, chart.Style{
		Title:  out.Title,
		XLabel: "Number of Movies",
		YLabel: "Genre",
		Color:  chart.Purple,
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
	})
}
