package domain

import "sort"

// labelEvery controls label density on charts: only every labelEvery-th
// point carries a date label.
const labelEvery = 5

// chartLabelLayout matches the en-US "day: numeric, month: short" format.
const chartLabelLayout = "Jan 2"

// Chart is a chart-ready projection of a series. Labels and Values are
// parallel slices.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// SortedByDate returns a copy of series ordered by ascending date. Entries
// with equal dates keep their insertion order.
func SortedByDate(series []Entry) []Entry {
	out := append([]Entry{}, series...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ChartSeries builds parallel label and value slices from sorted entries.
func ChartSeries(sorted []Entry) Chart {
	c := Chart{
		Labels: make([]string, len(sorted)),
		Values: make([]float64, len(sorted)),
	}
	for i, e := range sorted {
		if i%labelEvery == 0 {
			c.Labels[i] = e.Date.Format(chartLabelLayout)
		}
		c.Values[i] = e.Value
	}
	return c
}

// HistoryView returns sorted entries most recent first.
func HistoryView(sorted []Entry) []Entry {
	out := make([]Entry, len(sorted))
	for i, e := range sorted {
		out[len(sorted)-1-i] = e
	}
	return out
}
