package app

import (
	"fmt"

	"bodylog/internal/domain"
)

// SeriesReader is the read side of the measurement repository.
type SeriesReader interface {
	Series(metric domain.Metric) ([]domain.Entry, error)
}

// ChartsService encapsulates chart and history use cases.
type ChartsService struct {
	measurements SeriesReader
}

// NewChartsService creates a ChartsService reading from the given
// repository.
func NewChartsService(r SeriesReader) *ChartsService {
	return &ChartsService{measurements: r}
}

// MetricChart is the chart payload for one metric.
type MetricChart struct {
	Metric domain.Metric `json:"metric"`
	Unit   string        `json:"unit"`
	domain.Chart
}

// Sorted returns the entries of metric in chronological order.
func (s *ChartsService) Sorted(metric domain.Metric) ([]domain.Entry, error) {
	series, err := s.measurements.Series(metric)
	if err != nil {
		return nil, err
	}
	return domain.SortedByDate(series), nil
}

// Chart returns chart-ready data for metric with values converted to unit.
// An empty unit keeps the metric's base unit.
func (s *ChartsService) Chart(metric domain.Metric, unit string) (*MetricChart, error) {
	info, ok := metric.Info()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}
	if unit == "" {
		unit = info.Unit
	}
	if !domain.CompatibleUnit(info.Unit, unit) {
		return nil, fmt.Errorf("%w: %q for %s", domain.ErrUnsupportedUnit, unit, metric)
	}

	sorted, err := s.Sorted(metric)
	if err != nil {
		return nil, err
	}
	if unit != info.Unit {
		for i := range sorted {
			sorted[i].Value = domain.Convert(sorted[i].Value, info.Unit, unit)
		}
	}
	return &MetricChart{Metric: metric, Unit: unit, Chart: domain.ChartSeries(sorted)}, nil
}

// History returns the entries of metric most recent first, up to limit
// entries when limit > 0.
func (s *ChartsService) History(metric domain.Metric, limit int) ([]domain.Entry, error) {
	sorted, err := s.Sorted(metric)
	if err != nil {
		return nil, err
	}
	history := domain.HistoryView(sorted)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}
