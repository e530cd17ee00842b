// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Metric identifies a tracked body measurement.
type Metric string

const (
	MetricWeight Metric = "weight"
	MetricBicep  Metric = "bicep"
	MetricChest  Metric = "chest"
	MetricWaist  Metric = "waist"
	MetricThigh  Metric = "thigh"
)

// MetricInfo describes how a metric is displayed and in which unit it is
// stored.
type MetricInfo struct {
	Key   Metric `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

var metrics = []MetricInfo{
	{Key: MetricWeight, Label: "Weight (kg)", Unit: UnitKg},
	{Key: MetricBicep, Label: "Biceps (cm)", Unit: UnitCm},
	{Key: MetricChest, Label: "Chest (cm)", Unit: UnitCm},
	{Key: MetricWaist, Label: "Waist (cm)", Unit: UnitCm},
	{Key: MetricThigh, Label: "Thigh (cm)", Unit: UnitCm},
}

// Metrics returns the fixed set of tracked metrics in display order.
func Metrics() []MetricInfo {
	out := make([]MetricInfo, len(metrics))
	copy(out, metrics)
	return out
}

// Info returns the description of m and whether m is a known metric.
func (m Metric) Info() (MetricInfo, bool) {
	for _, info := range metrics {
		if info.Key == m {
			return info, true
		}
	}
	return MetricInfo{}, false
}

// Valid reports whether m belongs to the fixed metric set.
func (m Metric) Valid() bool {
	_, ok := m.Info()
	return ok
}

// Entry is one recorded observation of a metric.
type Entry struct {
	ID    string    `json:"id" yaml:"id"`
	Value float64   `json:"value" yaml:"value"`
	Date  time.Time `json:"date" yaml:"date"`
}

// Dataset maps every metric to its entries in insertion order. Insertion
// order is not chronological; use SortedByDate before deriving views.
type Dataset map[Metric][]Entry

// NewDataset returns a dataset with every known metric mapped to an empty
// series.
func NewDataset() Dataset {
	ds := make(Dataset, len(metrics))
	for _, info := range metrics {
		ds[info.Key] = []Entry{}
	}
	return ds
}

// Normalize returns a copy of ds holding exactly the known metrics. Missing
// metrics get an empty series and unknown keys are dropped.
func (ds Dataset) Normalize() Dataset {
	out := NewDataset()
	for m, entries := range ds {
		if !m.Valid() {
			continue
		}
		out[m] = append([]Entry{}, entries...)
	}
	return out
}

// Clone returns a deep copy of ds.
func (ds Dataset) Clone() Dataset {
	out := make(Dataset, len(ds))
	for m, entries := range ds {
		out[m] = append([]Entry{}, entries...)
	}
	return out
}

// DocumentStore is the port for durable single-document persistence. Each
// key holds one opaque blob that is always replaced as a whole.
type DocumentStore interface {
	// Get returns the blob stored at key, or nil if nothing is stored yet.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the blob at key.
	Put(ctx context.Context, key string, data []byte) error
}
