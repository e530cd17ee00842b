// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"bodylog/internal/domain"
)

// MeasurementService owns the in-memory measurement dataset for a session
// and keeps it synchronized with the persistent store. It is safe for
// concurrent use; mutations and their writes are serialized.
type MeasurementService struct {
	store domain.DocumentStore
	log   *slog.Logger

	mu   sync.Mutex
	data domain.Dataset

	now   func() time.Time
	newID func() string
}

// NewMeasurementService creates a MeasurementService backed by the given
// store. Call Load before serving reads to pick up persisted data.
func NewMeasurementService(store domain.DocumentStore, log *slog.Logger) *MeasurementService {
	if log == nil {
		log = slog.Default()
	}
	return &MeasurementService{
		store: store,
		log:   log,
		data:  domain.NewDataset(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads the persisted dataset into memory and returns a snapshot of it.
// A missing or unparseable document yields an empty dataset; only store
// failures are returned as errors.
func (s *MeasurementService) Load(ctx context.Context) (domain.Dataset, error) {
	raw, err := s.store.Get(ctx, MeasurementsKey)
	if err != nil {
		return nil, fmt.Errorf("load measurements: %w", err)
	}

	ds := domain.NewDataset()
	if raw != nil {
		decoded, err := decodeDataset(raw)
		if err != nil {
			storeLoadFallbacks.WithLabelValues(MeasurementsKey).Inc()
			s.log.Warn("discarding unreadable measurements document", "key", MeasurementsKey, "error", err)
		} else {
			ds = decoded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = ds
	return s.data.Clone(), nil
}

// Snapshot returns a copy of the current dataset.
func (s *MeasurementService) Snapshot() domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Series returns a copy of the entries recorded for metric, in insertion
// order.
func (s *MeasurementService) Series(metric domain.Metric) ([]domain.Entry, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Entry{}, s.data[metric]...), nil
}

// AddEntry validates and appends a new entry to metric. A zero date means
// now.
func (s *MeasurementService) AddEntry(ctx context.Context, metric domain.Metric, value float64, date time.Time) (domain.Entry, error) {
	if err := validateEntry(metric, value); err != nil {
		return domain.Entry{}, err
	}
	if date.IsZero() {
		date = s.now()
	}
	entry := domain.Entry{ID: s.newID(), Value: value, Date: date.UTC()}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	next[metric] = append(next[metric], entry)
	if err := s.persist(ctx, next); err != nil {
		return domain.Entry{}, err
	}
	s.log.Debug("measurement added", "metric", metric, "id", entry.ID)
	return entry, nil
}

// UpdateEntryValue replaces the value of the entry with id, keeping its id
// and date. It returns domain.ErrEntryNotFound without writing if id is
// not part of the series.
func (s *MeasurementService) UpdateEntryValue(ctx context.Context, metric domain.Metric, id string, value float64) (domain.Entry, error) {
	if err := validateEntry(metric, value); err != nil {
		return domain.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.data[metric], id)
	if idx < 0 {
		return domain.Entry{}, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, metric, id)
	}

	next := s.data.Clone()
	next[metric][idx].Value = value
	if err := s.persist(ctx, next); err != nil {
		return domain.Entry{}, err
	}
	return next[metric][idx], nil
}

// DeleteEntry removes the entry with id from metric. Deleting an id that is
// not present is a no-op and reports false.
func (s *MeasurementService) DeleteEntry(ctx context.Context, metric domain.Metric, id string) (bool, error) {
	if !metric.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.data[metric], id)
	if idx < 0 {
		return false, nil
	}

	next := s.data.Clone()
	series := next[metric]
	next[metric] = append(series[:idx], series[idx+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// persist writes next and installs it as the current dataset. Callers hold
// s.mu, which linearizes writes. On failure the current dataset is left
// untouched so memory never runs ahead of the store.
func (s *MeasurementService) persist(ctx context.Context, next domain.Dataset) error {
	raw, err := encodeDataset(next)
	if err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	start := time.Now()
	err = s.store.Put(ctx, MeasurementsKey, raw)
	observeWrite(MeasurementsKey, start, err)
	if err != nil {
		s.log.Error("measurements write failed", "key", MeasurementsKey, "error", err)
		return fmt.Errorf("persist dataset: %w", err)
	}
	s.data = next
	return nil
}

func validateEntry(metric domain.Metric, value float64) error {
	if !metric.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}
	if !domain.ValidMeasurement(value) {
		return fmt.Errorf("%w: value must be > 0", domain.ErrInvalidValue)
	}
	return nil
}

func indexOf(series []domain.Entry, id string) int {
	for i, e := range series {
		if e.ID == id {
			return i
		}
	}
	return -1
}
