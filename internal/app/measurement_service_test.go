package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"bodylog/internal/app"
	"bodylog/internal/domain"
)

type mockStore struct {
	mu    sync.Mutex
	docs  map[string][]byte
	puts  int
	getFn func(ctx context.Context, key string) ([]byte, error)
	putFn func(ctx context.Context, key string, data []byte) error
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string][]byte)}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[key], nil
}

func (m *mockStore) Put(ctx context.Context, key string, data []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.docs[key] = append([]byte{}, data...)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// reload builds a fresh service over the same store, the way a new app
// session would.
func reload(t *testing.T, store domain.DocumentStore) domain.Dataset {
	t.Helper()
	ds, err := app.NewMeasurementService(store, quietLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ds
}

func TestLoad_FreshStoreIsEmpty(t *testing.T) {
	ds := reload(t, newMockStore())
	if len(ds) != len(domain.Metrics()) {
		t.Fatalf("expected %d metrics, got %d", len(domain.Metrics()), len(ds))
	}
	for _, info := range domain.Metrics() {
		series, ok := ds[info.Key]
		if !ok {
			t.Fatalf("metric %s missing", info.Key)
		}
		if len(series) != 0 {
			t.Fatalf("metric %s not empty", info.Key)
		}
	}
}

func TestLoad_CorruptDocumentIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"weight": "heavy"}`},
		{"future version", `{"version": 99, "metrics": {}}`},
		{"bad date", `{"version": 1, "metrics": {"weight": [{"id": "1", "value": 70, "date": "yesterday"}]}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMockStore()
			store.docs[app.MeasurementsKey] = []byte(tc.doc)
			ds := reload(t, store)
			for m, series := range ds {
				if len(series) != 0 {
					t.Fatalf("expected empty series for %s, got %v", m, series)
				}
			}
		})
	}
}

func TestLoad_StoreError(t *testing.T) {
	store := newMockStore()
	store.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("disk gone")
	}
	_, err := app.NewMeasurementService(store, quietLogger()).Load(context.Background())
	if err == nil {
		t.Fatal("expected error from store")
	}
}

func TestLoad_LegacyDocument(t *testing.T) {
	store := newMockStore()
	store.docs[app.MeasurementsKey] = []byte(`{
		"weight": [{"id": "1704067200000", "value": 70.5, "date": "2024-01-01T08:00:00.000Z"}],
		"chest": [],
		"neck": [{"id": "x", "value": 1, "date": "2024-01-01T08:00:00.000Z"}]
	}`)

	ds := reload(t, store)
	if len(ds[domain.MetricWeight]) != 1 || ds[domain.MetricWeight][0].Value != 70.5 {
		t.Fatalf("legacy weight not loaded: %v", ds[domain.MetricWeight])
	}
	if _, ok := ds["neck"]; ok {
		t.Fatal("unknown metric should be dropped")
	}
	if len(ds) != len(domain.Metrics()) {
		t.Fatalf("expected every metric present, got %d keys", len(ds))
	}
}

func TestAddEntry_Persists(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	when := date("2024-02-01")
	entry, err := svc.AddEntry(ctx, domain.MetricWaist, 82.5, when)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected generated id")
	}

	ds := reload(t, store)
	series := ds[domain.MetricWaist]
	if len(series) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(series))
	}
	if series[0].Value != 82.5 || !series[0].Date.Equal(when) || series[0].ID != entry.ID {
		t.Fatalf("unexpected entry: %+v", series[0])
	}
}

func TestAddEntry_ZeroDateUsesNow(t *testing.T) {
	svc := app.NewMeasurementService(newMockStore(), quietLogger())
	before := time.Now().Add(-time.Second)
	entry, err := svc.AddEntry(context.Background(), domain.MetricWeight, 80, time.Time{})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.Date.Before(before) {
		t.Fatalf("expected current time, got %v", entry.Date)
	}
}

func TestAddEntry_Validation(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())

	tests := []struct {
		name   string
		metric domain.Metric
		value  float64
		want   error
	}{
		{"zero value", domain.MetricWeight, 0, domain.ErrInvalidValue},
		{"negative value", domain.MetricWeight, -5, domain.ErrInvalidValue},
		{"unknown metric", "neck", 40, domain.ErrUnknownMetric},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddEntry(context.Background(), tc.metric, tc.value, date("2024-01-01"))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if store.puts != 0 {
		t.Fatalf("expected no writes, got %d", store.puts)
	}
}

func TestAddEntry_LengthGrowsByOne(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		before := len(reload(t, store)[domain.MetricBicep])
		if _, err := svc.AddEntry(ctx, domain.MetricBicep, 35+float64(i), date("2024-01-01")); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
		after := len(reload(t, store)[domain.MetricBicep])
		if after != before+1 {
			t.Fatalf("expected %d entries, got %d", before+1, after)
		}
	}
}

func TestAddEntry_WriteFailureKeepsMemory(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, domain.MetricWeight, 80, date("2024-01-01")); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	store.putFn = func(_ context.Context, _ string, _ []byte) error {
		return errors.New("disk full")
	}
	if _, err := svc.AddEntry(ctx, domain.MetricWeight, 81, date("2024-01-02")); err == nil {
		t.Fatal("expected write error")
	}

	if got := len(svc.Snapshot()[domain.MetricWeight]); got != 1 {
		t.Fatalf("expected memory to keep 1 entry after failed write, got %d", got)
	}
}

func TestUpdateEntryValue(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	when := date("2024-01-05")
	entry, err := svc.AddEntry(ctx, domain.MetricThigh, 55, when)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := svc.AddEntry(ctx, domain.MetricThigh, 56, date("2024-01-06")); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	updated, err := svc.UpdateEntryValue(ctx, domain.MetricThigh, entry.ID, 57.5)
	if err != nil {
		t.Fatalf("UpdateEntryValue: %v", err)
	}
	if updated.ID != entry.ID || !updated.Date.Equal(when) || updated.Value != 57.5 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	series := reload(t, store)[domain.MetricThigh]
	if len(series) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(series))
	}
	if series[0].ID != entry.ID || series[0].Value != 57.5 || !series[0].Date.Equal(when) {
		t.Fatalf("unexpected persisted entry: %+v", series[0])
	}
}

func TestUpdateEntryValue_NotFound(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())

	_, err := svc.UpdateEntryValue(context.Background(), domain.MetricWeight, "missing", 80)
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if store.puts != 0 {
		t.Fatalf("expected no write for unknown id, got %d", store.puts)
	}
}

func TestUpdateEntryValue_InvalidValue(t *testing.T) {
	svc := app.NewMeasurementService(newMockStore(), quietLogger())
	entry, _ := svc.AddEntry(context.Background(), domain.MetricWeight, 80, date("2024-01-01"))

	_, err := svc.UpdateEntryValue(context.Background(), domain.MetricWeight, entry.ID, 0)
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	a, _ := svc.AddEntry(ctx, domain.MetricChest, 100, date("2024-01-01"))
	b, _ := svc.AddEntry(ctx, domain.MetricChest, 101, date("2024-01-02"))

	deleted, err := svc.DeleteEntry(ctx, domain.MetricChest, a.ID)
	if err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}

	series := reload(t, store)[domain.MetricChest]
	if len(series) != 1 || series[0].ID != b.ID {
		t.Fatalf("unexpected series after delete: %+v", series)
	}

	puts := store.puts
	deleted, err = svc.DeleteEntry(ctx, domain.MetricChest, a.ID)
	if err != nil {
		t.Fatalf("repeated DeleteEntry: %v", err)
	}
	if deleted {
		t.Fatal("expected repeated delete to report false")
	}
	if store.puts != puts {
		t.Fatal("repeated delete should not write")
	}
	if got := len(reload(t, store)[domain.MetricChest]); got != 1 {
		t.Fatalf("expected 1 entry after repeated delete, got %d", got)
	}
}

func TestDeleteEntry_UnknownMetric(t *testing.T) {
	svc := app.NewMeasurementService(newMockStore(), quietLogger())
	_, err := svc.DeleteEntry(context.Background(), "neck", "x")
	if !errors.Is(err, domain.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	svc := app.NewMeasurementService(newMockStore(), quietLogger())
	_, _ = svc.AddEntry(context.Background(), domain.MetricWeight, 80, date("2024-01-01"))

	snap := svc.Snapshot()
	snap[domain.MetricWeight][0].Value = 1

	if got := svc.Snapshot()[domain.MetricWeight][0].Value; got != 80 {
		t.Fatalf("snapshot mutation leaked into service: %v", got)
	}
}

func TestWeightScenario(t *testing.T) {
	svc := app.NewMeasurementService(newMockStore(), quietLogger())
	ctx := context.Background()
	for _, e := range []struct {
		v float64
		d string
	}{
		{70.5, "2024-01-01"},
		{69.8, "2024-01-15"},
		{71.0, "2024-01-10"},
	} {
		if _, err := svc.AddEntry(ctx, domain.MetricWeight, e.v, date(e.d)); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	series, err := svc.Series(domain.MetricWeight)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	sorted := domain.SortedByDate(series)
	history := domain.HistoryView(sorted)

	wantSorted := []float64{70.5, 71.0, 69.8}
	wantHistory := []float64{69.8, 71.0, 70.5}
	for i := range wantSorted {
		if sorted[i].Value != wantSorted[i] {
			t.Fatalf("sorted[%d] = %v; want %v", i, sorted[i].Value, wantSorted[i])
		}
		if history[i].Value != wantHistory[i] {
			t.Fatalf("history[%d] = %v; want %v", i, history[i].Value, wantHistory[i])
		}
	}
}

func TestConcurrentAddsAllSurvive(t *testing.T) {
	store := newMockStore()
	svc := app.NewMeasurementService(store, quietLogger())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.AddEntry(ctx, domain.MetricWeight, 60+float64(i), date("2024-01-01")); err != nil {
				t.Errorf("AddEntry %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(reload(t, store)[domain.MetricWeight]); got != n {
		t.Fatalf("expected %d persisted entries, got %d", n, got)
	}
}
