package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"bodylog/internal/domain"
)

// Storage keys for the persisted documents. The measurement key is the one
// the mobile app used, so existing data is picked up unchanged.
const (
	MeasurementsKey = "measurements_data_v1"
	MealsKey        = "meals_data_v1"
)

// documentVersion is written into every persisted envelope.
const documentVersion = 1

var errUnsupportedVersion = errors.New("unsupported document version")

type measurementsDocument struct {
	Version int            `json:"version"`
	Metrics domain.Dataset `json:"metrics"`
}

type mealsDocument struct {
	Version int           `json:"version"`
	Meals   []domain.Meal `json:"meals"`
}

func encodeDataset(ds domain.Dataset) ([]byte, error) {
	return json.Marshal(measurementsDocument{Version: documentVersion, Metrics: ds})
}

// decodeDataset accepts both the versioned envelope and the bare
// metric->entries map written by the mobile app.
func decodeDataset(data []byte) (domain.Dataset, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode measurements: %w", err)
	}

	if _, ok := probe["version"]; !ok {
		var legacy domain.Dataset
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy measurements: %w", err)
		}
		return legacy.Normalize(), nil
	}

	var doc measurementsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode measurements: %w", err)
	}
	if doc.Version < 1 || doc.Version > documentVersion {
		return nil, fmt.Errorf("%w: %d", errUnsupportedVersion, doc.Version)
	}
	return doc.Metrics.Normalize(), nil
}

func encodeMeals(meals []domain.Meal) ([]byte, error) {
	if meals == nil {
		meals = []domain.Meal{}
	}
	return json.Marshal(mealsDocument{Version: documentVersion, Meals: meals})
}

func decodeMeals(data []byte) ([]domain.Meal, error) {
	var doc mealsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	if doc.Version < 1 || doc.Version > documentVersion {
		return nil, fmt.Errorf("%w: %d", errUnsupportedVersion, doc.Version)
	}
	if doc.Meals == nil {
		doc.Meals = []domain.Meal{}
	}
	return doc.Meals, nil
}
