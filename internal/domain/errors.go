package domain

import "errors"

var (
	// ErrUnknownMetric indicates a metric outside the fixed metric set.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInvalidValue indicates a non-numeric, non-finite or non-positive value.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupportedUnit indicates a display unit that does not match the metric's dimension.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrEntryNotFound indicates that no entry with the given id exists in the series.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrMealNotFound indicates that no meal with the given id exists.
	ErrMealNotFound = errors.New("meal not found")
)
