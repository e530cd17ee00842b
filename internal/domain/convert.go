package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	UnitKg = "kg"
	UnitLb = "lb"
	UnitCm = "cm"
	UnitIn = "in"
)

const (
	kgToLb = 2.2046226218
	inToCm = 2.54
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v * kgToLb
	}
	if from == UnitLb && to == UnitKg {
		return v / kgToLb
	}
	return v
}

// ConvertLength converts a length value between "cm" and "in".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertLength(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitCm && to == UnitIn {
		return v / inToCm
	}
	if from == UnitIn && to == UnitCm {
		return v * inToCm
	}
	return v
}

// CompatibleUnit reports whether unit can be used to display values stored
// in base.
func CompatibleUnit(base, unit string) bool {
	switch base {
	case UnitKg, UnitLb:
		return unit == UnitKg || unit == UnitLb
	case UnitCm, UnitIn:
		return unit == UnitCm || unit == UnitIn
	}
	return base == unit
}

// Convert converts v from one unit to another of the same dimension.
func Convert(v float64, from, to string) float64 {
	switch from {
	case UnitKg, UnitLb:
		return ConvertWeight(v, from, to)
	case UnitCm, UnitIn:
		return ConvertLength(v, from, to)
	}
	return v
}

// ParseDecimalInput parses user-typed numbers, accepting a comma as the
// decimal separator ("70,5"). Only finite values are accepted.
func ParseDecimalInput(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidValue
	}
	return v, nil
}

// ValidMeasurement reports whether v can be stored as a measurement value.
func ValidMeasurement(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
