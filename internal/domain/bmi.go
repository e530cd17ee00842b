package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BMICategory is the weight-status class of a body-mass index.
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObesity     BMICategory = "Obesity"
)

var cmPerMeter = decimal.NewFromInt(100)

// ComputeBMI returns weight / height² with weight in kilograms and height in
// centimeters, rounded to one decimal place.
func ComputeBMI(weightKg, heightCm float64) (float64, error) {
	if !ValidMeasurement(weightKg) {
		return 0, fmt.Errorf("%w: weight must be > 0", ErrInvalidValue)
	}
	if !ValidMeasurement(heightCm) {
		return 0, fmt.Errorf("%w: height must be > 0", ErrInvalidValue)
	}
	h := decimal.NewFromFloat(heightCm).Div(cmPerMeter)
	bmi := decimal.NewFromFloat(weightKg).Div(h.Mul(h)).Round(1)
	return bmi.InexactFloat64(), nil
}

// ClassifyBMI maps a body-mass index to its category.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObesity
	}
}
