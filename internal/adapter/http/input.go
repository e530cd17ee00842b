package adapthttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"bodylog/internal/domain"
)

// number accepts a JSON number or a string typed into a form field,
// with either "." or "," as the decimal separator.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := domain.ParseDecimalInput(s)
		if err != nil {
			return fmt.Errorf("%w: %q", err, s)
		}
		*n = number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidValue, b)
	}
	*n = number(v)
	return nil
}

// lenientNumber is like number but reads anything unparseable or
// non-finite as 0, the way the meal form treats empty or non-numeric macro
// fields.
type lenientNumber float64

func (n *lenientNumber) UnmarshalJSON(b []byte) error {
	var v number
	if err := v.UnmarshalJSON(b); err != nil || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		*n = 0
		return nil
	}
	*n = lenientNumber(v)
	return nil
}
