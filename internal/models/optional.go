package models

import (
	"encoding/json"
	"strconv"
)

// Optional is a float that may be undefined. Ratios with a zero
// denominator and ranks of undefined values use it instead of NaN.
type Optional struct {
	Value float64
	Valid bool
}

// Some wraps a defined value
func Some(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

// Undefined returns the undefined value
func Undefined() Optional {
	return Optional{}
}

// Ratio divides num by den, returning Undefined when den is zero
func Ratio(num, den float64) Optional {
	if den == 0 {
		return Undefined()
	}
	return Some(num / den)
}

// String formats the value for tabular output; undefined renders empty
func (o Optional) String() string {
	if !o.Valid {
		return ""
	}
	return strconv.FormatFloat(o.Value, 'f', -1, 64)
}

func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// OrZero returns the value, or 0 when undefined
func (o Optional) OrZero() float64 {
	if !o.Valid {
		return 0
	}
	return o.Value
}
