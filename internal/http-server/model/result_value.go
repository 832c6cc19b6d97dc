package model

import (
	"encoding/json"
	"strconv"
)

// ResultValue holds a game result that casinos report either as a number
// (dice roll, crash multiplier) or as a symbol ("Heads"). Seed exports mix
// both, so the JSON form is kept as-is instead of forcing a float.
type ResultValue struct {
	Number  float64
	Text    string
	Numeric bool
}

func NumberResult(n float64) ResultValue {
	return ResultValue{Number: n, Numeric: true}
}

func TextResult(s string) ResultValue {
	return ResultValue{Text: s}
}

func (v *ResultValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v.Number = n
		v.Numeric = true

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	v.Text = s
	v.Numeric = false

	return nil
}

func (v ResultValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}

	return json.Marshal(v.Text)
}

func (v ResultValue) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}

	return v.Text
}
