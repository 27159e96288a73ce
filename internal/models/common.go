package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Decimal is a money or rate amount. The API sends it either as a JSON
// number or as a numeric string.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("decimal %q: %w", s, err)
		}
		*d = Decimal(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) Float64() float64 {
	return float64(d)
}

// String drops trailing zeros: 25 -> "25", 25.5 -> "25.5".
func (d Decimal) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}
