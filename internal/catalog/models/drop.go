package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Drop is a limited-availability offer published by a company.
type Drop struct {
	ID       ID          `json:"id"`
	Business BusinessRef `json:"business"`
	// Available is the remaining count; a drop is available while it is above zero.
	Available int `json:"available"`

	raw json.RawMessage
}

type drop Drop

// UnmarshalJSON reads available leniently: fractions are truncated, numeric
// strings are parsed, and anything else counts as nothing left.
func (d *Drop) UnmarshalJSON(data []byte) error {
	var v struct {
		drop
		Available json.RawMessage `json:"available"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Drop(v.drop)
	d.Available = decodeCount(v.Available)
	d.raw = keepRaw(data)
	return nil
}

func decodeCount(data json.RawMessage) int {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return 0
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func (d Drop) MarshalJSON() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	return json.Marshal(drop(d))
}

func (d Drop) RecordID() ID   { return d.ID }
func (d Drop) BusinessID() ID { return d.Business.ID }
