package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// maxEpochMillis is the largest distance from the epoch a timestamp may have.
const maxEpochMillis = 8.64e15

// endTimeLayouts are tried in order; the zone-less forms are read as UTC.
var endTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Moment is a time-boxed offer published by a company.
type Moment struct {
	ID       ID          `json:"id"`
	Business BusinessRef `json:"business"`
	// EndTime is the stored end of the moment. A numeric endTime is kept in its
	// textual form and read as milliseconds since the epoch.
	EndTime string `json:"endTime"`

	raw       json.RawMessage
	endMillis float64
	hasMillis bool
}

type moment Moment

// UnmarshalJSON never rejects a record over its endTime: a value that is neither
// a string nor a number leaves the moment without an end.
func (m *Moment) UnmarshalJSON(data []byte) error {
	var v struct {
		moment
		EndTime json.RawMessage `json:"endTime"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Moment(v.moment)
	m.EndTime, m.endMillis, m.hasMillis = decodeEndTime(v.EndTime)
	m.raw = keepRaw(data)
	return nil
}

func decodeEndTime(data json.RawMessage) (string, float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", 0, false
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", 0, false
		}
		return s, 0, false
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", 0, false
	}
	ms, err := n.Float64()
	if err != nil {
		return "", 0, false
	}
	return n.String(), ms, true
}

func (m Moment) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	return json.Marshal(moment(m))
}

func (m Moment) RecordID() ID   { return m.ID }
func (m Moment) BusinessID() ID { return m.Business.ID }

// Ends parses EndTime. It reports false when the value is empty or not a timestamp.
func (m Moment) Ends() (time.Time, bool) {
	if m.hasMillis {
		if math.IsNaN(m.endMillis) || math.Abs(m.endMillis) > maxEpochMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(m.endMillis)).UTC(), true
	}
	s := strings.TrimSpace(m.EndTime)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range endTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
