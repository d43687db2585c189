package request_models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// FlexFloat accepts 35.6, "35.6", null or "". Anything unparsable or
// non-finite decodes to zero with Valid unset instead of failing the whole
// request.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else {
		s = string(raw)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil when the field was absent or unparsable.
func (f *FlexFloat) Ptr() *float64 {
	if f == nil || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func Float(v float64) FlexFloat { return FlexFloat{Value: v, Valid: true} }

// FlexInt behaves like FlexFloat and truncates fractional input.
type FlexInt struct {
	Value int
	Valid bool
}

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	_ = f.UnmarshalJSON(data)
	*i = FlexInt{Value: int(f.Value), Valid: f.Valid}
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

func (i *FlexInt) Ptr() *int {
	if i == nil || !i.Valid {
		return nil
	}
	v := i.Value
	return &v
}

// FlexTime accepts RFC3339 strings or epoch milliseconds.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	*t = FlexTime{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed
			return nil
		}
		raw = []byte(s)
	}
	if ms, err := strconv.ParseInt(string(raw), 10, 64); err == nil && ms > 0 {
		t.Time = time.UnixMilli(ms)
	}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// OrNow falls back to now for missing timestamps.
func (t FlexTime) OrNow(now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.Time
}
