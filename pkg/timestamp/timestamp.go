// Package timestamp converts the timestamp shapes found in profile payloads
// into UTC instants and renders them back as strings.
package timestamp

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	ReadableLayout    = "2006-01-02 15:04"
	ISO8601Layout     = "2006-01-02T15:04:05-07:00"
	ISO8601FracLayout = "2006-01-02T15:04:05.000000-07:00"

	// Epoch seconds of 0001-01-01T00:00:00Z and 9999-12-31T23:59:59Z.
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

// layouts are tried in order; the first match wins.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	ReadableLayout,
}

// Normalize accepts epoch seconds (any Go number, json.Number or a digit-only
// string) or a date-time string in one of the known layouts. It returns nil
// for nil or unrecognised input.
func Normalize(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case int:
		return fromEpoch(float64(v))
	case int32:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case float32:
		return fromEpoch(float64(v))
	case float64:
		return fromEpoch(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return fromEpoch(f)
		}
		return parseString(v.String())
	case string:
		return parseString(v)
	}
	return nil
}

// ToReadable renders t as "YYYY-MM-DD HH:MM" in UTC.
func ToReadable(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(ReadableLayout)
	return &s
}

// ToISO8601 renders t as a full ISO-8601 string with an explicit +00:00 offset.
// Sub-second precision is written as six microsecond digits when non-zero.
func ToISO8601(t *time.Time) *string {
	if t == nil {
		return nil
	}
	u := t.UTC()
	layout := ISO8601Layout
	if u.Nanosecond()/int(time.Microsecond) != 0 {
		layout = ISO8601FracLayout
	}
	s := u.Format(layout)
	return &s
}

func parseString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if isDigits(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return fromEpoch(f)
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t = t.UTC()
			if t.Year() < 1 || t.Year() > 9999 {
				return nil
			}
			return &t
		}
	}
	return nil
}

func fromEpoch(sec float64) *time.Time {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < minEpoch || sec >= maxEpoch+1 {
		return nil
	}
	whole, frac := math.Modf(sec)
	t := time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return nil
	}
	return &t
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
