package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AsString renders a decoded JSON value as its string form. Numeric values
// keep their wire representation where possible; nil becomes "".
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// stringField returns the first of keys that is present in m, stringified.
// Mirrors the presence-based fallback chains used by the exchange payloads
// (e.g. "order_id" falling back to "id").
func stringField(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return AsString(v)
		}
	}
	return def
}

// optField is stringField without a default: absent keys stay "".
func optField(m map[string]any, keys ...string) string {
	return stringField(m, "", keys...)
}

func boolField(m map[string]any, def bool, keys ...string) bool {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return def
}

// truthy reports whether a decoded JSON value carries a usable payload.
// Empty strings, nil and numeric zero do not; the string "0" does.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case int:
		return x != 0
	case bool:
		return x
	default:
		return true
	}
}

// Dec is the single conversion point from string-decimal fields to exact
// decimal values. Unparseable input degrades to zero rather than erroring,
// so arithmetic over optional fields never propagates a parse failure.
func Dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float converts a string-decimal field to a float64. Approximate by
// nature; use Dec for anything that feeds back into order math.
func Float(s string) float64 {
	f, _ := Dec(s).Float64()
	return f
}

// ParseTime accepts the timestamp shapes the exchange emits: RFC3339
// strings and unix epochs in seconds or milliseconds. Anything else
// yields the zero time.
func ParseTime(v any) time.Time {
	switch x := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return x
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, x); err == nil {
				return t
			}
		}
		return time.Time{}
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return time.Time{}
		}
		return epochTime(f)
	case float64:
		return epochTime(x)
	case int64:
		return epochTime(float64(x))
	default:
		return time.Time{}
	}
}

func epochTime(f float64) time.Time {
	if f == 0 {
		return time.Time{}
	}
	if f > 1e12 { // milliseconds
		f = f / 1000
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
