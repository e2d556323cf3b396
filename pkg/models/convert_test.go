package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "0.001", AsString("0.001"))
	assert.Equal(t, "105000.50", AsString(json.Number("105000.50")), "wire representation must survive")
	assert.Equal(t, "0.5", AsString(0.5))
	assert.Equal(t, "42", AsString(42))
	assert.Equal(t, "true", AsString(true))
	assert.Equal(t, "", AsString(struct{}{}))
}

func TestDec(t *testing.T) {
	t.Parallel()
	assert.True(t, Dec("0.001").Equal(decimal.RequireFromString("0.001")))
	assert.True(t, Dec(" 1.5 ").Equal(decimal.RequireFromString("1.5")), "whitespace is trimmed")
	assert.True(t, Dec("").IsZero(), "unparseable input degrades to zero")
	assert.True(t, Dec("garbage").IsZero())
}

func TestFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2.5, Float("2.5"))
	assert.Equal(t, 0.0, Float(""))
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	assert.True(t, ParseTime(nil).IsZero())
	assert.True(t, ParseTime("not a time").IsZero())

	rfc := ParseTime("2025-06-01T12:30:00Z")
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), rfc)

	bare := ParseTime("2025-06-01T12:30:00")
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), bare)

	spaced := ParseTime("2025-06-01 12:30:00")
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), spaced)

	// seconds
	assert.Equal(t, time.Unix(1748781000, 0), ParseTime(json.Number("1748781000")))
	// milliseconds
	assert.Equal(t, time.Unix(1748781000, 0), ParseTime(json.Number("1748781000000")))
	assert.Equal(t, time.Unix(1748781000, 0), ParseTime(1748781000000.0))
	// zero epoch is treated as absent
	assert.True(t, ParseTime(json.Number("0")).IsZero())
}

func TestStringFieldFallbackOrder(t *testing.T) {
	t.Parallel()
	m := map[string]any{"order_id": "abc", "id": "legacy"}
	assert.Equal(t, "abc", stringField(m, "", "order_id", "id"))

	m = map[string]any{"id": "legacy"}
	assert.Equal(t, "legacy", stringField(m, "", "order_id", "id"))

	assert.Equal(t, "fallback", stringField(map[string]any{}, "fallback", "order_id"))
	assert.Equal(t, "fallback", stringField(map[string]any{"order_id": nil}, "fallback", "order_id"),
		"explicit null counts as absent")
}

func TestTruthy(t *testing.T) {
	t.Parallel()
	assert.False(t, truthy(nil))
	assert.False(t, truthy(""))
	assert.False(t, truthy(0.0))
	assert.False(t, truthy(json.Number("0")))
	assert.False(t, truthy(false))
	assert.True(t, truthy("0"), "a string zero is a real value")
	assert.True(t, truthy("0.5"))
	assert.True(t, truthy(json.Number("0.001")))
}
