package places

import (
	"encoding/json"
	"math"
	"time"

	"github.com/vbonduro/tastetrails/internal/domain"
)

// The coercion rules below turn loosely typed JSON values (as produced by
// encoding/json decoding into any) into Place fields. Each rule is total: it
// never fails, it falls back to the documented default instead.

// CoerceString returns v if it is a string, otherwise def.
func CoerceString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// CoerceName returns v if it is a non-empty string, otherwise "Untitled".
// Whitespace-only names are kept as they are; recaps leave them out.
func CoerceName(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return UntitledName
}

func CoerceBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// CoerceTags keeps the string entries of an array and drops everything else.
// The result is never nil.
func CoerceTags(v any) []string {
	tags := []string{}
	arr, ok := v.([]any)
	if !ok {
		return tags
	}
	for _, t := range arr {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// CoerceRating rounds a JSON number to the nearest integer and keeps it only
// if it lies in [1,5].
func CoerceRating(v any) *int {
	f, ok := number(v)
	if !ok {
		return nil
	}
	r := int(math.Round(f))
	if r < MinRating || r > MaxRating {
		return nil
	}
	return &r
}

// CoercePrice keeps v only if it is one of the four price tiers.
func CoercePrice(v any) domain.Price {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	p := domain.Price(s)
	if !p.Valid() {
		return ""
	}
	return p
}

// CoerceTimestamp returns v as epoch milliseconds if it is numeric, otherwise now.
func CoerceTimestamp(v any, now time.Time) int64 {
	if f, ok := number(v); ok {
		return int64(math.Round(f))
	}
	return now.UnixMilli()
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
