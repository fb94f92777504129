package places

import (
	"strings"
	"time"

	"github.com/vbonduro/tastetrails/internal/domain"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses a dateVisited value. Plain calendar dates are interpreted
// as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveYear is the year a place counts towards in a recap: the calendar
// year of dateVisited, else the year of createdAt (or updatedAt when createdAt
// is unset) in loc.
func EffectiveYear(p domain.Place, loc *time.Location) (int, bool) {
	if t, ok := ParseDate(p.DateVisited); ok {
		return t.Year(), true
	}
	if loc == nil {
		loc = time.UTC
	}
	ts := p.CreatedAt
	if ts == 0 {
		ts = p.UpdatedAt
	}
	if ts == 0 {
		return 0, false
	}
	return time.UnixMilli(ts).In(loc).Year(), true
}
