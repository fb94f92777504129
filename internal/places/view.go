package places

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/vbonduro/tastetrails/internal/domain"
)

type SortKey string

const (
	SortName    SortKey = "name"
	SortRating  SortKey = "rating"
	SortDate    SortKey = "date"
	SortUpdated SortKey = "updated"
)

var ErrInvalidSort = errors.New("invalid sort key")

// ParseSortKey accepts the sort keys of the browse view; empty means name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortName, nil
	case SortName, SortRating, SortDate, SortUpdated:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
}

// Query selects and orders places for the browse view. Zero values disable
// the corresponding filter.
type Query struct {
	Search        string
	PlaceType     string
	Cuisine       string
	MinRating     int
	FavoritesOnly bool
	Sort          SortKey
	Locale        language.Tag
}

// View returns the places matching q, ordered by q.Sort. Ties keep input
// order. ps is not modified.
func View(ps []domain.Place, q Query) []domain.Place {
	term := strings.ToLower(q.Search)

	out := make([]domain.Place, 0, len(ps))
	for _, p := range ps {
		if q.matches(p, term) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, comparator(q.Sort, q.Locale))
	return out
}

func (q Query) matches(p domain.Place, term string) bool {
	if term != "" &&
		!strings.Contains(strings.ToLower(p.Name), term) &&
		!strings.Contains(strings.ToLower(p.Cuisine), term) &&
		!strings.Contains(strings.ToLower(p.City), term) {
		return false
	}
	if q.PlaceType != "" && p.PlaceType != q.PlaceType {
		return false
	}
	if q.Cuisine != "" && p.Cuisine != q.Cuisine {
		return false
	}
	if p.RatingValue() < q.MinRating {
		return false
	}
	if q.FavoritesOnly && !p.IsFavorite {
		return false
	}
	return true
}

func comparator(key SortKey, locale language.Tag) func(a, b domain.Place) int {
	switch key {
	case SortRating:
		return func(a, b domain.Place) int {
			return cmp.Compare(b.RatingValue(), a.RatingValue())
		}
	case SortDate:
		return compareVisitedDesc
	case SortUpdated:
		return func(a, b domain.Place) int {
			return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
		}
	default:
		coll := newCollator(locale)
		return func(a, b domain.Place) int {
			return coll.CompareString(a.Name, b.Name)
		}
	}
}

// compareVisitedDesc puts the most recent visit first; missing or unparsable
// dates go last.
func compareVisitedDesc(a, b domain.Place) int {
	ta, okA := ParseDate(a.DateVisited)
	tb, okB := ParseDate(b.DateVisited)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return tb.Compare(ta)
	}
}
