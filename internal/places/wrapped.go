package places

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/vbonduro/tastetrails/internal/domain"
)

// DefaultWrappedMinTotal is the number of places a recap needs before the
// detailed breakdown is unlocked.
const DefaultWrappedMinTotal = 5

const (
	maxTopCuisines = 5
	maxTopRated    = 5
	maxBestValue   = 3
	maxTopTags     = 5
)

type WrappedOptions struct {
	Year     int
	MinTotal int
	// Location resolves createdAt/updatedAt timestamps to a year. Nil means UTC.
	Location *time.Location
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ValuePick struct {
	Place      domain.Place `json:"place"`
	ValueScore float64      `json:"valueScore"`
}

type WrappedStats struct {
	Year            int  `json:"year"`
	MinTotal        int  `json:"minTotal"`
	Total           int  `json:"total"`
	Locked          bool `json:"locked"`
	UsingYearFilter bool `json:"usingYearFilter"`

	FoodCount     int            `json:"foodCount"`
	ActivityCount int            `json:"activityCount"`
	TopCuisines   []Count        `json:"topCuisines"`
	Favorites     []domain.Place `json:"favorites"`
	TopRated      []domain.Place `json:"topRated"`
	BestValue     []ValuePick    `json:"bestValue"`
	TopTags       []Count        `json:"topTags"`
}

// ComputeWrapped builds the yearly recap. Places with a blank name never
// count. When no place belongs to opts.Year the whole collection is used
// instead and UsingYearFilter is false. Below opts.MinTotal places the recap
// is locked and only the totals are filled in.
func ComputeWrapped(ps []domain.Place, opts WrappedOptions) WrappedStats {
	if opts.MinTotal <= 0 {
		opts.MinTotal = DefaultWrappedMinTotal
	}

	named := make([]domain.Place, 0, len(ps))
	for _, p := range ps {
		if strings.TrimSpace(p.Name) != "" {
			named = append(named, p)
		}
	}

	base := make([]domain.Place, 0, len(named))
	for _, p := range named {
		if y, ok := EffectiveYear(p, opts.Location); ok && y == opts.Year {
			base = append(base, p)
		}
	}
	usingYear := len(base) > 0
	if !usingYear {
		base = named
	}

	s := WrappedStats{
		Year:            opts.Year,
		MinTotal:        opts.MinTotal,
		Total:           len(base),
		UsingYearFilter: usingYear,
		TopCuisines:     []Count{},
		Favorites:       []domain.Place{},
		TopRated:        []domain.Place{},
		BestValue:       []ValuePick{},
		TopTags:         []Count{},
	}
	if s.Total < opts.MinTotal {
		s.Locked = true
		return s
	}

	cuisines := newTally()
	tags := newTally()
	for _, p := range base {
		switch {
		case domain.IsFood(p.PlaceType):
			s.FoodCount++
		case p.PlaceType == domain.TypeActivity:
			s.ActivityCount++
		}
		if p.Cuisine != "" && domain.HasCuisine(p.PlaceType) {
			cuisines.add(p.Cuisine)
		}
		for _, t := range p.Tags {
			tags.add(t)
		}
		if p.IsFavorite {
			s.Favorites = append(s.Favorites, p)
		}
		if p.RatingValue() == MaxRating && len(s.TopRated) < maxTopRated {
			s.TopRated = append(s.TopRated, p)
		}
		if score, ok := ValueScore(p); ok {
			s.BestValue = append(s.BestValue, ValuePick{Place: p, ValueScore: score})
		}
	}

	slices.SortStableFunc(s.BestValue, func(a, b ValuePick) int {
		return cmp.Compare(b.ValueScore, a.ValueScore)
	})
	if len(s.BestValue) > maxBestValue {
		s.BestValue = s.BestValue[:maxBestValue]
	}
	s.TopCuisines = cuisines.top(maxTopCuisines)
	s.TopTags = tags.top(maxTopTags)
	return s
}

// ValueScore is rating divided by price weight. Activities, unrated places
// and places without a valid price tier have no score.
func ValueScore(p domain.Place) (float64, bool) {
	if p.PlaceType == domain.TypeActivity || p.RatingValue() <= 0 {
		return 0, false
	}
	w, ok := p.Price.Weight()
	if !ok {
		return 0, false
	}
	return float64(p.RatingValue()) / float64(w), true
}

// tally counts names and remembers the order they were first seen in, which
// breaks ties when ranking.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(name string) {
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

func (t *tally) top(n int) []Count {
	out := make([]Count, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Count{Name: name, Count: t.counts[name]})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
