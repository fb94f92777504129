package places

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/vbonduro/tastetrails/internal/domain"
)

const UnknownCity = "Unknown"

type CityGroup struct {
	City   string         `json:"city"`
	Places []domain.Place `json:"places"`
}

// GroupByCity buckets places by city for the map view. A non-blank search
// first narrows the places to those whose name, city, neighborhood, type,
// cuisine or tags contain it.
func GroupByCity(ps []domain.Place, search string, locale language.Tag) []CityGroup {
	q := strings.ToLower(strings.TrimSpace(search))

	var groups []CityGroup
	index := make(map[string]int)
	for _, p := range ps {
		if q != "" && !strings.Contains(haystack(p), q) {
			continue
		}
		city := p.City
		if strings.TrimSpace(city) == "" {
			city = UnknownCity
		}
		i, ok := index[city]
		if !ok {
			i = len(groups)
			index[city] = i
			groups = append(groups, CityGroup{City: city})
		}
		groups[i].Places = append(groups[i].Places, p)
	}

	coll := newCollator(locale)
	slices.SortStableFunc(groups, func(a, b CityGroup) int {
		return coll.CompareString(a.City, b.City)
	})
	if groups == nil {
		groups = []CityGroup{}
	}
	return groups
}

func haystack(p domain.Place) string {
	parts := make([]string, 0, 5+len(p.Tags))
	for _, s := range []string{p.Name, p.City, p.Neighborhood, p.PlaceType, p.Cuisine} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, t := range p.Tags {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
