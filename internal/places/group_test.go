package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/tastetrails/internal/domain"
)

func groupFixture() []domain.Place {
	return []domain.Place{
		{ID: "1", Name: "Mama's Kitchen", City: "San Francisco", Neighborhood: "North Beach", PlaceType: domain.TypeRestaurant, Cuisine: "Italian", Tags: []string{"Date Night"}},
		{ID: "2", Name: "Blue Bottle", City: "Oakland", PlaceType: domain.TypeCafe},
		{ID: "3", Name: "Mystery Spot"},
		{ID: "4", Name: "Cocktail Lab", City: "San Francisco", Neighborhood: "Mission", PlaceType: domain.TypeBar, Tags: []string{"Trendy"}},
		{ID: "5", Name: "Taco Express", City: "Oakland", Neighborhood: "Temescal", Cuisine: "Mexican"},
		{ID: "6", Name: "Roadside", City: "   "},
		{ID: "7", Name: "Sweet Dreams", City: "Berkeley", PlaceType: domain.TypeDessert},
	}
}

func groupCities(gs []CityGroup) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.City
	}
	return out
}

func TestGroupByCity(t *testing.T) {
	ps := groupFixture()

	groups := GroupByCity(ps, "", DefaultLocale)

	assert.Equal(t, []string{"Berkeley", "Oakland", "San Francisco", "Unknown"}, groupCities(groups))
	assert.Equal(t, []string{"2", "5"}, ids(groups[1].Places))
	assert.Equal(t, []string{"1", "4"}, ids(groups[2].Places))
	assert.Equal(t, []string{"3", "6"}, ids(groups[3].Places))

	// Every place appears exactly once.
	var all []string
	for _, g := range groups {
		all = append(all, ids(g.Places)...)
	}
	assert.ElementsMatch(t, ids(ps), all)
}

func TestGroupByCity_Search(t *testing.T) {
	ps := groupFixture()

	tests := []struct {
		term   string
		cities []string
		ids    []string
	}{
		{"mission", []string{"San Francisco"}, []string{"4"}},          // neighborhood
		{"TRENDY", []string{"San Francisco"}, []string{"4"}},           // tag
		{"mexican", []string{"Oakland"}, []string{"5"}},                // cuisine
		{"cafe", []string{"Oakland"}, []string{"2"}},                   // place type
		{"  oakland ", []string{"Oakland"}, []string{"2", "5"}},        // city, trimmed
		{"spot", []string{"Unknown"}, []string{"3"}},                   // name
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			groups := GroupByCity(ps, tt.term, DefaultLocale)
			assert.Equal(t, tt.cities, groupCities(groups))
			var got []string
			for _, g := range groups {
				got = append(got, ids(g.Places)...)
			}
			assert.Equal(t, tt.ids, got)
		})
	}
}

func TestGroupByCity_Empty(t *testing.T) {
	groups := GroupByCity(nil, "", DefaultLocale)
	require.NotNil(t, groups)
	assert.Empty(t, groups)

	assert.Empty(t, GroupByCity(groupFixture(), "zzz", DefaultLocale))
}
