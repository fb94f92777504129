package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/tastetrails/internal/domain"
)

func browseFixture() []domain.Place {
	return []domain.Place{
		{ID: "1", Name: "taco Express", PlaceType: domain.TypeRestaurant, Cuisine: "Mexican", City: "Oakland", Rating: intPtr(4), DateVisited: "2025-04-20", UpdatedAt: 300},
		{ID: "2", Name: "Blue Bottle Coffee", PlaceType: domain.TypeCafe, Cuisine: "American", City: "Oakland", Rating: intPtr(4), DateVisited: "2025-02-03", UpdatedAt: 100, IsFavorite: true},
		{ID: "3", Name: "Sushi Harbor", PlaceType: domain.TypeRestaurant, Cuisine: "Japanese", City: "San Francisco", Rating: intPtr(5), DateVisited: "not a date", UpdatedAt: 500},
		{ID: "4", Name: "Alcatraz Tour", PlaceType: domain.TypeActivity, City: "San Francisco", UpdatedAt: 0},
		{ID: "5", Name: "Éclair Corner", PlaceType: domain.TypeDessert, City: "Berkeley", Rating: intPtr(5), DateVisited: "2025-03-10", UpdatedAt: 200, IsFavorite: true},
	}
}

func TestView_NameSortIsPermutation(t *testing.T) {
	ps := browseFixture()

	got := View(ps, Query{Sort: SortName})

	assert.Equal(t, []string{"Alcatraz Tour", "Blue Bottle Coffee", "Éclair Corner", "Sushi Harbor", "taco Express"}, names(got))
	assert.ElementsMatch(t, ids(ps), ids(got))
	// Input order is untouched.
	assert.Equal(t, "1", ps[0].ID)
}

func TestView_Search(t *testing.T) {
	ps := browseFixture()

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"4", "2", "5", "3", "1"}},
		{"OAK", []string{"2", "1"}},          // city
		{"japan", []string{"3"}},             // cuisine
		{"tour", []string{"4"}},              // name
		{"nowhere", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := View(ps, Query{Search: tt.term})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestView_Filters(t *testing.T) {
	ps := browseFixture()

	assert.Equal(t, []string{"3", "1"}, ids(View(ps, Query{PlaceType: domain.TypeRestaurant})))
	assert.Equal(t, []string{"1"}, ids(View(ps, Query{Cuisine: "Mexican"})))
	assert.Equal(t, []string{"5", "3"}, ids(View(ps, Query{MinRating: 5})))
	assert.Len(t, View(ps, Query{MinRating: 0}), len(ps))
	assert.Equal(t, []string{"1"}, ids(View(ps, Query{Search: "o", PlaceType: domain.TypeRestaurant, MinRating: 4, Cuisine: "Mexican"})))
}

func TestView_FavoritesOnlyIdempotent(t *testing.T) {
	ps := browseFixture()

	once := View(ps, Query{FavoritesOnly: true})
	twice := View(once, Query{FavoritesOnly: true})

	require.NotEmpty(t, once)
	for _, p := range once {
		assert.True(t, p.IsFavorite)
	}
	assert.Equal(t, once, twice)
}

func TestView_SortRating(t *testing.T) {
	got := View(browseFixture(), Query{Sort: SortRating})
	// Ties keep input order; unrated counts as 0.
	assert.Equal(t, []string{"3", "5", "1", "2", "4"}, ids(got))
}

func TestView_SortDate(t *testing.T) {
	got := View(browseFixture(), Query{Sort: SortDate})
	// Unparsable and missing dates go last, in input order.
	assert.Equal(t, []string{"1", "5", "2", "3", "4"}, ids(got))
}

func TestView_SortUpdated(t *testing.T) {
	got := View(browseFixture(), Query{Sort: SortUpdated})
	assert.Equal(t, []string{"3", "1", "5", "2", "4"}, ids(got))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortName, k)

	for _, s := range []string{"name", "rating", "date", "updated"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err = ParseSortKey("price")
	assert.ErrorIs(t, err, ErrInvalidSort)
}
