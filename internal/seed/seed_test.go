package seed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/tastetrails/internal/places"
)

func TestSamplePlaces(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	ps, err := SamplePlaces(now, uuid.NewString)
	require.NoError(t, err)
	require.Len(t, ps, 15)

	seen := map[string]bool{}
	for _, p := range ps {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.NoError(t, places.ValidatePlace(p))
		assert.Equal(t, now.UnixMilli(), p.CreatedAt)
	}

	assert.Equal(t, "Mama's Kitchen", ps[0].Name)
	assert.Equal(t, "Ice Cream Dreams", ps[14].Name)
}

func TestSamplePlacesUnlockWrapped(t *testing.T) {
	ps, err := SamplePlaces(time.Now(), uuid.NewString)
	require.NoError(t, err)

	s := places.ComputeWrapped(ps, places.WrappedOptions{Year: 2025})

	assert.True(t, s.UsingYearFilter)
	assert.False(t, s.Locked)
	assert.Equal(t, 14, s.Total)
}
