// Package seed provides the collection a first run starts with.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/places"
)

//go:embed sample.json
var sampleJSON []byte

// SamplePlaces returns the sample collection, stamped with now.
func SamplePlaces(now time.Time, newID func() string) ([]domain.Place, error) {
	var raw any
	if err := json.Unmarshal(sampleJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode sample data: %w", err)
	}
	return places.Normalize(raw, now, newID), nil
}
