package places

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vbonduro/tastetrails/internal/domain"
)

const (
	UntitledName = "Untitled"
	MinRating    = 1
	MaxRating    = 5
)

var (
	ErrParse         = errors.New("failed to parse JSON file")
	ErrEmptyImport   = errors.New("no valid places found in file")
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrInvalidPrice  = errors.New("price must be one of $, $$, $$$, $$$$")
	ErrMissingID     = errors.New("place id is required")
)

// Normalize converts a decoded JSON value into Place records. Anything other
// than an array yields an empty result; array elements that are not objects are
// dropped. It never fails.
func Normalize(raw any, now time.Time, newID func() string) []domain.Place {
	return normalizeAll(raw, now, newID, false)
}

// Restore is Normalize for a previously saved collection: a numeric
// updatedAt is kept instead of being reset to now.
func Restore(raw any, now time.Time, newID func() string) []domain.Place {
	return normalizeAll(raw, now, newID, true)
}

func normalizeAll(raw any, now time.Time, newID func() string, keepUpdated bool) []domain.Place {
	arr, ok := raw.([]any)
	if !ok {
		return []domain.Place{}
	}

	out := make([]domain.Place, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok || obj == nil {
			continue
		}
		out = append(out, normalizeOne(obj, now, newID, keepUpdated))
	}
	return out
}

func normalizeOne(obj map[string]any, now time.Time, newID func() string, keepUpdated bool) domain.Place {
	id := CoerceString(obj["id"], "")
	if id == "" {
		id = newID()
	}

	p := domain.Place{
		ID:           id,
		Name:         CoerceName(obj["name"]),
		PlaceType:    CoerceString(obj["placeType"], ""),
		Cuisine:      CoerceString(obj["cuisine"], ""),
		TopItem:      CoerceString(obj["topItem"], ""),
		Rating:       CoerceRating(obj["rating"]),
		IsFavorite:   CoerceBool(obj["isFavorite"]),
		Price:        CoercePrice(obj["price"]),
		Tags:         CoerceTags(obj["tags"]),
		Notes:        CoerceString(obj["notes"], ""),
		City:         CoerceString(obj["city"], ""),
		Neighborhood: CoerceString(obj["neighborhood"], ""),
		DateVisited:  CoerceString(obj["dateVisited"], ""),
		MapURL:       CoerceString(obj["mapUrl"], ""),
		WebsiteURL:   CoerceString(obj["websiteUrl"], ""),
		MenuURL:      CoerceString(obj["menuUrl"], ""),
		CreatedAt:    CoerceTimestamp(obj["createdAt"], now),
		UpdatedAt:    now.UnixMilli(),
	}
	if keepUpdated {
		p.UpdatedAt = CoerceTimestamp(obj["updatedAt"], now)
	}
	if p.UpdatedAt < p.CreatedAt {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}

// ParseImport decodes an import file and normalizes it. A single top-level
// object is accepted as a one-element collection.
func ParseImport(data []byte, now time.Time, newID func() string) ([]domain.Place, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if obj, ok := raw.(map[string]any); ok {
		raw = []any{obj}
	}

	ps := dedupeByID(Normalize(raw, now, newID))
	if len(ps) == 0 {
		return nil, ErrEmptyImport
	}
	return ps, nil
}

// dedupeByID keeps the first record for every id.
func dedupeByID(ps []domain.Place) []domain.Place {
	seen := make(map[string]struct{}, len(ps))
	out := ps[:0]
	for _, p := range ps {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ValidatePlace checks the invariants that manual input can violate.
func ValidatePlace(p domain.Place) error {
	if p.ID == "" {
		return ErrMissingID
	}
	if p.Rating != nil && (*p.Rating < MinRating || *p.Rating > MaxRating) {
		return ErrInvalidRating
	}
	if p.Price != "" && !p.Price.Valid() {
		return ErrInvalidPrice
	}
	return nil
}
