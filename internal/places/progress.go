package places

import (
	"strings"

	"github.com/vbonduro/tastetrails/internal/domain"
)

type ProgressReport struct {
	Total            int     `json:"total"`
	Complete         int     `json:"complete"`
	Incomplete       int     `json:"incomplete"`
	Percent          float64 `json:"percent"`
	NextIncompleteID string  `json:"nextIncompleteId,omitempty"`
	AllComplete      bool    `json:"allComplete"`
}

// IsComplete reports whether a place has been enriched: it has a type and a
// rating, and restaurants also have a cuisine.
func IsComplete(p domain.Place) bool {
	if strings.TrimSpace(p.PlaceType) == "" || p.Rating == nil {
		return false
	}
	if p.PlaceType == domain.TypeRestaurant && strings.TrimSpace(p.Cuisine) == "" {
		return false
	}
	return true
}

func Progress(ps []domain.Place) ProgressReport {
	r := ProgressReport{Total: len(ps)}
	for _, p := range ps {
		if IsComplete(p) {
			r.Complete++
			continue
		}
		r.Incomplete++
		if r.NextIncompleteID == "" {
			r.NextIncompleteID = p.ID
		}
	}
	if r.Total > 0 {
		r.Percent = float64(r.Complete) / float64(r.Total) * 100
	}
	r.AllComplete = r.Total > 0 && r.Incomplete == 0
	return r
}

// NextAfter returns the id of the place following id in collection order,
// which is how the enrichment flow steps through places. ok is false when id
// is the last place or is not in ps.
func NextAfter(ps []domain.Place, id string) (next string, ok bool) {
	for i, p := range ps {
		if p.ID != id {
			continue
		}
		if i+1 < len(ps) {
			return ps[i+1].ID, true
		}
		return "", false
	}
	return "", false
}
