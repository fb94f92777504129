package places

import (
	"fmt"

	"github.com/vbonduro/tastetrails/internal/domain"
)

func intPtr(i int) *int { return &i }

// seqIDs returns an id generator producing gen-1, gen-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func names(ps []domain.Place) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func ids(ps []domain.Place) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
