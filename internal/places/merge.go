package places

import (
	"errors"
	"fmt"

	"github.com/vbonduro/tastetrails/internal/domain"
)

type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportMerge   ImportMode = "merge"
)

var ErrInvalidImportMode = errors.New("invalid import mode")

func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ImportReplace, ImportMerge:
		return ImportMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportMode, s)
	}
}

// Merge combines the current collection with an imported one. With
// ImportMerge, imported records whose id already exists are discarded and the
// existing record is kept as is; with ImportReplace the import becomes the
// collection. In both modes added counts the imported records whose id was
// not present before.
func Merge(current, imported []domain.Place, mode ImportMode) (result []domain.Place, added int) {
	existing := make(map[string]struct{}, len(current))
	for _, p := range current {
		existing[p.ID] = struct{}{}
	}

	if len(current) == 0 || mode == ImportReplace {
		for _, p := range imported {
			if _, dup := existing[p.ID]; !dup {
				added++
			}
		}
		return append([]domain.Place{}, imported...), added
	}

	result = make([]domain.Place, 0, len(current)+len(imported))
	result = append(result, current...)
	for _, p := range imported {
		if _, dup := existing[p.ID]; dup {
			continue
		}
		existing[p.ID] = struct{}{}
		result = append(result, p)
		added++
	}
	return result, added
}
