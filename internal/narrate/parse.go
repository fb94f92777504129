package narrate

import (
	"strings"
)

// ParseLine parses one "section | headline | sub" line. It returns nil for
// preamble, blank lines, unknown sections and lines without a headline.
func ParseLine(line string) *Rewrite {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-* ")
	if line == "" || !strings.Contains(line, "|") {
		return nil
	}

	parts := strings.SplitN(line, "|", 3)
	section, ok := parseSection(parts[0])
	if !ok {
		return nil
	}

	rw := &Rewrite{Section: section}
	if len(parts) >= 2 {
		rw.Headline = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		rw.Sub = strings.TrimSpace(parts[2])
	}
	if rw.Headline == "" {
		return nil
	}
	return rw
}

// ParseResponse parses a model response, one slide per line. Later lines for
// the same section win.
func ParseResponse(raw string) []Rewrite {
	rewrites := make([]Rewrite, 0)
	seen := map[Section]int{}

	for _, line := range strings.Split(raw, "\n") {
		rw := ParseLine(line)
		if rw == nil {
			continue
		}
		if i, ok := seen[rw.Section]; ok {
			rewrites[i] = *rw
			continue
		}
		seen[rw.Section] = len(rewrites)
		rewrites = append(rewrites, *rw)
	}

	return rewrites
}

var sectionAliases = map[string]Section{
	"hero":      SectionHero,
	"balance":   SectionBalance,
	"cuisines":  SectionCuisines,
	"favorites": SectionFavorites,
	"toprated":  SectionTopRated,
	"bestvalue": SectionBestValue,
	"vibes":     SectionVibes,
	"closing":   SectionClosing,
}

func parseSection(s string) (Section, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "", "`", "", "*", "").Replace(key)
	sec, ok := sectionAliases[key]
	return sec, ok
}
