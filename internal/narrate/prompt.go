package narrate

import (
	"fmt"
	"strings"

	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/places"
)

// SystemPrompt is the shared instruction used by all model-backed narrators.
const SystemPrompt = `You write short, warm copy for a personal year-in-review of restaurants,
cafes and activities. Keep headlines under 60 characters and subs under 160.
Respond in plain text, one slide per line,
format: section | headline | sub`

// Prompt describes the recap and the slides to rewrite.
func Prompt(stats places.WrappedStats, story *Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Year: %d\n", stats.Year)
	fmt.Fprintf(&b, "Places explored: %d (%d food and drink, %d experiences)\n", stats.Total, stats.FoodCount, stats.ActivityCount)
	if len(stats.TopCuisines) > 0 {
		fmt.Fprintf(&b, "Top cuisines: %s\n", joinCounts(stats.TopCuisines))
	}
	if len(stats.Favorites) > 0 {
		fmt.Fprintf(&b, "Favorites: %s\n", joinNames(stats.Favorites))
	}
	if len(stats.TopRated) > 0 {
		fmt.Fprintf(&b, "Five-star places: %s\n", joinNames(stats.TopRated))
	}
	if len(stats.BestValue) > 0 {
		picks := make([]string, 0, len(stats.BestValue))
		for _, v := range stats.BestValue {
			picks = append(picks, fmt.Sprintf("%s (%s)", v.Place.Name, v.Place.Price))
		}
		fmt.Fprintf(&b, "Best value: %s\n", strings.Join(picks, ", "))
	}
	if len(stats.TopTags) > 0 {
		fmt.Fprintf(&b, "Top tags: %s\n", joinCounts(stats.TopTags))
	}

	b.WriteString("\nRewrite the headline and sub for these slides:\n")
	for _, sl := range story.Slides {
		fmt.Fprintf(&b, "%s | %s | %s\n", sl.Section, sl.Headline, sl.Sub)
	}
	return b.String()
}

func joinCounts(counts []places.Count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.Count))
	}
	return strings.Join(parts, ", ")
}

func joinNames(ps []domain.Place) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}
