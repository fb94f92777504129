package narrate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/places"
)

func intPtr(v int) *int { return &v }

func unlockedStats() places.WrappedStats {
	return places.WrappedStats{
		Year: 2025, MinTotal: 5, Total: 6, UsingYearFilter: true,
		FoodCount: 4, ActivityCount: 2,
		TopCuisines: []places.Count{{Name: "Japanese", Count: 2}, {Name: "Italian", Count: 1}},
		Favorites:   []domain.Place{{ID: "a", Name: "Sushi Den"}, {ID: "b", Name: "Trattoria"}},
		TopRated:    []domain.Place{{ID: "a", Name: "Sushi Den", Rating: intPtr(5)}},
		BestValue: []places.ValuePick{
			{Place: domain.Place{ID: "c", Name: "Taco Stand", Price: domain.PriceLow, Rating: intPtr(5)}, ValueScore: 5},
		},
		TopTags: []places.Count{{Name: "Cozy", Count: 3}, {Name: "Hidden Gem", Count: 2}, {Name: "Casual", Count: 1}, {Name: "Trendy", Count: 1}},
	}
}

func sections(s *Story) []Section {
	out := make([]Section, 0, len(s.Slides))
	for _, sl := range s.Slides {
		out = append(out, sl.Section)
	}
	return out
}

func TestTemplateUnlocked(t *testing.T) {
	story := Template(unlockedStats())

	assert.Equal(t, 2025, story.Year)
	assert.False(t, story.Locked)
	assert.Equal(t, SourceTemplate, story.Source)
	assert.Equal(t, []Section{
		SectionHero, SectionBalance, SectionCuisines, SectionFavorites,
		SectionTopRated, SectionBestValue, SectionVibes, SectionClosing,
	}, sections(story))

	assert.Equal(t, "Your 2025 Trail", story.Slide(SectionHero).Headline)
	assert.Equal(t, "You kept coming back to what you love, especially Japanese, Italian.", story.Slide(SectionCuisines).Sub)
	assert.Contains(t, story.Slide(SectionFavorites).Sub, "You marked 2 places as favorites")
	assert.Equal(t, "Your most common themes were Cozy, Hidden Gem, Casual.", story.Slide(SectionVibes).Sub)
	assert.Contains(t, story.Slide(SectionClosing).Sub, "memories in 2026.")
	assert.Equal(t, "Keep Exploring", story.Slide(SectionClosing).CTA)
}

func TestTemplateSkipsEmptySections(t *testing.T) {
	stats := places.WrappedStats{
		Year: 2025, MinTotal: 5, Total: 5, ActivityCount: 5,
		TopCuisines: []places.Count{}, Favorites: []domain.Place{}, TopRated: []domain.Place{},
		BestValue: []places.ValuePick{}, TopTags: []places.Count{},
	}

	story := Template(stats)
	assert.Equal(t, []Section{SectionHero, SectionBalance, SectionClosing}, sections(story))
}

func TestTemplateLocked(t *testing.T) {
	story := Template(places.WrappedStats{Year: 2025, MinTotal: 5, Total: 3, Locked: true})

	assert.True(t, story.Locked)
	assert.Equal(t, []Section{SectionHero}, sections(story))
	assert.Equal(t, "Log at least 5 places from 2025 to unlock your wrapped recap.", story.Message)
}

func TestTemplateNarrator(t *testing.T) {
	story, err := NewTemplateNarrator().Narrate(context.Background(), unlockedStats())
	require.NoError(t, err)
	assert.Equal(t, Template(unlockedStats()), story)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected *Rewrite
	}{
		{
			name:     "full line",
			line:     "hero | A year of flavor | You went everywhere.",
			expected: &Rewrite{Section: SectionHero, Headline: "A year of flavor", Sub: "You went everywhere."},
		},
		{
			name:     "headline only",
			line:     "closing | See you next year",
			expected: &Rewrite{Section: SectionClosing, Headline: "See you next year"},
		},
		{
			name:     "section spelled with spaces and bullet",
			line:     "- Top Rated | Five stars, zero regrets | ",
			expected: &Rewrite{Section: SectionTopRated, Headline: "Five stars, zero regrets"},
		},
		{
			name:     "sub keeps extra pipes",
			line:     "vibes | Cozy all year | cozy | trendy",
			expected: &Rewrite{Section: SectionVibes, Headline: "Cozy all year", Sub: "cozy | trendy"},
		},
		{name: "unknown section", line: "weather | Sunny | warm", expected: nil},
		{name: "no pipe", line: "Here are your slides:", expected: nil},
		{name: "blank headline", line: "hero |  | sub", expected: nil},
		{name: "empty", line: "   ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLine(tt.line))
		})
	}
}

func TestParseResponse(t *testing.T) {
	raw := `Here is your copy:
hero | Your 2025 in bites | A year well tasted.
balance | Out and about |

hero | Your 2025, plated | Second try.`

	got := ParseResponse(raw)
	assert.Equal(t, []Rewrite{
		{Section: SectionHero, Headline: "Your 2025, plated", Sub: "Second try."},
		{Section: SectionBalance, Headline: "Out and about"},
	}, got)

	assert.Empty(t, ParseResponse("nothing useful"))
}

func TestApply(t *testing.T) {
	story := Template(unlockedStats())
	originalBalanceMicro := story.Slide(SectionBalance).Micro

	merged := Apply(story, []Rewrite{
		{Section: SectionHero, Headline: "Your year, plated", Sub: "Six places, zero regrets."},
		{Section: SectionBalance, Headline: "Food and fun"},
	}, "claude")

	assert.Equal(t, "claude", merged.Source)
	assert.Equal(t, "Your year, plated", merged.Slide(SectionHero).Headline)
	assert.Equal(t, "Six places, zero regrets.", merged.Slide(SectionHero).Sub)
	assert.Equal(t, "Food and fun", merged.Slide(SectionBalance).Headline)
	assert.Equal(t, "A balance of comfort and curiosity.", originalBalanceMicro)
	assert.Equal(t, originalBalanceMicro, merged.Slide(SectionBalance).Micro)

	// The input story is untouched.
	assert.Equal(t, "Your 2025 Trail", story.Slide(SectionHero).Headline)
	assert.Equal(t, SourceTemplate, story.Source)
}

func TestApplyIgnoresMissingSections(t *testing.T) {
	story := Template(places.WrappedStats{Year: 2025, MinTotal: 5, Total: 2, Locked: true})

	merged := Apply(story, []Rewrite{{Section: SectionVibes, Headline: "Vibes"}}, "ollama")
	assert.Equal(t, SourceTemplate, merged.Source)
	assert.Equal(t, story.Slides, merged.Slides)
}

func TestPrompt(t *testing.T) {
	stats := unlockedStats()
	prompt := Prompt(stats, Template(stats))

	assert.Contains(t, prompt, "Year: 2025")
	assert.Contains(t, prompt, "Top cuisines: Japanese (2), Italian (1)")
	assert.Contains(t, prompt, "Favorites: Sushi Den, Trattoria")
	assert.Contains(t, prompt, "Best value: Taco Stand ($)")
	assert.Contains(t, prompt, "hero | Your 2025 Trail |")
	assert.Equal(t, 8, strings.Count(prompt[strings.Index(prompt, "Rewrite"):], "|")/2)
}
