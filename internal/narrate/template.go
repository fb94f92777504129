package narrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/tastetrails/internal/places"
)

const SourceTemplate = "template"

// TemplateNarrator produces the built-in recap copy without any model call.
type TemplateNarrator struct{}

func NewTemplateNarrator() *TemplateNarrator {
	return &TemplateNarrator{}
}

func (TemplateNarrator) Narrate(ctx context.Context, stats places.WrappedStats) (*Story, error) {
	return Template(stats), nil
}

// Template returns the default story for stats. A locked recap only gets the
// hero slide plus a message explaining how to unlock the rest.
func Template(stats places.WrappedStats) *Story {
	story := &Story{Year: stats.Year, Locked: stats.Locked, Source: SourceTemplate}

	story.Slides = append(story.Slides, Slide{
		Section:     SectionHero,
		Headline:    fmt.Sprintf("Your %d Trail", stats.Year),
		Sub:         "Every place you went tells a story. Here’s what yours looked like.",
		MetricLabel: "places explored",
	})

	if stats.Locked {
		story.Message = fmt.Sprintf("Log at least %d places from %d to unlock your wrapped recap.", stats.MinTotal, stats.Year)
		return story
	}

	story.Slides = append(story.Slides, Slide{
		Section:  SectionBalance,
		Headline: "You didn’t just go out, you explored.",
		Micro:    "A balance of comfort and curiosity.",
	})

	if len(stats.TopCuisines) > 0 {
		sub := "You kept coming back to what you love."
		if names := topNames(stats.TopCuisines, 3); len(names) > 0 {
			sub = fmt.Sprintf("You kept coming back to what you love, especially %s.", strings.Join(names, ", "))
		}
		story.Slides = append(story.Slides, Slide{
			Section:  SectionCuisines,
			Headline: "Your comfort flavors showed up strong.",
			Sub:      sub,
			Micro:    "Familiar tastes, done really well.",
		})
	}

	if len(stats.Favorites) > 0 {
		story.Slides = append(story.Slides, Slide{
			Section:  SectionFavorites,
			Headline: "These places stood out.",
			Sub:      fmt.Sprintf("You marked %d places as favorites, the ones you’d go back to without thinking twice.", len(stats.Favorites)),
			Micro:    "Quality mattered more than quantity.",
		})
	}

	if len(stats.TopRated) > 0 {
		story.Slides = append(story.Slides, Slide{
			Section:  SectionTopRated,
			Headline: "You know what a 5-star experience feels like.",
			Sub:      "These places earned your top rating, not just good, but unforgettable.",
			Micro:    "No half-stars here.",
		})
	}

	if len(stats.BestValue) > 0 {
		story.Slides = append(story.Slides, Slide{
			Section:  SectionBestValue,
			Headline: "You found the sweet spot 😋",
			Sub:      "Great experiences don’t always have to be expensive. These places delivered the most value for their price.",
			Micro:    "Smart choices, well rewarded.",
		})
	}

	if len(stats.TopTags) > 0 {
		sub := "Your most common themes showed up again and again."
		if names := topNames(stats.TopTags, 3); len(names) > 0 {
			sub = fmt.Sprintf("Your most common themes were %s.", strings.Join(names, ", "))
		}
		story.Slides = append(story.Slides, Slide{
			Section:  SectionVibes,
			Headline: "Your year had a vibe 😎",
			Sub:      sub,
			Micro:    "That says more than you think.",
		})
	}

	story.Slides = append(story.Slides, Slide{
		Section:  SectionClosing,
		Headline: "That was your trail 🐾",
		Sub:      fmt.Sprintf("Every place added a little something to your year. Here’s to more great meals, moments, and memories in %d.", stats.Year+1),
		CTA:      "Keep Exploring",
	})

	return story
}

func topNames(counts []places.Count, n int) []string {
	names := make([]string, 0, n)
	for _, c := range counts {
		if len(names) == n {
			break
		}
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
