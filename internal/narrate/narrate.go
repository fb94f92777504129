package narrate

import (
	"context"

	"github.com/vbonduro/tastetrails/internal/places"
)

type Section string

const (
	SectionHero      Section = "hero"
	SectionBalance   Section = "balance"
	SectionCuisines  Section = "cuisines"
	SectionFavorites Section = "favorites"
	SectionTopRated  Section = "topRated"
	SectionBestValue Section = "bestValue"
	SectionVibes     Section = "vibes"
	SectionClosing   Section = "closing"
)

// Narrator turns recap statistics into slide copy.
type Narrator interface {
	Narrate(ctx context.Context, stats places.WrappedStats) (*Story, error)
}

type Slide struct {
	Section     Section `json:"section"`
	Headline    string  `json:"headline"`
	Sub         string  `json:"sub,omitempty"`
	Micro       string  `json:"micro,omitempty"`
	MetricLabel string  `json:"metricLabel,omitempty"`
	CTA         string  `json:"cta,omitempty"`
}

type Story struct {
	Year    int     `json:"year"`
	Locked  bool    `json:"locked"`
	Message string  `json:"message,omitempty"`
	Source  string  `json:"source"`
	Slides  []Slide `json:"slides"`
}

// Slide returns the slide for section, or nil when the story has none.
func (s *Story) Slide(section Section) *Slide {
	for i := range s.Slides {
		if s.Slides[i].Section == section {
			return &s.Slides[i]
		}
	}
	return nil
}

// Rewrite is replacement copy for one slide as returned by a language model.
type Rewrite struct {
	Section  Section
	Headline string
	Sub      string
}

// Apply merges rewrites over story. Rewrites for sections the story does not
// contain are ignored, and a blank sub keeps the existing one.
func Apply(story *Story, rewrites []Rewrite, source string) *Story {
	out := *story
	out.Slides = append([]Slide(nil), story.Slides...)
	applied := false
	for _, rw := range rewrites {
		sl := out.Slide(rw.Section)
		if sl == nil {
			continue
		}
		sl.Headline = rw.Headline
		if rw.Sub != "" {
			sl.Sub = rw.Sub
		}
		applied = true
	}
	if applied {
		out.Source = source
	}
	return &out
}
