package enrich

import (
	"context"
	"strings"

	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
)

// Static is a deterministic enricher used when no LLM backend is
// configured, and by tests. Identical captures always yield identical
// analyses.
type Static struct{}

var _ interfaces.Enricher = &Static{}

// NewStatic creates a deterministic local enricher
func NewStatic() *Static {
	return &Static{}
}

const highlightLimit = 120

// themeKeywords maps trivial transcript keywords to theme buckets
var themeKeywords = map[string][]string{
	"friends":  {"friend", "friends", "together", "party"},
	"work":     {"work", "meeting", "office", "project"},
	"travel":   {"trip", "travel", "flight", "train", "drive"},
	"food":     {"lunch", "dinner", "breakfast", "coffee", "eat"},
	"outdoors": {"walk", "park", "garden", "beach", "hike"},
}

// themeOrder keeps theme output stable regardless of map iteration
var themeOrder = []string{"friends", "work", "travel", "food", "outdoors"}

func (s *Static) Analyze(ctx context.Context, capture *model.Capture) (*model.Analysis, error) {
	transcript := strings.TrimSpace(capture.Transcript)

	highlight := "No transcript provided"
	if transcript != "" {
		highlight = transcript
		if len(highlight) > highlightLimit {
			highlight = highlight[:highlightLimit] + "..."
		}
	}

	analysis := &model.Analysis{
		Title:      "Captured moment",
		Highlights: []string{highlight},
		Mood:       "positive",
		Themes:     detectThemes(transcript),
	}

	if capture.Location != nil {
		analysis.LocationHint = capture.Location.Name
	}

	return analysis, nil
}

func detectThemes(transcript string) []string {
	if transcript == "" {
		return nil
	}
	lowered := strings.ToLower(transcript)

	var themes []string
	for _, theme := range themeOrder {
		for _, kw := range themeKeywords[theme] {
			if strings.Contains(lowered, kw) {
				themes = append(themes, theme)
				break
			}
		}
	}
	return themes
}
