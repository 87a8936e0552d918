package usecase

import (
	"fmt"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// EmptyDaySummary is the fixed summary for a day with no captures
const EmptyDaySummary = "No captures for this day."

// BuildDailyAggregate computes the aggregate for one owner-day from the
// day's captures, ordered by timestamp. It is a pure function: identical
// capture sets yield byte-identical summaries and themes, which is what
// makes the pipeline's replace-style upsert idempotent.
func BuildDailyAggregate(ownerID types.OwnerID, date types.DateKey, captures []*model.Capture) *model.DailyAggregate {
	agg := &model.DailyAggregate{
		OwnerID:    ownerID,
		Date:       date,
		Themes:     []string{},
		CaptureIDs: make([]types.CaptureID, 0, len(captures)),
	}

	if len(captures) == 0 {
		agg.Summary = EmptyDaySummary
		return agg
	}

	if len(captures) == 1 {
		agg.Summary = "You captured 1 moment today."
	} else {
		agg.Summary = fmt.Sprintf("You captured %d moments today.", len(captures))
	}

	// Union of analysis themes in first-seen order. Captures still
	// pending or failed contribute their ID but no themes; the set is
	// tolerant of partially-processed siblings.
	seen := make(map[string]bool)
	for _, c := range captures {
		agg.CaptureIDs = append(agg.CaptureIDs, c.ID)
		if c.Analysis == nil {
			continue
		}
		for _, theme := range c.Analysis.Themes {
			if !seen[theme] {
				seen[theme] = true
				agg.Themes = append(agg.Themes, theme)
			}
		}
	}

	return agg
}
