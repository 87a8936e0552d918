package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// DailyMemories is the result of a day-fetch query
type DailyMemories struct {
	Date     types.DateKey
	Summary  string
	Themes   []string
	Captures []*model.Capture
	Total    int
}

// FetchDailyMemories returns the owner's captures for one UTC day
// together with the best-available aggregate. When no aggregate has been
// persisted yet (pipeline still running, or nothing ever enriched) one
// is computed on the fly and NOT persisted: only the pipeline writes
// aggregates.
func (uc *UseCases) FetchDailyMemories(ctx context.Context, ownerID types.OwnerID, dateStr string) (*DailyMemories, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "query requires an owner")
	}

	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidDate, err.Error(), goerr.V("date", dateStr))
	}

	captures, err := uc.repo.Capture().ListByOwnerAndDay(ctx, ownerID, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list captures",
			goerr.V("ownerID", ownerID),
			goerr.V("date", date),
		)
	}

	agg, err := uc.repo.Aggregate().Get(ctx, ownerID, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get aggregate",
			goerr.V("ownerID", ownerID),
			goerr.V("date", date),
		)
	}
	if agg == nil {
		agg = BuildDailyAggregate(ownerID, date, captures)
	}

	themes := agg.Themes
	if themes == nil {
		themes = []string{}
	}

	return &DailyMemories{
		Date:     date,
		Summary:  agg.Summary,
		Themes:   themes,
		Captures: captures,
		Total:    len(captures),
	}, nil
}
