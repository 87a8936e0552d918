package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/async"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// ScheduleProcessing runs the capture's processing pipeline as a
// detached task. It returns immediately: the caller's latency never
// depends on enrichment, and a pipeline failure or delay never reaches
// the session that submitted the capture. Once scheduled, a run is not
// cancellable; disconnecting the originating session does not affect it.
func (uc *UseCases) ScheduleProcessing(ctx context.Context, capture *model.Capture) {
	c := capture.Clone()
	uc.inflight.Add(1)

	async.Dispatch(ctx, func(ctx context.Context) error {
		defer uc.inflight.Done()

		if err := uc.pipelineSem.Acquire(ctx, 1); err != nil {
			uc.markFailed(ctx, c.ID, err)
			return goerr.Wrap(err, "failed to acquire pipeline slot", goerr.V("captureID", c.ID))
		}
		defer uc.pipelineSem.Release(1)

		return uc.processCapture(ctx, c)
	})
}

// processCapture executes the per-capture pipeline in strict order:
// enrich, attach analysis, recompute the day's aggregate, notify
// viewers. There is no ordering across different captures' runs; two
// pipelines for the same day race on the aggregate upsert and the last
// writer wins, each having re-read the full day before writing.
func (uc *UseCases) processCapture(ctx context.Context, c *model.Capture) error {
	logger := logging.From(ctx)

	analysis, err := uc.enricher.Analyze(ctx, c)
	if err != nil {
		uc.markFailed(ctx, c.ID, err)
		return goerr.Wrap(err, "enrichment failed", goerr.V("captureID", c.ID))
	}

	succeeded := types.ProcessingSucceeded
	if err := uc.repo.Capture().Update(ctx, c.ID, &interfaces.CaptureUpdate{
		Status:   &succeeded,
		Analysis: analysis,
	}); err != nil {
		uc.markFailed(ctx, c.ID, err)
		return goerr.Wrap(err, "failed to store analysis", goerr.V("captureID", c.ID))
	}

	date := c.DateKey()
	captures, err := uc.repo.Capture().ListByOwnerAndDay(ctx, c.OwnerID, date)
	if err != nil {
		uc.markFailed(ctx, c.ID, err)
		return goerr.Wrap(err, "failed to list day captures",
			goerr.V("captureID", c.ID),
			goerr.V("date", date),
		)
	}

	agg := BuildDailyAggregate(c.OwnerID, date, captures)
	if err := uc.repo.Aggregate().Upsert(ctx, agg); err != nil {
		uc.markFailed(ctx, c.ID, err)
		return goerr.Wrap(err, "failed to upsert aggregate",
			goerr.V("captureID", c.ID),
			goerr.V("date", date),
		)
	}

	// Advisory push to live viewers; delivery failure is not a pipeline
	// failure and the capture stays succeeded.
	notification := model.NewProcessedNotification(date, c.ID)
	if err := uc.sessions.PushToOwner(ctx, types.RoleViewer, c.OwnerID, notification); err != nil {
		logger.Warn("failed to push processed notification",
			"capture_id", c.ID,
			"owner_id", c.OwnerID,
			"error", err.Error(),
		)
	}

	logger.Info("capture processed",
		"capture_id", c.ID,
		"owner_id", c.OwnerID,
		"date", date,
		"day_captures", len(captures),
	)
	return nil
}

// markFailed records the terminal failure state, best-effort. When even
// this update fails there is nothing left to do but log: the pipeline is
// fire-and-forget and must never raise into its scheduler.
func (uc *UseCases) markFailed(ctx context.Context, id types.CaptureID, cause error) {
	failed := types.ProcessingFailed
	msg := cause.Error()

	if err := uc.repo.Capture().Update(ctx, id, &interfaces.CaptureUpdate{
		Status: &failed,
		Error:  &msg,
	}); err != nil {
		logging.From(ctx).Error("failed to mark capture failure",
			"capture_id", id,
			"cause", cause.Error(),
			"error", err.Error(),
		)
	}
}
