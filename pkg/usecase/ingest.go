package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// SubmitInput is one decoded capture submission
type SubmitInput struct {
	ID         string          `json:"id,omitempty"`
	Timestamp  string          `json:"timestamp"`
	PhotoRef   string          `json:"photoRef,omitempty"`
	AudioRef   string          `json:"audioRef,omitempty"`
	Transcript string          `json:"transcript,omitempty"`
	Location   *model.Location `json:"location,omitempty"`
}

// SubmitCapture validates the submission and persists it in pending
// state. It does NOT schedule processing: the caller acknowledges the
// sender first and then calls ScheduleProcessing, so the ack always
// precedes any notification for the same capture.
func (uc *UseCases) SubmitCapture(ctx context.Context, ownerID types.OwnerID, in *SubmitInput) (*model.Capture, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "submission requires an owner")
	}

	id := types.CaptureID(in.ID)
	if id == "" {
		id = types.NewCaptureID()
	}

	ts, err := model.ParseTimestamp(in.Timestamp)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTimestamp, err.Error(), goerr.V("timestamp", in.Timestamp))
	}

	capture := &model.Capture{
		ID:         id,
		OwnerID:    ownerID,
		Timestamp:  ts,
		PhotoRef:   in.PhotoRef,
		AudioRef:   in.AudioRef,
		Transcript: in.Transcript,
		Location:   in.Location,
		Status:     types.ProcessingPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.repo.Capture().Create(ctx, capture); err != nil {
		return nil, goerr.Wrap(err, "failed to persist capture", goerr.V("captureID", id))
	}

	return capture, nil
}
