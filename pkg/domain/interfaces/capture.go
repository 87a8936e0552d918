package interfaces

import (
	"context"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// CaptureUpdate is a partial update applied to a stored capture. Nil
// fields are left untouched.
type CaptureUpdate struct {
	Status   *types.ProcessingStatus
	Analysis *model.Analysis
	Error    *string
}

// CaptureRepository defines the interface for Capture data access
type CaptureRepository interface {
	// Create persists a new capture. Re-creating an existing ID is an
	// idempotent overwrite, not an error.
	Create(ctx context.Context, c *model.Capture) error

	// Update applies a partial update. An absent ID is tolerated as a
	// no-op: the pipeline must be able to finish even if the capture
	// disappeared underneath it.
	Update(ctx context.Context, id types.CaptureID, update *CaptureUpdate) error

	// Get retrieves a capture by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id types.CaptureID) (*model.Capture, error)

	// ListByOwnerAndDay returns the owner's captures within the UTC
	// calendar day, ordered by timestamp ascending.
	ListByOwnerAndDay(ctx context.Context, ownerID types.OwnerID, day types.DateKey) ([]*model.Capture, error)
}

// AggregateRepository defines the interface for DailyAggregate access
type AggregateRepository interface {
	// Get retrieves the aggregate for (owner, date). Returns (nil, nil)
	// when no aggregate has been persisted yet; absence is a normal state.
	Get(ctx context.Context, ownerID types.OwnerID, date types.DateKey) (*model.DailyAggregate, error)

	// Upsert stores the aggregate, replacing any prior document for the
	// same key wholesale.
	Upsert(ctx context.Context, agg *model.DailyAggregate) error
}
