package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

type captureRepository struct {
	mu       sync.RWMutex
	captures map[types.CaptureID]*model.Capture
}

func newCaptureRepository() *captureRepository {
	return &captureRepository{
		captures: make(map[types.CaptureID]*model.Capture),
	}
}

func (r *captureRepository) Create(ctx context.Context, c *model.Capture) error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "capture requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Idempotent overwrite: re-submitting the same ID replaces the doc
	r.captures[c.ID] = c.Clone()
	return nil
}

func (r *captureRepository) Update(ctx context.Context, id types.CaptureID, update *interfaces.CaptureUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.captures[id]
	if !exists {
		// Absence is tolerated, not reported
		return nil
	}

	if update.Status != nil {
		c.Status = *update.Status
	}
	if update.Analysis != nil {
		c.Analysis = update.Analysis.Clone()
	}
	if update.Error != nil {
		c.Error = *update.Error
	}

	return nil
}

func (r *captureRepository) Get(ctx context.Context, id types.CaptureID) (*model.Capture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.captures[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "capture not found", goerr.V("captureID", id))
	}

	return c.Clone(), nil
}

func (r *captureRepository) ListByOwnerAndDay(ctx context.Context, ownerID types.OwnerID, day types.DateKey) ([]*model.Capture, error) {
	start, end, err := day.DayRange()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Capture, 0)
	for _, c := range r.captures {
		if c.OwnerID != ownerID {
			continue
		}
		if c.Timestamp.Before(start) || !c.Timestamp.Before(end) {
			continue
		}
		result = append(result, c.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID < result[j].ID
		}
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result, nil
}
