package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

type aggregateKey struct {
	ownerID types.OwnerID
	date    types.DateKey
}

type aggregateRepository struct {
	mu         sync.RWMutex
	aggregates map[aggregateKey]*model.DailyAggregate
}

func newAggregateRepository() *aggregateRepository {
	return &aggregateRepository{
		aggregates: make(map[aggregateKey]*model.DailyAggregate),
	}
}

func (r *aggregateRepository) Get(ctx context.Context, ownerID types.OwnerID, date types.DateKey) (*model.DailyAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agg, exists := r.aggregates[aggregateKey{ownerID: ownerID, date: date}]
	if !exists {
		return nil, nil
	}

	return agg.Clone(), nil
}

func (r *aggregateRepository) Upsert(ctx context.Context, agg *model.DailyAggregate) error {
	if err := agg.OwnerID.Validate(); err != nil {
		return goerr.Wrap(err, "aggregate requires an owner")
	}
	if err := agg.Date.Validate(); err != nil {
		return goerr.Wrap(err, "aggregate requires a date key")
	}

	stored := agg.Clone()
	stored.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Full replace, last writer wins
	r.aggregates[aggregateKey{ownerID: agg.OwnerID, date: agg.Date}] = stored
	return nil
}
