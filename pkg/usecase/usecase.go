package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/service/hub"
)

// DefaultPipelineConcurrency caps concurrently running capture
// pipelines. Enrichment calls dominate each run, so this is effectively
// the in-flight LLM request budget.
const DefaultPipelineConcurrency = 16

// UseCases bundles the application logic around one repository, one
// enricher and one session hub. It is constructed once at startup and
// passed into every controller; there is no package-level state.
type UseCases struct {
	repo     interfaces.Repository
	enricher interfaces.Enricher
	sessions *hub.Hub

	pipelineSem *semaphore.Weighted
	inflight    sync.WaitGroup
}

// Option is a functional option for UseCases
type Option func(*UseCases)

// WithPipelineConcurrency overrides the pipeline concurrency cap
func WithPipelineConcurrency(n int64) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.pipelineSem = semaphore.NewWeighted(n)
		}
	}
}

// New creates the use case layer
func New(repo interfaces.Repository, enricher interfaces.Enricher, sessions *hub.Hub, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		enricher:    enricher,
		sessions:    sessions,
		pipelineSem: semaphore.NewWeighted(DefaultPipelineConcurrency),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Hub returns the session hub
func (uc *UseCases) Hub() *hub.Hub {
	return uc.sessions
}

// Drain blocks until all scheduled pipelines finish or the context
// expires. Used by graceful shutdown; new work can still be scheduled
// while draining, the caller is expected to have stopped ingestion.
func (uc *UseCases) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
