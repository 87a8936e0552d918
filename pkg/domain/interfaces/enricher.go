package interfaces

import (
	"context"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
)

// Enricher derives an analysis from a capture's content. Implementations
// may be slow and may fail; the pipeline treats both as expected.
type Enricher interface {
	Analyze(ctx context.Context, c *model.Capture) (*model.Analysis, error)
}
