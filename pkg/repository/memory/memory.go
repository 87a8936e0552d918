package memory

import (
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend. It honors the same
// contracts as the Firestore backend and is used by tests and by
// --repository-backend=memory.
type Memory struct {
	capture   *captureRepository
	aggregate *aggregateRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		capture:   newCaptureRepository(),
		aggregate: newAggregateRepository(),
	}
}

func (m *Memory) Capture() interfaces.CaptureRepository {
	return m.capture
}

func (m *Memory) Aggregate() interfaces.AggregateRepository {
	return m.aggregate
}

func (m *Memory) Close() error {
	return nil
}
