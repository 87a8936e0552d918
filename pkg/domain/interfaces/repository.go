package interfaces

// Repository defines the interface for data persistence. Two backends
// implement it: Firestore for production and an in-memory variant for
// tests and offline development.
type Repository interface {
	Capture() CaptureRepository
	Aggregate() AggregateRepository

	Close() error
}
