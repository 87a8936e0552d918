package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CaptureID identifies a single capture record. Clients may supply their
// own opaque ID; the server generates a UUID when absent.
type CaptureID string

// NewCaptureID generates a new UUID v4 CaptureID
func NewCaptureID() CaptureID {
	return CaptureID(uuid.New().String())
}

// String returns the string representation of the capture ID
func (id CaptureID) String() string {
	return string(id)
}

// Validate checks if the capture ID is non-empty
func (id CaptureID) Validate() error {
	if id == "" {
		return goerr.New("capture ID is empty")
	}
	return nil
}

// OwnerID identifies the user that owns captures, aggregates and sessions
type OwnerID string

// String returns the string representation of the owner ID
func (id OwnerID) String() string {
	return string(id)
}

// Validate checks if the owner ID is non-empty
func (id OwnerID) Validate() error {
	if id == "" {
		return goerr.New("owner ID is empty")
	}
	return nil
}
