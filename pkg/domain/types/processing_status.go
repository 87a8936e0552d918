package types

import "fmt"

// ProcessingStatus is the tri-state enrichment status of a capture.
// The status alone distinguishes "not yet processed" from "processing
// failed"; callers must not infer either from the absence of an analysis.
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingSucceeded ProcessingStatus = "succeeded"
	ProcessingFailed    ProcessingStatus = "failed"
)

// AllProcessingStatuses returns all valid processing statuses
func AllProcessingStatuses() []ProcessingStatus {
	return []ProcessingStatus{
		ProcessingPending,
		ProcessingSucceeded,
		ProcessingFailed,
	}
}

// IsValid checks if the processing status is valid
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case ProcessingPending, ProcessingSucceeded, ProcessingFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is a terminal state
func (s ProcessingStatus) IsTerminal() bool {
	return s == ProcessingSucceeded || s == ProcessingFailed
}

// Normalize returns the status, treating empty as ProcessingPending for
// documents written before the status field existed.
func (s ProcessingStatus) Normalize() ProcessingStatus {
	if s == "" {
		return ProcessingPending
	}
	return s
}

// String returns the string representation of the processing status
func (s ProcessingStatus) String() string {
	return string(s)
}

// ParseProcessingStatus parses a string into a ProcessingStatus
func ParseProcessingStatus(s string) (ProcessingStatus, error) {
	status := ProcessingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid processing status: %s", s)
	}
	return status, nil
}
