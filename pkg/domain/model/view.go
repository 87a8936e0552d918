package model

import (
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// CaptureView is the wire representation of a capture. Timestamps are
// serialized to the canonical UTC string form, and the legacy processed
// flag is derived from the tri-state status.
type CaptureView struct {
	ID              types.CaptureID        `json:"id"`
	OwnerID         types.OwnerID          `json:"ownerId"`
	Timestamp       string                 `json:"timestamp"`
	PhotoRef        string                 `json:"photoRef,omitempty"`
	AudioRef        string                 `json:"audioRef,omitempty"`
	Transcript      string                 `json:"transcript,omitempty"`
	Location        *Location              `json:"location,omitempty"`
	Status          types.ProcessingStatus `json:"status"`
	Processed       bool                   `json:"processed"`
	Analysis        *Analysis              `json:"analysis,omitempty"`
	ProcessingError string                 `json:"processingError,omitempty"`
}

// ToView converts a capture to its wire representation
func (c *Capture) ToView() *CaptureView {
	return &CaptureView{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Timestamp:       FormatTimestamp(c.Timestamp),
		PhotoRef:        c.PhotoRef,
		AudioRef:        c.AudioRef,
		Transcript:      c.Transcript,
		Location:        c.Location,
		Status:          c.Status.Normalize(),
		Processed:       c.Processed(),
		Analysis:        c.Analysis,
		ProcessingError: c.Error,
	}
}

// ToViews converts a capture list, preserving order
func ToViews(captures []*Capture) []*CaptureView {
	views := make([]*CaptureView, len(captures))
	for i, c := range captures {
		views[i] = c.ToView()
	}
	return views
}
