package model

import (
	"time"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// DailyAggregate is the derived per-owner per-UTC-day summary over that
// day's captures. At most one exists per (owner, date); every pipeline
// run for the day replaces it wholesale (last writer wins).
type DailyAggregate struct {
	OwnerID    types.OwnerID
	Date       types.DateKey
	Summary    string
	Themes     []string
	CaptureIDs []types.CaptureID
	UpdatedAt  time.Time
}

// Clone returns a deep copy of the aggregate
func (a *DailyAggregate) Clone() *DailyAggregate {
	copied := *a
	copied.Themes = append([]string(nil), a.Themes...)
	copied.CaptureIDs = append([]types.CaptureID(nil), a.CaptureIDs...)
	return &copied
}

// ProcessedNotification is the advisory push sent to viewer-role sessions
// after a capture's pipeline run completes
type ProcessedNotification struct {
	Type      string          `json:"type"`
	Date      types.DateKey   `json:"date"`
	CaptureID types.CaptureID `json:"captureId"`
}

// NotificationTypeProcessed is the type tag of ProcessedNotification
const NotificationTypeProcessed = "memory_processed"

// NewProcessedNotification builds the notification for one capture
func NewProcessedNotification(date types.DateKey, id types.CaptureID) *ProcessedNotification {
	return &ProcessedNotification{
		Type:      NotificationTypeProcessed,
		Date:      date,
		CaptureID: id,
	}
}
