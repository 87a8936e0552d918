package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// Capture represents one observed moment submitted by a capture-role
// client. It is created in pending state and receives exactly one
// terminal status update from the processing pipeline.
type Capture struct {
	ID         types.CaptureID
	OwnerID    types.OwnerID
	Timestamp  time.Time // always UTC
	PhotoRef   string
	AudioRef   string
	Transcript string
	Location   *Location
	Status     types.ProcessingStatus
	Analysis   *Analysis
	// Error is the failure marker, set only when Status is failed. It is
	// the single field that distinguishes a failed capture from one that
	// has not been processed yet.
	Error     string
	CreatedAt time.Time
}

// Processed reports whether enrichment completed successfully
func (c *Capture) Processed() bool {
	return c.Status.Normalize() == types.ProcessingSucceeded
}

// DateKey returns the UTC calendar day bucket of the capture
func (c *Capture) DateKey() types.DateKey {
	return types.NewDateKey(c.Timestamp)
}

// Clone returns a deep copy of the capture
func (c *Capture) Clone() *Capture {
	copied := *c
	if c.Location != nil {
		loc := *c.Location
		copied.Location = &loc
	}
	if c.Analysis != nil {
		copied.Analysis = c.Analysis.Clone()
	}
	return &copied
}

// Analysis is the enrichment result derived from a capture's content
type Analysis struct {
	Title        string   `json:"title"`
	Highlights   []string `json:"highlights"`
	Mood         string   `json:"mood"`
	LocationHint string   `json:"locationHint,omitempty"`
	Themes       []string `json:"themes,omitempty"`
}

// Clone returns a deep copy of the analysis
func (a *Analysis) Clone() *Analysis {
	copied := *a
	copied.Highlights = append([]string(nil), a.Highlights...)
	copied.Themes = append([]string(nil), a.Themes...)
	return &copied
}

// Location is a hint about where a capture happened. Clients send either
// a structured object or a bare string; a bare string becomes Name.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// UnmarshalJSON accepts both the object form and a free-text string
func (l *Location) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Name = s
		return nil
	}

	type alias Location
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return goerr.Wrap(err, "invalid location")
	}
	*l = Location(a)
	return nil
}

// timestampLayouts are the accepted inbound timestamp forms. Offsets are
// normalized to UTC; a missing zone is treated as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // no zone: assume UTC
}

// ParseTimestamp parses an ISO-8601 timestamp string and normalizes it
// to UTC
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, goerr.New("timestamp is empty")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, goerr.New("timestamp is not ISO-8601", goerr.V("timestamp", s))
}

// FormatTimestamp renders the canonical UTC wire form: RFC3339 with a Z
// suffix, fractional seconds preserved when present
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
