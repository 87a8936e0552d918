package ws

import (
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// Error codes sent in error envelopes. A structured error never closes
// the session; the client may keep sending on the same connection.
const (
	errInvalidJSON        = "invalid_json"
	errInvalidTimestamp   = "invalid_timestamp"
	errInvalidDate        = "invalid_date"
	errUnknownRequestType = "unknown_request_type"
	errSubmissionFailed   = "submission_failed"
	errQueryFailed        = "query_failed"
)

type ackReply struct {
	OK        bool            `json:"ok"`
	Type      string          `json:"type"`
	ID        types.CaptureID `json:"id"`
	Timestamp string          `json:"timestamp"`
}

type errorReply struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type viewerRequest struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

type dailyMemoriesReply struct {
	OK            bool                 `json:"ok"`
	Type          string               `json:"type"`
	Date          types.DateKey        `json:"date"`
	Summary       string               `json:"summary"`
	Themes        []string             `json:"themes"`
	Captures      []*model.CaptureView `json:"captures"`
	TotalCaptures int                  `json:"totalCaptures"`
}

const requestTypeFetchDailyMemories = "fetch_daily_memories"
