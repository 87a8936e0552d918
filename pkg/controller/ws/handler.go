package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
	"github.com/secmon-lab/mnemosyne/pkg/utils/safe"
)

// Handler upgrades websocket requests and runs the per-role read loops
type Handler struct {
	uc       *usecase.UseCases
	upgrader websocket.Upgrader
}

// New creates a websocket handler backed by the given use cases
func New(uc *usecase.UseCases) *Handler {
	return &Handler{
		uc: uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Clients are native apps, not browsers; there is no origin
			// to enforce.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleCapture serves GET /ws/capture/{ownerID}
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, types.RoleCapture, h.captureLoop)
}

// HandleViewer serves GET /ws/viewer/{ownerID}
func (h *Handler) HandleViewer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, types.RoleViewer, h.viewerLoop)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, role types.SessionRole, loop func(ctx context.Context, ownerID types.OwnerID, sess *session, conn *websocket.Conn)) {
	ownerID := types.OwnerID(chi.URLParam(r, "ownerID"))
	if err := ownerID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "websocket handshake rejected"), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response
		errutil.Handle(r.Context(), goerr.Wrap(err, "upgrade rejected", goerr.V("ownerID", ownerID)), "websocket upgrade failed")
		return
	}

	ctx := r.Context()
	logger := logging.From(ctx)
	sess := newSession(conn)

	h.uc.Hub().Register(role, ownerID, sess)
	logger.Info("session opened", "role", role, "owner_id", ownerID, "remote", r.RemoteAddr)

	defer func() {
		h.uc.Hub().Unregister(role, ownerID, sess)
		safe.Close(ctx, sess)
		logger.Info("session closed", "role", role, "owner_id", ownerID)
	}()

	loop(ctx, ownerID, sess, conn)
}

// captureLoop consumes capture submissions. A malformed or rejected
// message gets a structured error reply and the loop continues; only a
// transport-level read or write failure ends the session. The ack is
// written before the pipeline is scheduled, so for any single capture
// the ack always precedes its processed notification.
func (h *Handler) captureLoop(ctx context.Context, ownerID types.OwnerID, sess *session, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var in usecase.SubmitInput
		if err := json.Unmarshal(data, &in); err != nil {
			if err := h.reply(ctx, sess, errorReply{Error: errInvalidJSON}); err != nil {
				return
			}
			continue
		}

		capture, err := h.uc.SubmitCapture(ctx, ownerID, &in)
		if err != nil {
			code := errSubmissionFailed
			if errors.Is(err, usecase.ErrInvalidTimestamp) {
				code = errInvalidTimestamp
			} else {
				errutil.Handle(ctx, err, "capture submission failed")
			}
			if err := h.reply(ctx, sess, errorReply{Error: code, Detail: err.Error()}); err != nil {
				return
			}
			continue
		}

		ack := ackReply{
			OK:        true,
			Type:      "ack",
			ID:        capture.ID,
			Timestamp: model.FormatTimestamp(capture.Timestamp),
		}
		if err := h.reply(ctx, sess, ack); err != nil {
			return
		}

		h.uc.ScheduleProcessing(ctx, capture)
	}
}

// viewerLoop answers day-fetch requests on demand. Unsolicited
// processed notifications for the same owner arrive on this connection
// too, pushed by pipelines through the hub.
func (h *Handler) viewerLoop(ctx context.Context, ownerID types.OwnerID, sess *session, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req viewerRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := h.reply(ctx, sess, errorReply{Error: errInvalidJSON}); err != nil {
				return
			}
			continue
		}

		if req.Type != requestTypeFetchDailyMemories {
			if err := h.reply(ctx, sess, errorReply{
				Error:  errUnknownRequestType,
				Detail: req.Type,
			}); err != nil {
				return
			}
			continue
		}

		result, err := h.uc.FetchDailyMemories(ctx, ownerID, req.Date)
		if err != nil {
			code := errQueryFailed
			if errors.Is(err, usecase.ErrInvalidDate) {
				code = errInvalidDate
			} else {
				errutil.Handle(ctx, err, "daily memories query failed")
			}
			if err := h.reply(ctx, sess, errorReply{Error: code, Detail: err.Error()}); err != nil {
				return
			}
			continue
		}

		reply := dailyMemoriesReply{
			OK:            true,
			Type:          "daily_memories",
			Date:          result.Date,
			Summary:       result.Summary,
			Themes:        result.Themes,
			Captures:      model.ToViews(result.Captures),
			TotalCaptures: result.Total,
		}
		if err := h.reply(ctx, sess, reply); err != nil {
			return
		}
	}
}

func (h *Handler) reply(ctx context.Context, sess *session, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal websocket reply")
	}
	return sess.Send(ctx, payload)
}
