package hub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// Session is one live connection owned by the hub for its lifetime. The
// websocket controller implements it; the hub itself never touches
// sockets, which keeps it testable without a transport.
type Session interface {
	Send(ctx context.Context, payload []byte) error
	Close() error
}

// Hub tracks live sessions per role and per owner and provides
// best-effort one-to-many push. It is the only shared mutable in-process
// structure: every handler and every pipeline run goes through it
// concurrently, so all bucket access is serialized by a single mutex.
// The lock is never held across a send.
type Hub struct {
	mu      sync.Mutex
	buckets map[types.SessionRole]map[types.OwnerID]map[Session]struct{}
}

// New creates an empty hub
func New() *Hub {
	return &Hub{
		buckets: make(map[types.SessionRole]map[types.OwnerID]map[Session]struct{}),
	}
}

// Register adds the session to the (role, owner) bucket. Registering the
// same session twice is a no-op.
func (h *Hub) Register(role types.SessionRole, ownerID types.OwnerID, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	owners, exists := h.buckets[role]
	if !exists {
		owners = make(map[types.OwnerID]map[Session]struct{})
		h.buckets[role] = owners
	}

	sessions, exists := owners[ownerID]
	if !exists {
		sessions = make(map[Session]struct{})
		owners[ownerID] = sessions
	}

	sessions[s] = struct{}{}
}

// Unregister removes the session from its bucket. Removing a session
// that was never registered (or was already removed) is a no-op. Empty
// owner buckets are deleted so the map does not grow with churned
// owners.
func (h *Hub) Unregister(role types.SessionRole, ownerID types.OwnerID, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	owners, exists := h.buckets[role]
	if !exists {
		return
	}

	sessions, exists := owners[ownerID]
	if !exists {
		return
	}

	delete(sessions, s)
	if len(sessions) == 0 {
		delete(owners, ownerID)
	}
}

// Count returns the number of live sessions in the (role, owner) bucket
func (h *Hub) Count(role types.SessionRole, ownerID types.OwnerID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.buckets[role][ownerID])
}

// PushToOwner delivers the message to every session registered for
// (role, owner), best-effort. With no registered sessions it is a silent
// no-op. A send failure on one session never blocks the others: the dead
// session is unregistered and closed, so the hub converges to only-live
// sessions. The returned error covers only message encoding.
func (h *Hub) PushToOwner(ctx context.Context, role types.SessionRole, ownerID types.OwnerID, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal push message",
			goerr.V("role", role),
			goerr.V("ownerID", ownerID),
		)
	}

	// Snapshot the bucket, then send with the lock released: a slow or
	// stuck send must not stall registration traffic, and a concurrent
	// unregister must not invalidate the iteration.
	h.mu.Lock()
	sessions := make([]Session, 0, len(h.buckets[role][ownerID]))
	for s := range h.buckets[role][ownerID] {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		if err := s.Send(ctx, payload); err != nil {
			logging.From(ctx).Warn("dropping dead session after failed push",
				"role", role,
				"owner_id", ownerID,
				"error", err.Error(),
			)
			h.Unregister(role, ownerID, s)
			if err := s.Close(); err != nil {
				logging.From(ctx).Debug("failed to close dead session", "error", err.Error())
			}
		}
	}

	return nil
}
