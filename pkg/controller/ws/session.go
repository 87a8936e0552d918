package ws

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
)

// session adapts one websocket connection to the hub's Session
// contract. gorilla/websocket allows a single concurrent writer per
// connection, so every write, whether a direct reply from the read loop
// or an unsolicited push from a pipeline, goes through the same mutex.
type session struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	once    sync.Once
}

func newSession(conn *websocket.Conn) *session {
	return &session{conn: conn}
}

func (s *session) Send(_ context.Context, payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return goerr.Wrap(err, "failed to write websocket message")
	}
	return nil
}

// Close is safe to call more than once; the hub may close a session it
// detected as dead while the read loop is closing it on its own exit.
func (s *session) Close() error {
	var err error
	s.once.Do(func() {
		err = s.conn.Close()
	})
	return err
}
