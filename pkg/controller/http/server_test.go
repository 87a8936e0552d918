package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/mnemosyne/pkg/controller/http"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
	"github.com/secmon-lab/mnemosyne/pkg/service/enrich"
	"github.com/secmon-lab/mnemosyne/pkg/service/hub"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
)

func newServer(t *testing.T, opts ...httpctrl.Options) *httptest.Server {
	t.Helper()

	uc := usecase.New(memory.New(), enrich.NewStatic(), hub.New())
	server := httptest.NewServer(httpctrl.New(uc, opts...))
	t.Cleanup(server.Close)
	return server
}

func TestHealth(t *testing.T) {
	server := newServer(t)

	resp := gt.R1(http.Get(server.URL + "/health")).NoError(t)
	defer resp.Body.Close()

	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	gt.Value(t, body["status"]).Equal("ok")
}

func TestWebsocketRoutes(t *testing.T) {
	server := newServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/capture/u1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	gt.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	gt.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"timestamp":"2024-01-01T10:00:00Z"}`)))
	gt.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(string(data), `"type":"ack"`)).True()
}

func TestMediaUploadNotConfigured(t *testing.T) {
	server := newServer(t)

	resp := gt.R1(http.Post(server.URL+"/api/media/u1", "image/jpeg", bytes.NewReader([]byte("blob")))).NoError(t)
	defer resp.Body.Close()

	gt.Value(t, resp.StatusCode).Equal(http.StatusNotImplemented)
}

type fakeMediaStore struct {
	lastOwner types.OwnerID
	lastName  string
	lastBody  []byte
}

func (s *fakeMediaStore) Put(_ context.Context, ownerID types.OwnerID, name string, _ string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.lastOwner = ownerID
	s.lastName = name
	s.lastBody = body
	return "gs://test-bucket/media/" + ownerID.String() + "/" + name, nil
}

func (s *fakeMediaStore) SignedURL(_ context.Context, ref string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + ref, nil
}

func TestMediaUpload(t *testing.T) {
	store := &fakeMediaStore{}
	server := newServer(t, httpctrl.WithMediaStore(store))

	resp := gt.R1(http.Post(server.URL+"/api/media/u1?name=photo.jpg", "image/jpeg", bytes.NewReader([]byte("blob")))).NoError(t)
	defer resp.Body.Close()

	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	gt.Bool(t, strings.HasPrefix(body["ref"], "gs://test-bucket/media/u1/")).True()
	gt.Bool(t, body["signedUrl"] != "").True()

	gt.Value(t, store.lastOwner).Equal(types.OwnerID("u1"))
	gt.Value(t, store.lastName).Equal("photo.jpg")
	gt.Value(t, string(store.lastBody)).Equal("blob")
}
