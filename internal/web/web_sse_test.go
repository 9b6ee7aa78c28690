package web_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxturret/turretweb/internal/factory"
)

// streamRecorder is a response writer for long-lived streaming handlers.
// Unlike httptest.ResponseRecorder it is safe to inspect while the handler
// goroutine is still writing.
type streamRecorder struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	header http.Header
	code   int
	wrote  chan struct{}
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{
		header: make(http.Header),
		wrote:  make(chan struct{}, 64),
	}
}

func (r *streamRecorder) Header() http.Header {
	return r.header
}

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code == 0 {
		r.code = code
	}
}

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	n, err := r.buf.Write(b)
	r.mu.Unlock()

	select {
	case r.wrote <- struct{}{}:
	default:
	}
	return n, err
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// eventStream is one open /sse request running in the background.
type eventStream struct {
	recorder *streamRecorder
	cancel   context.CancelFunc
	done     chan struct{}
}

// openStream starts the browser's event stream for the lobby and waits for
// the connection to register.
func openStream(t *testing.T, ts *webTestServer, b *browser, lobbyID string) *eventStream {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/play/"+lobbyID+"/sse", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	req.SetBasicAuth(factory.TestCredentials.Username, factory.TestCredentials.Password)
	b.cookies.addTo(req)

	before := ts.app.Connections.Count()

	stream := &eventStream{
		recorder: newStreamRecorder(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go func() {
		ts.handler.ServeHTTP(stream.recorder, req)
		close(stream.done)
	}()

	require.Eventually(t, func() bool {
		return ts.app.Connections.Count() == before+1
	}, time.Second, 2*time.Millisecond, "Stream connection never registered")

	return stream
}

// close shuts the stream down and returns everything it received.
func (s *eventStream) close(t *testing.T) string {
	t.Helper()
	s.cancel()
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("stream handler did not stop")
	}
	return s.recorder.body()
}

// awaitWrite blocks until the handler writes something to the stream.
func (s *eventStream) awaitWrite(t *testing.T) {
	t.Helper()
	select {
	case <-s.recorder.wrote:
	case <-time.After(time.Second):
		t.Fatal("no stream write arrived")
	}
}

func TestEventStream(t *testing.T) {
	t.Run("commands reach every player's stream, sender included", func(t *testing.T) {
		ts := newWebTestServer(t)

		sender := ts.browser()
		id := sender.createLobby("game", true)
		require.Equal(t, http.StatusOK, sender.get("/play/"+id).Code)

		other := ts.browser()
		require.Equal(t, http.StatusOK, other.get("/play/"+id).Code)

		senderStream := openStream(t, ts, sender, id)
		otherStream := openStream(t, ts, other, id)

		rr := sender.postJSON("/play/"+id, `{"type":"start_wave"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		senderStream.awaitWrite(t)
		otherStream.awaitWrite(t)

		assert.Contains(t, senderStream.close(t), "data: {\"type\":\"start_wave\"}\n\n")
		assert.Contains(t, otherStream.close(t), "data: {\"type\":\"start_wave\"}\n\n")
	})

	t.Run("payload data is relayed verbatim", func(t *testing.T) {
		ts := newWebTestServer(t)
		b := ts.browser()
		id := b.createLobby("game", true)
		require.Equal(t, http.StatusOK, b.get("/play/"+id).Code)

		stream := openStream(t, ts, b, id)

		rr := b.postJSON("/play/"+id, `{"type":"build_tower","data":{"x":100,"y":100,"kind":0}}`)
		require.Equal(t, http.StatusOK, rr.Code)

		stream.awaitWrite(t)
		body := stream.close(t)
		assert.Contains(t, body, `"type":"build_tower"`)
		assert.Contains(t, body, `"kind":0`)
	})

	t.Run("closing the stream removes the connection", func(t *testing.T) {
		ts := newWebTestServer(t)
		b := ts.browser()
		id := b.createLobby("game", true)
		require.Equal(t, http.StatusOK, b.get("/play/"+id).Code)

		stream := openStream(t, ts, b, id)
		require.Equal(t, 1, ts.app.Connections.Count())

		stream.close(t)
		assert.Equal(t, 0, ts.app.Connections.Count())

		// Commands still succeed with nobody listening.
		rr := b.postJSON("/play/"+id, `{"type":"start_wave"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("streams from another lobby do not receive the command", func(t *testing.T) {
		ts := newWebTestServer(t)

		a := ts.browser()
		lobbyA := a.createLobby("lobby a", true)
		require.Equal(t, http.StatusOK, a.get("/play/"+lobbyA).Code)

		b := ts.browser()
		lobbyB := b.createLobby("lobby b", true)
		require.Equal(t, http.StatusOK, b.get("/play/"+lobbyB).Code)

		streamB := openStream(t, ts, b, lobbyB)

		rr := a.postJSON("/play/"+lobbyA, `{"type":"start_wave"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		assert.NotContains(t, streamB.close(t), "start_wave")
	})
}
