package sse

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	"github.com/oxturret/turretweb/internal/model"
)

const keepaliveInterval = 30 * time.Second

// SessionConnections tracks which connections belong to which session.
type SessionConnections interface {
	RegisterConnection(sessionID model.SessionID, connID model.ConnectionID)
	RemoveConnection(sessionID model.SessionID, connID model.ConnectionID)
}

// Serve runs an event stream over the given response writer until the client
// disconnects. The connection is registered against the session for the
// stream's lifetime.
func Serve(
	w http.ResponseWriter,
	r *http.Request,
	registry *Registry,
	sessions SessionConnections,
	sessionID model.SessionID,
	clk clock.Clock,
	logger *slog.Logger,
) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	conn := registry.Add(clk.Now())
	sessions.RegisterConnection(sessionID, conn.ID())
	defer func() {
		registry.Remove(conn.ID())
		sessions.RemoveConnection(sessionID, conn.ID())
	}()

	logger.Info("event stream opened",
		slog.Int64("connection_id", int64(conn.ID())),
		slog.String("session_id", string(sessionID)),
	)

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case payload := <-conn.Receive():
			if _, err := w.Write(Frame(payload)); err != nil {
				return nil
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return nil
			}
			flusher.Flush()
		case <-r.Context().Done():
			logger.Info("event stream closed",
				slog.Int64("connection_id", int64(conn.ID())),
			)
			return nil
		}
	}
}
