package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	"github.com/oxturret/turretweb/internal/dependencies/random"
	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/storage"
)

const tokenBytes = 20

// Service manages player sessions and tracks which event-stream connections
// belong to each session. Sessions persist in storage; the connection sets
// are in-memory only, since a connection cannot outlive the process.
type Service struct {
	store  storage.Storage
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[model.SessionID]map[model.ConnectionID]struct{}
}

func NewService(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("component", "session_service")),
		conns:  make(map[model.SessionID]map[model.ConnectionID]struct{}),
	}
}

// GetOrCreate resolves a cookie token to a session id, creating a fresh
// session when the token is empty or unknown.
func (s *Service) GetOrCreate(ctx context.Context, token string) (model.SessionID, error) {
	if token != "" {
		sess, err := s.store.GetSession(ctx, model.SessionID(token))
		if err == nil {
			sess.LastSeen = s.clock.Now()
			if err := s.store.SaveSession(ctx, sess); err != nil {
				return "", fmt.Errorf("refreshing session: %w", err)
			}
			return sess.ID, nil
		}
		if !errors.Is(err, model.ErrSessionNotFound) {
			return "", fmt.Errorf("looking up session: %w", err)
		}
	}

	now := s.clock.Now()
	sess := &model.Session{
		ID:        model.SessionID(s.random.Token(tokenBytes)),
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("created session", slog.String("session_id", string(sess.ID)))
	return sess.ID, nil
}

// Exists reports whether the token maps to a live session.
func (s *Service) Exists(ctx context.Context, token string) (bool, error) {
	return s.store.SessionExists(ctx, model.SessionID(token))
}

// RegisterConnection records that an event-stream connection belongs to the
// given session.
func (s *Service) RegisterConnection(sessionID model.SessionID, connID model.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.conns[sessionID]
	if !ok {
		set = make(map[model.ConnectionID]struct{})
		s.conns[sessionID] = set
	}
	set[connID] = struct{}{}
}

// RemoveConnection drops a connection from its session's set. Removing an
// unknown connection is a no-op.
func (s *Service) RemoveConnection(sessionID model.SessionID, connID model.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.conns[sessionID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(s.conns, sessionID)
	}
}

// Connections returns the ids of every connection currently registered for
// the session. The order is unspecified.
func (s *Service) Connections(sessionID model.SessionID) []model.ConnectionID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.conns[sessionID]
	ids := make([]model.ConnectionID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
