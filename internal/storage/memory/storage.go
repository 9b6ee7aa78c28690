package memory

import (
	"context"
	"sync"

	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Values
// are copied on the way in and out so callers never share mutable state
// with the store or with each other.
type Storage struct {
	mu sync.RWMutex

	sessions   map[model.SessionID]*model.Session
	lobbies    map[model.LobbyID]*model.Lobby
	lobbyOrder []model.LobbyID // creation order, for ListPublicLobbies
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.Session),
		lobbies:  make(map[model.LobbyID]*model.Lobby),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func copySession(s *model.Session) *model.Session {
	dup := *s
	return &dup
}

func copyLobby(l *model.Lobby) *model.Lobby {
	dup := *l
	dup.Players = make(map[model.SessionID]model.PlayerRecord, len(l.Players))
	for id, record := range l.Players {
		dup.Players[id] = record
	}
	return &dup
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(session), nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

// Lobby operations

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lobbies[lobby.ID]; !ok {
		s.lobbyOrder = append(s.lobbyOrder, lobby.ID)
	}
	s.lobbies[lobby.ID] = copyLobby(lobby)
	return nil
}

func (s *Storage) GetLobby(ctx context.Context, id model.LobbyID) (*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobby, ok := s.lobbies[id]
	if !ok {
		return nil, model.ErrLobbyNotFound
	}
	return copyLobby(lobby), nil
}

func (s *Storage) LobbyExists(ctx context.Context, id model.LobbyID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lobbies[id]
	return ok, nil
}

func (s *Storage) ListPublicLobbies(ctx context.Context) ([]*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobbies := make([]*model.Lobby, 0)
	for _, id := range s.lobbyOrder {
		lobby, ok := s.lobbies[id]
		if ok && lobby.IsPublic {
			lobbies = append(lobbies, copyLobby(lobby))
		}
	}
	return lobbies, nil
}
