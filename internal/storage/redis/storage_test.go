package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/oxturret/turretweb/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	cfg.LobbyTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	now := time.Now().UTC().Truncate(time.Second)
	session := &model.Session{ID: "tok-1", CreatedAt: now, LastSeen: now}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.True(session.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, &model.Session{ID: "tok-1"})

	exists, err = s.storage.SessionExists(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSessionExpiry() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{ID: "tok-1"})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Lobby tests

func (s *StorageSuite) TestSaveAndGetLobby() {
	lobby := &model.Lobby{
		ID:         "lobby-1",
		Name:       "Test",
		NumPlayers: 4,
		IsPublic:   true,
		Players: map[model.SessionID]model.PlayerRecord{
			"tok-1": {ID: "tok-1"},
		},
	}

	err := s.storage.SaveLobby(s.ctx, lobby)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLobby(s.ctx, "lobby-1")
	s.Require().NoError(err)
	s.Equal(lobby.Name, retrieved.Name)
	s.Equal(lobby.NumPlayers, retrieved.NumPlayers)
	s.Contains(retrieved.Players, model.SessionID("tok-1"))
}

func (s *StorageSuite) TestGetLobbyNotFound() {
	_, err := s.storage.GetLobby(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestListPublicLobbiesOrderAndVisibility() {
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "first", IsPublic: true})
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "private", IsPublic: false})
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "second", IsPublic: true})

	lobbies, err := s.storage.ListPublicLobbies(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(lobbies, 2)
	s.Equal(model.LobbyID("first"), lobbies[0].ID)
	s.Equal(model.LobbyID("second"), lobbies[1].ID)
}

func (s *StorageSuite) TestListPublicLobbiesResaveKeepsOrder() {
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "a", IsPublic: true})
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "b", IsPublic: true})
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "a", Name: "renamed", IsPublic: true})

	lobbies, err := s.storage.ListPublicLobbies(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(lobbies, 2)
	s.Equal(model.LobbyID("a"), lobbies[0].ID)
	s.Equal("renamed", lobbies[0].Name)
}

func (s *StorageSuite) TestListPublicLobbiesSkipsExpired() {
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{ID: "a", IsPublic: true})

	s.mini.FastForward(2 * time.Hour)

	lobbies, err := s.storage.ListPublicLobbies(s.ctx)
	s.Require().NoError(err)
	s.Empty(lobbies)
}
