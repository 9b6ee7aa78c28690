package storage

import (
	"context"

	"github.com/oxturret/turretweb/internal/model"
)

// Storage defines the interface for data persistence. Engine instances and
// live push connections are process-local and never stored here.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)

	// Lobby operations
	SaveLobby(ctx context.Context, lobby *model.Lobby) error
	GetLobby(ctx context.Context, id model.LobbyID) (*model.Lobby, error)
	LobbyExists(ctx context.Context, id model.LobbyID) (bool, error)
	// ListPublicLobbies returns lobbies created with IsPublic=true in
	// creation order.
	ListPublicLobbies(ctx context.Context) ([]*model.Lobby, error)
}
