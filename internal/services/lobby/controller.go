package lobby

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	"github.com/oxturret/turretweb/internal/dependencies/random"
	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/storage"
)

const idBytes = 12

// Controller manages lobby lifecycle and membership.
type Controller struct {
	store  storage.Storage
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	// joinMu serializes the membership read-modify-write so two sessions
	// joining at once cannot overwrite each other's record.
	joinMu sync.Mutex
}

func NewController(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		store:  store,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("component", "lobby_controller")),
	}
}

// Create registers a new lobby with a random id.
func (c *Controller) Create(ctx context.Context, name string, numPlayers int, isPublic bool) (*model.Lobby, error) {
	now := c.clock.Now()
	lobby := &model.Lobby{
		ID:         model.LobbyID(c.random.Token(idBytes)),
		Name:       name,
		NumPlayers: numPlayers,
		IsPublic:   isPublic,
		Players:    make(map[model.SessionID]model.PlayerRecord),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.store.SaveLobby(ctx, lobby); err != nil {
		return nil, fmt.Errorf("saving new lobby: %w", err)
	}

	c.logger.Info("created lobby",
		slog.String("lobby_id", string(lobby.ID)),
		slog.String("name", name),
		slog.Bool("public", isPublic),
	)
	return lobby, nil
}

// Get fetches a lobby by id, returning model.ErrLobbyNotFound when it does
// not exist.
func (c *Controller) Get(ctx context.Context, id model.LobbyID) (*model.Lobby, error) {
	return c.store.GetLobby(ctx, id)
}

// ListPublic returns the public lobbies in creation order.
func (c *Controller) ListPublic(ctx context.Context) ([]*model.Lobby, error) {
	return c.store.ListPublicLobbies(ctx)
}

// AddPlayer records the session as a member of the lobby. Re-adding an
// existing member keeps the original join time.
func (c *Controller) AddPlayer(ctx context.Context, lobbyID model.LobbyID, sessionID model.SessionID) (*model.Lobby, error) {
	c.joinMu.Lock()
	defer c.joinMu.Unlock()

	lobby, err := c.store.GetLobby(ctx, lobbyID)
	if err != nil {
		return nil, err
	}

	if _, ok := lobby.Players[sessionID]; !ok {
		lobby.Players[sessionID] = model.PlayerRecord{
			ID:       sessionID,
			JoinedAt: c.clock.Now(),
		}
		lobby.UpdatedAt = c.clock.Now()
		if err := c.store.SaveLobby(ctx, lobby); err != nil {
			return nil, fmt.Errorf("saving lobby membership: %w", err)
		}
		c.logger.Info("player joined lobby",
			slog.String("lobby_id", string(lobbyID)),
			slog.String("session_id", string(sessionID)),
		)
	}

	return lobby, nil
}
