package instance

import (
	"log/slog"
	"sync"

	"github.com/oxturret/turretweb/internal/game"
	"github.com/oxturret/turretweb/internal/model"
)

// Table holds the live game instance for each lobby. Instances are created
// lazily when the first player opens the play page and live for the process
// lifetime.
type Table struct {
	logger *slog.Logger

	mu    sync.Mutex
	games map[model.LobbyID]*game.Game
}

func NewTable(logger *slog.Logger) *Table {
	return &Table{
		logger: logger.With(slog.String("component", "instance_table")),
		games:  make(map[model.LobbyID]*game.Game),
	}
}

// GetOrCreate returns the lobby's game instance, creating it on first use.
func (t *Table) GetOrCreate(lobbyID model.LobbyID) *game.Game {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.games[lobbyID]
	if !ok {
		g = game.New()
		t.games[lobbyID] = g
		t.logger.Info("created game instance", slog.String("lobby_id", string(lobbyID)))
	}
	return g
}

// Get returns the lobby's game instance, or model.ErrGameNotFound when no
// instance has been created yet.
func (t *Table) Get(lobbyID model.LobbyID) (*game.Game, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.games[lobbyID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return g, nil
}
