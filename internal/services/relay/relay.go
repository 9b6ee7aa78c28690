package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oxturret/turretweb/internal/game"
	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/services/instance"
	"github.com/oxturret/turretweb/internal/services/lobby"
	"github.com/oxturret/turretweb/internal/services/session"
	"github.com/oxturret/turretweb/internal/web/sse"
)

// Relay applies a player command to the lobby's game instance and fans the
// raw command out to every connection of every lobby member, sender
// included. Fan-out is best effort: connections that have gone away or
// cannot keep up are skipped, never failed on.
type Relay struct {
	lobbies     *lobby.Controller
	instances   *instance.Table
	sessions    *session.Service
	connections *sse.Registry
	logger      *slog.Logger
}

func New(
	lobbies *lobby.Controller,
	instances *instance.Table,
	sessions *session.Service,
	connections *sse.Registry,
	logger *slog.Logger,
) *Relay {
	return &Relay{
		lobbies:     lobbies,
		instances:   instances,
		sessions:    sessions,
		connections: connections,
		logger:      logger.With(slog.String("component", "relay")),
	}
}

// HandleCommand validates and applies a command, then broadcasts it.
// It returns model.ErrLobbyNotFound or model.ErrGameNotFound when the
// target does not exist, model.ErrMalformedCommand for undecodable
// payloads, and model.ErrUnrecognizedCommand for unknown type tags. No
// broadcast happens on any error.
func (r *Relay) HandleCommand(ctx context.Context, lobbyID model.LobbyID, senderID model.SessionID, cmd *model.Command) error {
	target, err := r.lobbies.Get(ctx, lobbyID)
	if err != nil {
		return err
	}

	// Commands never create an instance; only opening the play page does.
	g, err := r.instances.Get(lobbyID)
	if err != nil {
		return err
	}

	if err := r.apply(g, cmd); err != nil {
		return err
	}

	payload, err := cmd.Encode()
	if err != nil {
		return fmt.Errorf("encoding command for broadcast: %w", err)
	}

	for playerID := range target.Players {
		for _, connID := range r.sessions.Connections(playerID) {
			conn := r.connections.Get(connID)
			if conn == nil {
				r.logger.Warn("skipping vanished connection",
					slog.Int64("connection_id", int64(connID)),
					slog.String("session_id", string(playerID)),
				)
				continue
			}
			if !conn.Send(payload) {
				r.logger.Warn("dropped broadcast to slow connection",
					slog.Int64("connection_id", int64(connID)),
					slog.String("lobby_id", string(lobbyID)),
				)
			}
		}
	}

	r.logger.Debug("relayed command",
		slog.String("lobby_id", string(lobbyID)),
		slog.String("sender", string(senderID)),
		slog.String("type", string(cmd.Type)),
	)
	return nil
}

func (r *Relay) apply(g *game.Game, cmd *model.Command) error {
	switch cmd.Type {
	case model.CommandBuildTower:
		data, err := cmd.BuildTowerData()
		if err != nil {
			return err
		}
		g.BuildTower(data.X, data.Y, data.Kind)
	case model.CommandStartWave:
		g.StartWave()
	case model.CommandUpgradeTower:
		data, err := cmd.TowerRefData()
		if err != nil {
			return err
		}
		g.UpgradeTower(game.TowerRef{ID: data.ID, Index: data.Index})
	case model.CommandSellTower:
		data, err := cmd.TowerRefData()
		if err != nil {
			return err
		}
		g.SellTower(game.TowerRef{ID: data.ID, Index: data.Index})
	default:
		return fmt.Errorf("%w: %q", model.ErrUnrecognizedCommand, cmd.Type)
	}
	return nil
}
