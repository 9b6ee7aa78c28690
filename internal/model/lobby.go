package model

import (
	"sort"
	"time"
)

// LobbyID identifies a multiplayer match room.
type LobbyID string

// PlayerRecord represents a session's membership in a lobby.
// The session id is both the key and the id.
type PlayerRecord struct {
	ID       SessionID
	JoinedAt time.Time
}

// Lobby represents one multiplayer match room. Players are added when a
// session visits the lobby detail or play page and are never removed.
type Lobby struct {
	ID         LobbyID
	Name       string
	NumPlayers int // target player count, informational only
	IsPublic   bool
	Players    map[SessionID]PlayerRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GetPlayer returns the player record for a session, or nil if the session
// has not joined this lobby.
func (l *Lobby) GetPlayer(id SessionID) *PlayerRecord {
	if p, ok := l.Players[id]; ok {
		return &p
	}
	return nil
}

// PlayerList returns the players ordered by join time, ties broken by id.
func (l *Lobby) PlayerList() []PlayerRecord {
	players := make([]PlayerRecord, 0, len(l.Players))
	for _, p := range l.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players
}
