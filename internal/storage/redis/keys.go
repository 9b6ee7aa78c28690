package redis

import (
	"fmt"

	"github.com/oxturret/turretweb/internal/model"
)

// Key prefix for all server data
const keyPrefix = "turret"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// lobbyKey returns the Redis key for a Lobby
func lobbyKey(id model.LobbyID) string {
	return fmt.Sprintf("%s:lobby:%s", keyPrefix, id)
}

// lobbyOrderKey returns the Redis key for the LIST of lobby ids in
// creation order
func lobbyOrderKey() string {
	return fmt.Sprintf("%s:idx:lobby_order", keyPrefix)
}
