package model

import "time"

// SessionID is the opaque token identifying one browser identity.
// It doubles as the player id inside lobbies.
type SessionID string

// ConnectionID identifies one open server-to-client push stream.
type ConnectionID int64

// Session represents a server-recognized browser identity persisted via
// cookie. The set of live connection ids belonging to a session is runtime
// state and lives in the session service, not here.
type Session struct {
	ID        SessionID
	CreatedAt time.Time
	LastSeen  time.Time
}
