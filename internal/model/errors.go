package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Lobby errors
	ErrLobbyNotFound = errors.New("lobby not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Command errors
	ErrMalformedCommand    = errors.New("malformed command")
	ErrUnrecognizedCommand = errors.New("unrecognized command type")
)
