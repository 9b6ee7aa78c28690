package model

import (
	"encoding/json"
	"fmt"
)

// CommandType identifies a player action relayed between clients.
type CommandType string

const (
	CommandBuildTower   CommandType = "build_tower"
	CommandStartWave    CommandType = "start_wave"
	CommandUpgradeTower CommandType = "upgrade_tower"
	CommandSellTower    CommandType = "sell_tower"
)

// Command is the wire envelope for a player action: a type tag plus a
// type-specific payload. Dispatch on Type must handle every known kind and
// reject everything else; unknown types are an error, never a silent no-op.
type Command struct {
	Type CommandType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// BuildTowerData is the payload for build_tower commands. Coordinates are
// board pixels; the engine translates them to grid cells.
type BuildTowerData struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind int     `json:"kind"`
}

// TowerRefData is the payload for upgrade_tower and sell_tower commands,
// addressing a tower by its generation-checked (id, index) reference.
type TowerRefData struct {
	ID    uint32 `json:"id"`
	Index int    `json:"index"`
}

// ParseCommand decodes a command envelope from a request body.
// Unparseable JSON or a missing type tag yields ErrMalformedCommand;
// validation of the type tag itself happens at dispatch.
func ParseCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCommand, err)
	}
	if cmd.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedCommand)
	}
	return &cmd, nil
}

// BuildTowerData decodes the build_tower payload.
func (c *Command) BuildTowerData() (BuildTowerData, error) {
	var d BuildTowerData
	if err := json.Unmarshal(c.Data, &d); err != nil {
		return d, fmt.Errorf("%w: %w", ErrMalformedCommand, err)
	}
	return d, nil
}

// TowerRefData decodes the upgrade_tower/sell_tower payload.
func (c *Command) TowerRefData() (TowerRefData, error) {
	var d TowerRefData
	if err := json.Unmarshal(c.Data, &d); err != nil {
		return d, fmt.Errorf("%w: %w", ErrMalformedCommand, err)
	}
	return d, nil
}

// Encode serializes the command back into its wire envelope. Broadcasts
// carry this payload, not the resulting engine state.
func (c *Command) Encode() ([]byte, error) {
	return json.Marshal(c)
}
