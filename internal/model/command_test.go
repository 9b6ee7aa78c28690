package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_BuildTower(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"build_tower","data":{"x":90.0,"y":30.0,"kind":2}}`))
	require.NoError(t, err)
	assert.Equal(t, CommandBuildTower, cmd.Type)

	data, err := cmd.BuildTowerData()
	require.NoError(t, err)
	assert.Equal(t, 90.0, data.X)
	assert.Equal(t, 30.0, data.Y)
	assert.Equal(t, 2, data.Kind)
}

func TestParseCommand_StartWaveWithoutData(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"start_wave"}`))
	require.NoError(t, err)
	assert.Equal(t, CommandStartWave, cmd.Type)
	assert.Nil(t, cmd.Data)
}

func TestParseCommand_Malformed(t *testing.T) {
	_, err := ParseCommand([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrMalformedCommand)

	_, err = ParseCommand([]byte(`{"data":{"x":1}}`))
	assert.ErrorIs(t, err, ErrMalformedCommand)
}

func TestCommand_EncodePreservesEnvelope(t *testing.T) {
	raw := []byte(`{"type":"sell_tower","data":{"id":3,"index":1}}`)
	cmd, err := ParseCommand(raw)
	require.NoError(t, err)

	out, err := cmd.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestCommand_EncodeOmitsEmptyData(t *testing.T) {
	cmd := &Command{Type: CommandStartWave}
	out, err := cmd.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"start_wave"}`, string(out))
}
