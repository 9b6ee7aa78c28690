package instance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/services/instance"
	"github.com/oxturret/turretweb/internal/testutil"
)

func TestTable(t *testing.T) {
	t.Run("get before create", func(t *testing.T) {
		table := instance.NewTable(testutil.NopLogger())
		_, err := table.Get("lobby-a")
		assert.ErrorIs(t, err, model.ErrGameNotFound)
	})

	t.Run("instances are created once and shared", func(t *testing.T) {
		table := instance.NewTable(testutil.NopLogger())

		first := table.GetOrCreate("lobby-a")
		second := table.GetOrCreate("lobby-a")
		assert.Same(t, first, second)

		got, err := table.Get("lobby-a")
		require.NoError(t, err)
		assert.Same(t, first, got)
	})

	t.Run("lobbies get distinct instances", func(t *testing.T) {
		table := instance.NewTable(testutil.NopLogger())
		a := table.GetOrCreate("lobby-a")
		b := table.GetOrCreate("lobby-b")
		assert.NotSame(t, a, b)
	})
}
