package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxturret/turretweb/internal/game"
)

func TestNewGameStartsInBuildingPhase(t *testing.T) {
	g := game.New()
	state := g.State()

	assert.Equal(t, game.PhaseBuilding, state.Phase)
	assert.Equal(t, game.ResultStillRunning, state.Result)
	assert.Equal(t, 200, state.Gold)
	assert.Equal(t, 10, state.Health)
	assert.Equal(t, 0, state.Level)
	assert.Empty(t, state.Towers)
}

func TestBuildTower(t *testing.T) {
	t.Run("places tower and deducts gold", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))

		state := g.State()
		require.Len(t, state.Towers, 1)
		assert.Equal(t, game.KindBasic, state.Towers[0].Kind)
		assert.Equal(t, 3, state.Towers[0].X)
		assert.Equal(t, 3, state.Towers[0].Y)
		assert.Equal(t, 200-game.BuildCost(game.KindBasic), state.Gold)
	})

	t.Run("rejects occupied cell", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		// Same cell, different coordinates within it.
		g.BuildTower(95, 105, int(game.KindBasic))

		state := g.State()
		assert.Len(t, state.Towers, 1)
		assert.Equal(t, 200-game.BuildCost(game.KindBasic), state.Gold)
	})

	t.Run("rejects insufficient gold", func(t *testing.T) {
		g := game.New()
		// Burn the bankroll on two sniper towers, then try a third.
		g.BuildTower(30, 30, int(game.KindSniper))
		g.BuildTower(90, 90, int(game.KindSniper))
		g.BuildTower(150, 150, int(game.KindSniper))

		state := g.State()
		assert.Len(t, state.Towers, 2)
		assert.Equal(t, 40, state.Gold)
	})

	t.Run("rejects out of bounds and unknown kinds", func(t *testing.T) {
		g := game.New()
		g.BuildTower(-30, 100, int(game.KindBasic))
		g.BuildTower(100, 1e6, int(game.KindBasic))
		g.BuildTower(100, 100, 99)

		state := g.State()
		assert.Empty(t, state.Towers)
		assert.Equal(t, 200, state.Gold)
	})

	t.Run("is a no-op while fighting", func(t *testing.T) {
		g := game.New()
		g.StartWave()
		g.BuildTower(100, 100, int(game.KindBasic))

		state := g.State()
		assert.Empty(t, state.Towers)
		assert.Equal(t, 200, state.Gold)
	})
}

func TestTowerAt(t *testing.T) {
	g := game.New()
	g.BuildTower(100, 100, int(game.KindBasic))

	ref := g.TowerAt(95, 105)
	require.NotNil(t, ref)

	assert.Nil(t, g.TowerAt(200, 200))
	assert.Nil(t, g.TowerAt(-5, 100))
}

func TestUpgradeTower(t *testing.T) {
	t.Run("raises level and deducts gold", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		g.UpgradeTower(*ref)

		state := g.State()
		require.Len(t, state.Towers, 1)
		assert.Equal(t, 1, state.Towers[0].Level)
		expected := 200 - game.BuildCost(game.KindBasic) - game.UpgradeCost(game.KindBasic, 0)
		assert.Equal(t, expected, state.Gold)
	})

	t.Run("stops at the top of the upgrade path", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		for i := 0; i < 10; i++ {
			g.UpgradeTower(*ref)
		}

		state := g.State()
		assert.Equal(t, 2, state.Towers[0].Level)
	})

	t.Run("ignores stale refs", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		g.SellTower(*ref)
		// Slot gets reused by a new tower with a new id.
		g.BuildTower(100, 100, int(game.KindBasic))

		goldBefore := g.State().Gold
		g.UpgradeTower(*ref)

		state := g.State()
		assert.Equal(t, goldBefore, state.Gold)
		assert.Equal(t, 0, state.Towers[0].Level)
	})
}

func TestSellTower(t *testing.T) {
	t.Run("refunds the base cost", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		g.UpgradeTower(*ref)
		g.SellTower(*ref)

		state := g.State()
		assert.Empty(t, state.Towers)
		assert.Equal(t, 200-game.UpgradeCost(game.KindBasic, 0), state.Gold)
	})

	t.Run("double sell has no effect", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		g.SellTower(*ref)
		g.SellTower(*ref)

		assert.Equal(t, 200, g.State().Gold)
	})

	t.Run("frees the cell for a new tower", func(t *testing.T) {
		g := game.New()
		g.BuildTower(100, 100, int(game.KindBasic))
		ref := g.TowerAt(100, 100)
		require.NotNil(t, ref)

		g.SellTower(*ref)
		g.BuildTower(100, 100, int(game.KindSniper))

		state := g.State()
		require.Len(t, state.Towers, 1)
		assert.Equal(t, game.KindSniper, state.Towers[0].Kind)
	})
}

func TestStartWave(t *testing.T) {
	g := game.New()
	g.StartWave()
	assert.Equal(t, game.PhaseFighting, g.State().Phase)

	// A second StartWave during fighting is a no-op.
	g.StartWave()
	assert.Equal(t, game.PhaseFighting, g.State().Phase)
}

func TestUpdateState(t *testing.T) {
	t.Run("is a no-op while building", func(t *testing.T) {
		g := game.New()
		g.UpdateState()
		assert.Equal(t, game.PhaseBuilding, g.State().Phase)
		assert.Equal(t, 0, g.State().CreepCount)
	})

	t.Run("spawns creeps while fighting", func(t *testing.T) {
		g := game.New()
		g.StartWave()
		g.UpdateState()
		assert.Equal(t, 1, g.State().CreepCount)
	})

	t.Run("undefended waves eventually kill the player", func(t *testing.T) {
		g := game.New()

		for i := 0; i < 100000; i++ {
			if g.State().Phase == game.PhaseBuilding {
				g.StartWave()
			}
			g.UpdateState()
			if g.State().Result != game.ResultStillRunning {
				break
			}
		}

		state := g.State()
		assert.Equal(t, game.ResultCreepsWon, state.Result)
		assert.Equal(t, 0, state.Health)
	})

	t.Run("finished wave returns to building at the next level", func(t *testing.T) {
		g := game.New()
		g.StartWave()

		// Level 0 sends 5 creeps; undefended, all 5 leak and the wave
		// ends with the player alive.
		for i := 0; i < 100000; i++ {
			g.UpdateState()
			if g.State().Phase == game.PhaseBuilding {
				break
			}
		}

		state := g.State()
		assert.Equal(t, game.PhaseBuilding, state.Phase)
		assert.Equal(t, 1, state.Level)
		assert.Equal(t, 5, state.Health)
		assert.Equal(t, game.ResultStillRunning, state.Result)
	})

	t.Run("towers near the path kill creeps and earn bounties", func(t *testing.T) {
		g := game.New()
		// Sniper next to the creep spawn point.
		g.BuildTower(30, 30, int(game.KindSniper))
		g.StartWave()

		for i := 0; i < 100000; i++ {
			g.UpdateState()
			if g.State().Phase == game.PhaseBuilding {
				break
			}
		}

		state := g.State()
		assert.Greater(t, state.Gold, 200-game.BuildCost(game.KindSniper))
		assert.Greater(t, state.Health, 5)
	})
}
