package game

import (
	"math"
	"sync"
)

// Phase describes what the game currently accepts: tower placement while
// building, simulation while fighting.
type Phase string

const (
	PhaseBuilding Phase = "building"
	PhaseFighting Phase = "fighting"
)

// Result summarises a finished (or running) game.
type Result string

const (
	ResultStillRunning Result = "still_running"
	ResultCreepsWon    Result = "creeps_won"
	ResultPlayerWon    Result = "player_won"
)

const (
	boardWidth  = 40
	boardHeight = 30
	cellLength  = 30.0

	startingGold   = 200
	startingHealth = 10
	maxLevel       = 50
)

// Path the creeps walk, as grid waypoints. Creeps spawn at the first
// point and leak when they pass the last.
var waypoints = [][2]float64{
	{2, 0},
	{2, 15},
	{37, 15},
	{37, 2},
	{20, 2},
	{20, 28},
}

// TowerRef addresses a tower slot. The id is a generation counter: a ref
// to a sold tower stays invalid even if the slot is reused.
type TowerRef struct {
	ID    uint32
	Index int
}

// TowerView is a read-only snapshot of a placed tower.
type TowerView struct {
	Ref   TowerRef `json:"ref"`
	Kind  Kind     `json:"kind"`
	Level int      `json:"level"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
}

// State is a read-only snapshot of the whole game.
type State struct {
	Phase      Phase       `json:"phase"`
	Result     Result      `json:"result"`
	Gold       int         `json:"gold"`
	Health     int         `json:"health"`
	Level      int         `json:"level"`
	Towers     []TowerView `json:"towers"`
	CreepCount int         `json:"creep_count"`
}

type towerSlot struct {
	id       uint32
	live     bool
	kind     Kind
	level    int
	gridX    int
	gridY    int
	cooldown int // ticks until the tower may fire again
}

type creep struct {
	health   float64
	speed    float64 // cells per tick
	progress float64 // cells travelled along the path
	chill    int     // ticks of freeze slow remaining
	bounty   int
}

// Game is a single running tower defence simulation. All methods are safe
// for concurrent use.
type Game struct {
	mu sync.Mutex

	phase   Phase
	running bool
	gold    int
	health  int
	level   int

	towers []towerSlot
	free   []int
	nextID uint32

	creeps        []creep
	tick          int
	toSpawn       int
	spawnInterval int
	nextSpawn     int

	pathLen float64
}

// New creates a game in the building phase with starting gold and health.
func New() *Game {
	return &Game{
		phase:   PhaseBuilding,
		running: true,
		gold:    startingGold,
		health:  startingHealth,
		pathLen: pathLength(),
	}
}

func pathLength() float64 {
	var total float64
	for i := 1; i < len(waypoints); i++ {
		dx := waypoints[i][0] - waypoints[i-1][0]
		dy := waypoints[i][1] - waypoints[i-1][1]
		total += math.Hypot(dx, dy)
	}
	return total
}

// pathPosition maps a progress value in cells to a board position.
func pathPosition(progress float64) (float64, float64) {
	remaining := progress
	for i := 1; i < len(waypoints); i++ {
		dx := waypoints[i][0] - waypoints[i-1][0]
		dy := waypoints[i][1] - waypoints[i-1][1]
		segLen := math.Hypot(dx, dy)
		if remaining <= segLen {
			frac := remaining / segLen
			return waypoints[i-1][0] + dx*frac, waypoints[i-1][1] + dy*frac
		}
		remaining -= segLen
	}
	last := waypoints[len(waypoints)-1]
	return last[0], last[1]
}

// BuildTower places a tower of the given kind at board coordinates (x, y).
// It is a no-op during the fighting phase, for unknown kinds, out-of-bounds
// or occupied cells, or when gold is insufficient.
func (g *Game) BuildTower(x, y float64, kind int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseFighting || !g.running || !ValidKind(kind) {
		return
	}
	if x < 0 || y < 0 {
		return
	}
	gridX := int(x / cellLength)
	gridY := int(y / cellLength)
	if gridX >= boardWidth || gridY >= boardHeight {
		return
	}
	if g.slotAt(gridX, gridY) != nil {
		return
	}
	cost := BuildCost(Kind(kind))
	if g.gold < cost {
		return
	}

	g.gold -= cost
	g.nextID++
	slot := towerSlot{
		id:    g.nextID,
		live:  true,
		kind:  Kind(kind),
		gridX: gridX,
		gridY: gridY,
	}
	if n := len(g.free); n > 0 {
		idx := g.free[n-1]
		g.free = g.free[:n-1]
		g.towers[idx] = slot
	} else {
		g.towers = append(g.towers, slot)
	}
}

// TowerAt returns a ref to the live tower occupying the cell that contains
// the board coordinates (x, y), or nil.
func (g *Game) TowerAt(x, y float64) *TowerRef {
	g.mu.Lock()
	defer g.mu.Unlock()

	if x < 0 || y < 0 {
		return nil
	}
	gridX := int(x / cellLength)
	gridY := int(y / cellLength)
	for i := range g.towers {
		t := &g.towers[i]
		if t.live && t.gridX == gridX && t.gridY == gridY {
			return &TowerRef{ID: t.id, Index: i}
		}
	}
	return nil
}

func (g *Game) slotAt(gridX, gridY int) *towerSlot {
	for i := range g.towers {
		t := &g.towers[i]
		if t.live && t.gridX == gridX && t.gridY == gridY {
			return t
		}
	}
	return nil
}

// resolve returns the live slot a ref points at, or nil if the ref is
// stale or out of range.
func (g *Game) resolve(ref TowerRef) *towerSlot {
	if ref.Index < 0 || ref.Index >= len(g.towers) {
		return nil
	}
	slot := &g.towers[ref.Index]
	if !slot.live || slot.id != ref.ID {
		return nil
	}
	return slot
}

// UpgradeTower raises the referenced tower one level. It is a no-op during
// the fighting phase, for stale refs, at the top of the upgrade path, or
// when gold is insufficient.
func (g *Game) UpgradeTower(ref TowerRef) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseFighting || !g.running {
		return
	}
	slot := g.resolve(ref)
	if slot == nil {
		return
	}
	cost := UpgradeCost(slot.kind, slot.level)
	if cost < 0 || g.gold < cost {
		return
	}
	g.gold -= cost
	slot.level++
}

// SellTower removes the referenced tower and refunds its base cost. It is
// a no-op during the fighting phase and for stale refs.
func (g *Game) SellTower(ref TowerRef) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseFighting || !g.running {
		return
	}
	slot := g.resolve(ref)
	if slot == nil {
		return
	}
	g.gold += BuildCost(slot.kind)
	slot.live = false
	g.free = append(g.free, ref.Index)
}

// StartWave switches from building to fighting and arms the spawner. It is
// a no-op outside the building phase.
func (g *Game) StartWave() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseBuilding || !g.running {
		return
	}
	g.phase = PhaseFighting
	g.toSpawn = 5 + 2*g.level
	g.spawnInterval = 30
	g.nextSpawn = 0
}

// UpdateState advances the simulation by one tick: spawns and moves creeps,
// fires towers, applies leaks, and handles wave completion.
func (g *Game) UpdateState() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseFighting || !g.running {
		return
	}
	g.tick++

	// Spawner.
	if g.toSpawn > 0 {
		g.nextSpawn--
		if g.nextSpawn <= 0 {
			g.creeps = append(g.creeps, creep{
				health: 40 + 12*float64(g.level),
				speed:  0.05,
				bounty: 4 + g.level/2,
			})
			g.toSpawn--
			g.nextSpawn = g.spawnInterval
		}
	}

	// Movement and leaks.
	alive := g.creeps[:0]
	for _, c := range g.creeps {
		speed := c.speed
		if c.chill > 0 {
			c.chill--
			speed *= 0.5
		}
		c.progress += speed
		if c.progress >= g.pathLen {
			g.health--
			continue
		}
		alive = append(alive, c)
	}
	g.creeps = alive

	if g.health <= 0 {
		g.health = 0
		g.running = false
		return
	}

	// Towers fire at the creep furthest along the path within range.
	for i := range g.towers {
		t := &g.towers[i]
		if !t.live {
			continue
		}
		if t.cooldown > 0 {
			t.cooldown--
			continue
		}
		stats := towerLevels[t.kind][t.level]
		tx := float64(t.gridX) + 0.5
		ty := float64(t.gridY) + 0.5

		target := -1
		var best float64 = -1
		for j := range g.creeps {
			cx, cy := pathPosition(g.creeps[j].progress)
			if math.Hypot(cx-tx, cy-ty) > stats.Range {
				continue
			}
			if g.creeps[j].progress > best {
				best = g.creeps[j].progress
				target = j
			}
		}
		if target < 0 {
			continue
		}
		t.cooldown = stats.Cooldown
		g.creeps[target].health -= stats.Damage
		if t.kind == KindFreeze {
			g.creeps[target].chill = 45
		}
	}

	// Reap dead creeps and pay bounties.
	alive = g.creeps[:0]
	for _, c := range g.creeps {
		if c.health <= 0 {
			g.gold += c.bounty
			continue
		}
		alive = append(alive, c)
	}
	g.creeps = alive

	// Wave cleared.
	if g.toSpawn == 0 && len(g.creeps) == 0 {
		g.level++
		if g.level >= maxLevel {
			g.running = false
			return
		}
		g.phase = PhaseBuilding
	}
}

// State returns a snapshot of the current game.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	result := ResultStillRunning
	if !g.running {
		if g.level >= maxLevel {
			result = ResultPlayerWon
		} else {
			result = ResultCreepsWon
		}
	}

	towers := make([]TowerView, 0, len(g.towers))
	for i := range g.towers {
		t := &g.towers[i]
		if !t.live {
			continue
		}
		towers = append(towers, TowerView{
			Ref:   TowerRef{ID: t.id, Index: i},
			Kind:  t.kind,
			Level: t.level,
			X:     t.gridX,
			Y:     t.gridY,
		})
	}

	return State{
		Phase:      g.phase,
		Result:     result,
		Gold:       g.gold,
		Health:     g.health,
		Level:      g.level,
		Towers:     towers,
		CreepCount: len(g.creeps),
	}
}
