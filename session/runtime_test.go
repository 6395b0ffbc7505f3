package session

import (
	"errors"
	"testing"

	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/levels"
	"github.com/maxnichols/gravwell/physics"
)

type stubBody struct {
	x, y   float64
	vx, vy float64
}

func (b *stubBody) Position() physics.Vec { return physics.Vec{X: b.x, Y: b.y} }
func (b *stubBody) Velocity() physics.Vec { return physics.Vec{X: b.vx, Y: b.vy} }

type stubWorld struct {
	gravity physics.Vec
	damping float64
	bodies  []*stubBody
	statics int
	steps   int
	removed int
}

func (w *stubWorld) SetGravity(g physics.Vec) { w.gravity = g }
func (w *stubWorld) SetDamping(d float64)     { w.damping = d }

func (w *stubWorld) AddStaticRect(x, y, width, height float64) { w.statics++ }

func (w *stubWorld) AddDynamicCircle(x, y, mass, radius float64) physics.Body {
	b := &stubBody{x: x, y: y}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *stubWorld) RemoveBody(b physics.Body) {
	sb := b.(*stubBody)
	for i, cur := range w.bodies {
		if cur == sb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.removed++
			return
		}
	}
}

func (w *stubWorld) Step(dt float64) { w.steps++ }

type stubFactory struct {
	world *stubWorld
}

func (f *stubFactory) make(gravity physics.Vec, damping float64) physics.World {
	f.world = &stubWorld{gravity: gravity, damping: damping}
	return f.world
}

type recordingReporter struct {
	completedID    int
	completedScore int
	completions    int
	customWins     int
	gameOvers      int
	deaths         int
}

func (r *recordingReporter) LevelComplete(levelID, score int) {
	r.completions++
	r.completedID = levelID
	r.completedScore = score
}

func (r *recordingReporter) CustomLevelComplete() { r.customWins++ }
func (r *recordingReporter) GameOver()            { r.gameOvers++ }
func (r *recordingReporter) BallDestroyed()       { r.deaths++ }

func testSchema() *levels.Schema {
	return &levels.Schema{
		LevelID:        7,
		Name:           "test level",
		Difficulty:     levels.DifficultyEasy,
		Lives:          2,
		StartPositions: []levels.Point{{X: 100, Y: 100}},
		GravityStart:   levels.Vec{X: 0, Y: 900},
		DampingStart:   1.0,
		GoalRect:       levels.RectDef{X: 600, Y: 400, W: 80, H: 80},
		Walls:          []levels.RectDef{{X: 200, Y: 200, W: 100, H: 20}},
		Hazards:        []levels.RectDef{{X: 400, Y: 300, W: 50, H: 50}},
	}
}

func newTestRuntime(t *testing.T, schema *levels.Schema) (*Runtime, *stubFactory, *recordingReporter) {
	t.Helper()
	f := &stubFactory{}
	rep := &recordingReporter{}
	rt := New(f.make, rep)
	if err := rt.Load(schema); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return rt, f, rep
}

func TestLoadBuildsSession(t *testing.T) {
	rt, f, _ := newTestRuntime(t, testSchema())

	if !rt.Loaded() {
		t.Fatalf("runtime should be loaded")
	}
	// Four boundary walls plus the schema's one.
	if f.world.statics != 5 {
		t.Fatalf("expected 5 static rects, got %d", f.world.statics)
	}
	if len(f.world.bodies) != 1 {
		t.Fatalf("expected 1 ball, got %d", len(f.world.bodies))
	}
	if rt.Lives() != 2 {
		t.Fatalf("expected 2 lives, got %d", rt.Lives())
	}
	if rt.State() != Alive {
		t.Fatalf("expected alive state, got %v", rt.State())
	}
	if rt.ElapsedTicks() != 0 || rt.Paused() || rt.Completed() {
		t.Fatalf("fresh session should be unpaused at tick 0")
	}
	if g := rt.Gravity(); g.X != 0 || g.Y != 900 {
		t.Fatalf("expected starting gravity (0, 900), got %+v", g)
	}
}

func TestLoadRejectsInvalidAndKeepsSession(t *testing.T) {
	rt, f, _ := newTestRuntime(t, testSchema())
	world := f.world
	rt.Tick()

	bad := testSchema()
	bad.DampingStart = 2

	err := rt.Load(bad)
	var se *levels.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if f.world != world {
		t.Fatalf("failed load must not build a new world")
	}
	if rt.ElapsedTicks() != 1 {
		t.Fatalf("failed load must not reset the running session")
	}
}

func TestGravityDirectionPrecedence(t *testing.T) {
	force := config.C.GravityForce
	cases := []struct {
		name string
		in   Intents
		want physics.Vec
	}{
		{"up", Intents{Up: true}, physics.Vec{X: 0, Y: -force}},
		{"down", Intents{Down: true}, physics.Vec{X: 0, Y: force}},
		{"left", Intents{Left: true}, physics.Vec{X: -force, Y: 0}},
		{"right", Intents{Right: true}, physics.Vec{X: force, Y: 0}},
		{"up_beats_down", Intents{Up: true, Down: true}, physics.Vec{X: 0, Y: -force}},
		{"down_beats_left", Intents{Down: true, Left: true}, physics.Vec{X: 0, Y: force}},
		{"left_beats_right", Intents{Left: true, Right: true}, physics.Vec{X: -force, Y: 0}},
		{"all_resolves_up", Intents{Up: true, Down: true, Left: true, Right: true}, physics.Vec{X: 0, Y: -force}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rt, f, _ := newTestRuntime(t, testSchema())
			rt.Apply(c.in)
			if f.world.gravity != c.want {
				t.Fatalf("expected gravity %+v, got %+v", c.want, f.world.gravity)
			}
			if rt.Gravity() != c.want {
				t.Fatalf("runtime gravity out of sync: %+v", rt.Gravity())
			}
		})
	}

	t.Run("no_direction_keeps_gravity", func(t *testing.T) {
		rt, _, _ := newTestRuntime(t, testSchema())
		before := rt.Gravity()
		rt.Apply(Intents{})
		if rt.Gravity() != before {
			t.Fatalf("gravity changed without a direction intent")
		}
	})
}

func TestDampingClampsToRange(t *testing.T) {
	rt, f, _ := newTestRuntime(t, testSchema())

	for i := 0; i < 200; i++ {
		rt.Apply(Intents{LowerDamping: true})
	}
	if rt.Damping() != config.C.Damping.Min {
		t.Fatalf("expected damping clamped to %v, got %v", config.C.Damping.Min, rt.Damping())
	}
	for i := 0; i < 200; i++ {
		rt.Apply(Intents{RaiseDamping: true})
	}
	if rt.Damping() != config.C.Damping.Max {
		t.Fatalf("expected damping clamped to %v, got %v", config.C.Damping.Max, rt.Damping())
	}
	if f.world.damping != rt.Damping() {
		t.Fatalf("world damping out of sync: %v vs %v", f.world.damping, rt.Damping())
	}
}

func TestPauseFreezesEverything(t *testing.T) {
	rt, f, _ := newTestRuntime(t, testSchema())
	rt.Tick()
	rt.Tick()

	rt.TogglePause()
	if !rt.Paused() {
		t.Fatalf("expected paused")
	}

	gravityBefore := f.world.gravity
	for i := 0; i < 10; i++ {
		rt.Apply(Intents{Left: true, RaiseDamping: true})
		rt.Tick()
	}
	if f.world.steps != 2 {
		t.Fatalf("physics stepped while paused: %d steps", f.world.steps)
	}
	if rt.ElapsedTicks() != 2 {
		t.Fatalf("tick counter advanced while paused: %d", rt.ElapsedTicks())
	}
	if f.world.gravity != gravityBefore {
		t.Fatalf("gravity changed while paused")
	}

	rt.TogglePause()
	rt.Tick()
	if f.world.steps != 3 || rt.ElapsedTicks() != 3 {
		t.Fatalf("simulation should resume after unpause")
	}
}

func TestHazardHitRespawnsAfterFreeze(t *testing.T) {
	rt, f, rep := newTestRuntime(t, testSchema())

	// Park the ball inside the hazard.
	f.world.bodies[0].x = 420
	f.world.bodies[0].y = 320
	rt.Tick()

	if rt.State() != Exploding {
		t.Fatalf("expected exploding state, got %v", rt.State())
	}
	if rt.Lives() != 1 {
		t.Fatalf("expected 1 life left, got %d", rt.Lives())
	}
	if rep.deaths != 1 {
		t.Fatalf("expected 1 death report, got %d", rep.deaths)
	}
	if len(f.world.bodies) != 0 {
		t.Fatalf("hit ball should be removed from the world")
	}
	if rt.Effects().Len() == 0 {
		t.Fatalf("expected an explosion burst")
	}

	stepsBefore := f.world.steps
	ticksBefore := rt.ElapsedTicks()
	for i := 0; i < 30; i++ {
		if rt.State() != Exploding {
			t.Fatalf("left exploding state early at freeze tick %d", i)
		}
		rt.Tick()
	}

	if rt.State() != Alive {
		t.Fatalf("expected respawn after freeze, got %v", rt.State())
	}
	if f.world.steps != stepsBefore || rt.ElapsedTicks() != ticksBefore {
		t.Fatalf("simulation advanced during the death freeze")
	}
	if len(f.world.bodies) != 1 {
		t.Fatalf("expected 1 respawned ball, got %d", len(f.world.bodies))
	}
	if b := f.world.bodies[0]; b.x != 100 || b.y != 100 {
		t.Fatalf("respawn should use the start position, got (%v, %v)", b.x, b.y)
	}
}

func TestLastLifeEndsInGameOver(t *testing.T) {
	schema := testSchema()
	schema.Lives = 1
	rt, f, rep := newTestRuntime(t, schema)

	f.world.bodies[0].x = 420
	f.world.bodies[0].y = 320
	rt.Tick()

	if rt.ExplodeTicks() != 90 {
		t.Fatalf("final death should freeze for 90 ticks, got %d", rt.ExplodeTicks())
	}
	for i := 0; i < 90; i++ {
		rt.Tick()
	}
	if rt.State() != GameOver {
		t.Fatalf("expected game over, got %v", rt.State())
	}
	if rep.gameOvers != 1 {
		t.Fatalf("expected 1 game over report, got %d", rep.gameOvers)
	}
	if len(f.world.bodies) != 0 {
		t.Fatalf("no ball should respawn after game over")
	}

	// Terminal: further ticks change nothing.
	rt.Tick()
	if rt.State() != GameOver || rep.gameOvers != 1 {
		t.Fatalf("game over state should be terminal")
	}
}

func TestOnlyOneHazardEventPerTick(t *testing.T) {
	schema := testSchema()
	schema.Lives = 5
	schema.StartPositions = []levels.Point{{X: 100, Y: 100}, {X: 150, Y: 100}}
	rt, f, rep := newTestRuntime(t, schema)

	// Both balls overlap hazards in the same tick.
	for _, b := range f.world.bodies {
		b.x, b.y = 420, 320
	}
	rt.Tick()

	if rep.deaths != 1 {
		t.Fatalf("expected exactly 1 death event, got %d", rep.deaths)
	}
	if rt.Lives() != 4 {
		t.Fatalf("expected 4 lives left, got %d", rt.Lives())
	}
	if len(f.world.bodies) != 1 {
		t.Fatalf("only the hit ball should be removed, got %d remaining", len(f.world.bodies))
	}
}

func TestWinRequiresEveryBallInGoal(t *testing.T) {
	schema := testSchema()
	schema.StartPositions = []levels.Point{{X: 100, Y: 100}, {X: 150, Y: 100}}
	rt, f, rep := newTestRuntime(t, schema)

	// One ball in the goal is not enough.
	f.world.bodies[0].x, f.world.bodies[0].y = 620, 420
	rt.Tick()
	if rt.Completed() {
		t.Fatalf("won with a ball outside the goal")
	}

	f.world.bodies[1].x, f.world.bodies[1].y = 650, 450
	rt.Tick()
	if !rt.Completed() {
		t.Fatalf("expected completion with all balls in the goal")
	}
	if rep.completions != 1 || rep.completedID != 7 {
		t.Fatalf("expected 1 completion report for level 7, got %d for %d", rep.completions, rep.completedID)
	}
	wantScore := 10000 - rt.ElapsedTicks()*10
	if rep.completedScore != wantScore {
		t.Fatalf("expected score %d, got %d", wantScore, rep.completedScore)
	}

	// Completion freezes the session.
	steps := f.world.steps
	rt.Tick()
	if f.world.steps != steps {
		t.Fatalf("simulation advanced after completion")
	}
}

func TestCustomLevelReportsSeparately(t *testing.T) {
	schema := testSchema()
	schema.LevelID = 999
	schema.Difficulty = levels.DifficultyCustom
	rt, f, rep := newTestRuntime(t, schema)

	f.world.bodies[0].x, f.world.bodies[0].y = 620, 420
	rt.Tick()

	if rep.customWins != 1 {
		t.Fatalf("expected 1 custom completion, got %d", rep.customWins)
	}
	if rep.completions != 0 {
		t.Fatalf("custom win must not report a catalog completion")
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	cases := []struct {
		ticks int
		want  int
	}{
		{0, 10000},
		{500, 5000},
		{999, 10},
		{1000, 0},
		{5000, 0},
	}
	for _, c := range cases {
		rt, _, _ := newTestRuntime(t, testSchema())
		rt.elapsedTicks = c.ticks
		if got := rt.Score(); got != c.want {
			t.Fatalf("score at %d ticks: expected %d, got %d", c.ticks, c.want, got)
		}
	}
}

func TestTrailSpawnsOnInterval(t *testing.T) {
	rt, _, _ := newTestRuntime(t, testSchema())

	rt.Tick()
	rt.Tick()
	if rt.Effects().Len() != 0 {
		t.Fatalf("trail spawned before the interval elapsed")
	}
	rt.Tick()
	if rt.Effects().Len() == 0 {
		t.Fatalf("expected a trail particle on the third tick")
	}
}

func TestTrailColorBlendsWithDamping(t *testing.T) {
	cases := []struct {
		damping      float64
		wantR, wantB uint8
	}{
		{1.0, 0, 255},
		{0.5, 127, 127},
		{0.1, 229, 25},
	}
	for _, c := range cases {
		rt, _, _ := newTestRuntime(t, testSchema())
		rt.damping = c.damping
		clr := rt.trailColor()
		if clr.R != c.wantR || clr.B != c.wantB {
			t.Fatalf("damping %v: expected (R=%d, B=%d), got (R=%d, B=%d)",
				c.damping, c.wantR, c.wantB, clr.R, clr.B)
		}
		if clr.G != 100 || clr.A != 255 {
			t.Fatalf("damping %v: expected G=100 A=255, got %+v", c.damping, clr)
		}
	}
}

func TestInputIgnoredWhileDead(t *testing.T) {
	rt, f, _ := newTestRuntime(t, testSchema())

	f.world.bodies[0].x = 420
	f.world.bodies[0].y = 320
	rt.Tick()

	gravity := f.world.gravity
	damping := rt.Damping()
	rt.Apply(Intents{Left: true, LowerDamping: true})
	if f.world.gravity != gravity || rt.Damping() != damping {
		t.Fatalf("input applied during the death freeze")
	}
}
