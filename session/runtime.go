// Package session owns the active play session: the physics world built
// from a level schema, the ball set, lives, the death state machine, and
// the particle effects the simulation emits. Everything advances inside
// Tick; rendering is a read-only pass over the resulting state.
package session

import (
	"image/color"
	"time"

	"github.com/maxnichols/gravwell/common"
	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/levels"
	"github.com/maxnichols/gravwell/particles"
	"github.com/maxnichols/gravwell/physics"
)

// Direction is a gravity direction intent.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Intents are the per-tick boolean input signals the runtime consumes.
// The runtime does not care whether they came from a keyboard, a gamepad,
// or on-screen controls.
type Intents struct {
	Up, Down, Left, Right bool
	RaiseDamping          bool
	LowerDamping          bool
}

// Direction resolves simultaneous directional signals with the fixed
// precedence Up > Down > Left > Right. Only the winning direction applies
// in a tick; the order is deliberate and relied on for replay.
func (in Intents) Direction() (Direction, bool) {
	switch {
	case in.Up:
		return DirUp, true
	case in.Down:
		return DirDown, true
	case in.Left:
		return DirLeft, true
	case in.Right:
		return DirRight, true
	}
	return 0, false
}

// DeathState is the session's life-cycle state.
type DeathState int

const (
	// Alive means the simulation is running.
	Alive DeathState = iota
	// Exploding is the frozen interval between a hazard hit and either a
	// respawn or game over.
	Exploding
	// GameOver means lives ran out; the session is finished.
	GameOver
)

func (s DeathState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Exploding:
		return "exploding"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

const (
	gameOverTicks = 90
	respawnTicks  = 30

	winScoreBase    = 10000
	winScorePerTick = 10
)

var explosionPalette = []color.RGBA{
	{R: 255, G: 50, B: 50, A: 255},
	{R: 255, G: 150, B: 0, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
}

var celebrationPalette = []color.RGBA{
	{R: 0, G: 255, B: 100, A: 255},
}

// Reporter receives session outcomes. Implementations must not call back
// into the runtime from inside a report; act after Tick returns.
type Reporter interface {
	// LevelComplete fires when a catalog level is won.
	LevelComplete(levelID, score int)
	// CustomLevelComplete fires when an editor-authored level is won.
	CustomLevelComplete()
	// GameOver fires when the last life's death animation finishes.
	GameOver()
	// BallDestroyed fires on every hazard hit, for the death statistic.
	BallDestroyed()
}

// Runtime drives one loaded level. It exclusively owns its physics world,
// ball set, and particle list; no other component mutates them.
type Runtime struct {
	newWorld physics.Factory
	reporter Reporter

	schema  *levels.Schema
	world   physics.World
	balls   []physics.Body
	hazards []common.Rect
	goal    common.Rect

	livesRemaining int
	elapsedTicks   int
	death          DeathState
	explodeTicks   int
	paused         bool
	completed      bool

	gravity physics.Vec
	damping float64

	fx           *particles.System
	trailCounter int
}

// New creates a runtime that builds its worlds through factory and emits
// outcomes to reporter. reporter may be nil.
func New(factory physics.Factory, reporter Reporter) *Runtime {
	return &Runtime{
		newWorld: factory,
		reporter: reporter,
		fx:       particles.New(time.Now().UnixNano()),
	}
}

// Load tears down any existing session and builds a new one from schema.
// On a SchemaError the prior session is left untouched.
func (r *Runtime) Load(schema *levels.Schema) error {
	schema.Normalize()
	if err := schema.Validate(); err != nil {
		return err
	}

	world := r.newWorld(physics.Vec{X: schema.GravityStart.X, Y: schema.GravityStart.Y}, schema.DampingStart)

	w := float64(config.C.Width)
	h := float64(config.C.Height)
	t := config.C.BoundaryThickness
	world.AddStaticRect(0, 0, w, t)
	world.AddStaticRect(0, h-t, w, t)
	world.AddStaticRect(0, 0, t, h)
	world.AddStaticRect(w-t, 0, t, h)
	for _, wall := range schema.Walls {
		world.AddStaticRect(wall.X, wall.Y, wall.W, wall.H)
	}

	r.schema = schema
	r.world = world
	r.hazards = r.hazards[:0]
	for _, hz := range schema.Hazards {
		r.hazards = append(r.hazards, hz.Rect())
	}
	r.goal = schema.GoalRect.Rect()

	r.balls = nil
	r.spawnBalls()

	r.livesRemaining = schema.Lives
	r.elapsedTicks = 0
	r.death = Alive
	r.explodeTicks = 0
	r.paused = false
	r.completed = false
	r.gravity = physics.Vec{X: schema.GravityStart.X, Y: schema.GravityStart.Y}
	r.damping = schema.DampingStart
	r.trailCounter = 0
	r.fx.Clear()
	return nil
}

// respawn clears whatever balls survived the hazard hit and re-creates
// one per start position.
func (r *Runtime) respawn() {
	for _, b := range r.balls {
		r.world.RemoveBody(b)
	}
	r.balls = r.balls[:0]
	r.spawnBalls()
}

func (r *Runtime) spawnBalls() {
	ball := config.C.Ball
	for _, p := range r.schema.StartPositions {
		r.balls = append(r.balls, r.world.AddDynamicCircle(p.X, p.Y, ball.Mass, ball.Radius))
	}
}

// Apply consumes one tick's worth of input intents. Call before Tick so
// the intents affect the same tick's physics step.
func (r *Runtime) Apply(in Intents) {
	if dir, ok := in.Direction(); ok {
		r.SetGravityDirection(dir)
	}
	if in.RaiseDamping {
		r.AdjustDamping(config.C.Damping.Step)
	}
	if in.LowerDamping {
		r.AdjustDamping(-config.C.Damping.Step)
	}
}

// SetGravityDirection points gravity in dir at the fixed tuned magnitude.
// Ignored while paused or outside the Alive state.
func (r *Runtime) SetGravityDirection(dir Direction) {
	if r.world == nil || r.paused || r.death != Alive {
		return
	}
	force := config.C.GravityForce
	switch dir {
	case DirUp:
		r.gravity = physics.Vec{X: 0, Y: -force}
	case DirDown:
		r.gravity = physics.Vec{X: 0, Y: force}
	case DirLeft:
		r.gravity = physics.Vec{X: -force, Y: 0}
	case DirRight:
		r.gravity = physics.Vec{X: force, Y: 0}
	default:
		return
	}
	r.world.SetGravity(r.gravity)
}

// AdjustDamping nudges the damping scalar, clamped to the playable range.
// Ignored while paused or outside the Alive state.
func (r *Runtime) AdjustDamping(delta float64) {
	if r.world == nil || r.paused || r.death != Alive {
		return
	}
	r.damping = common.Clamp(r.damping+delta, config.C.Damping.Min, config.C.Damping.Max)
	r.world.SetDamping(r.damping)
}

// TogglePause flips the paused flag. While paused Tick is a no-op:
// physics, timers, and particle aging all freeze.
func (r *Runtime) TogglePause() {
	if r.world == nil {
		return
	}
	r.paused = !r.paused
}

// Tick advances the session by one fixed frame.
func (r *Runtime) Tick() {
	if r.world == nil || r.paused || r.completed {
		return
	}

	switch r.death {
	case Exploding:
		r.explodeTicks--
		if r.explodeTicks <= 0 {
			if r.livesRemaining <= 0 {
				r.death = GameOver
				if r.reporter != nil {
					r.reporter.GameOver()
				}
			} else {
				r.respawn()
				r.death = Alive
			}
		}
	case Alive:
		r.world.Step(config.Timestep)
		r.elapsedTicks++
		r.checkHazards()
		if r.death == Alive {
			r.checkWin()
		}
		if r.death == Alive && !r.completed {
			r.trailCounter++
			if r.trailCounter >= config.C.TrailInterval {
				r.trailCounter = 0
				r.spawnTrails()
			}
		}
	}

	r.fx.Advance()
}

// checkHazards tests each ball's bounding square against every hazard.
// Only the first overlap found is processed in a tick; death freezes the
// simulation, so remaining overlaps resolve on later ticks if at all.
func (r *Runtime) checkHazards() {
	rad := config.C.Ball.Radius
	hit := -1
	var hitPos physics.Vec
	for i, b := range r.balls {
		pos := b.Position()
		box := common.Rect{X: pos.X - rad, Y: pos.Y - rad, Width: 2 * rad, Height: 2 * rad}
		for _, hz := range r.hazards {
			if box.Intersects(hz) {
				hit = i
				hitPos = pos
				break
			}
		}
		if hit >= 0 {
			break
		}
	}
	if hit < 0 {
		return
	}

	dead := r.balls[hit]
	r.world.RemoveBody(dead)
	live := make([]physics.Body, 0, len(r.balls)-1)
	for i, b := range r.balls {
		if i != hit {
			live = append(live, b)
		}
	}
	r.balls = live

	r.fx.SpawnBurst(hitPos.X, hitPos.Y, 30, 2, 8, 0, 40, 40, explosionPalette)
	r.livesRemaining--
	if r.reporter != nil {
		r.reporter.BallDestroyed()
	}
	r.death = Exploding
	if r.livesRemaining <= 0 {
		r.explodeTicks = gameOverTicks
	} else {
		r.explodeTicks = respawnTicks
	}
}

// checkWin succeeds only when every ball's center is inside the goal at
// once.
func (r *Runtime) checkWin() {
	if len(r.balls) == 0 {
		return
	}
	for _, b := range r.balls {
		pos := b.Position()
		if !r.goal.Contains(pos.X, pos.Y) {
			return
		}
	}

	pos := r.balls[0].Position()
	r.fx.SpawnBurst(pos.X, pos.Y, 20, 1, 5, -2, 30, 30, celebrationPalette)

	r.completed = true
	if r.reporter == nil {
		return
	}
	if r.schema.IsCustom() {
		r.reporter.CustomLevelComplete()
	} else {
		r.reporter.LevelComplete(r.schema.LevelID, r.Score())
	}
}

func (r *Runtime) spawnTrails() {
	for _, b := range r.balls {
		pos := b.Position()
		vel := b.Velocity()
		r.fx.SpawnTrail(pos.X, pos.Y, vel.X, vel.Y, r.trailColor())
	}
}

// trailColor blends from red at low damping (free floating) to blue at
// high damping (thick drag).
func (r *Runtime) trailColor() color.RGBA {
	return color.RGBA{
		R: uint8(common.Lerp(255, 0, r.damping)),
		G: 100,
		B: uint8(common.Lerp(0, 255, r.damping)),
		A: 255,
	}
}

// Score is the current completion score for the elapsed time, clamped at
// zero.
func (r *Runtime) Score() int {
	score := winScoreBase - r.elapsedTicks*winScorePerTick
	if score < 0 {
		score = 0
	}
	return score
}

func (r *Runtime) Loaded() bool { return r.world != nil }

func (r *Runtime) Schema() *levels.Schema { return r.schema }

func (r *Runtime) Lives() int { return r.livesRemaining }

func (r *Runtime) ElapsedTicks() int { return r.elapsedTicks }

func (r *Runtime) State() DeathState { return r.death }

func (r *Runtime) ExplodeTicks() int { return r.explodeTicks }

func (r *Runtime) Paused() bool { return r.paused }

func (r *Runtime) Completed() bool { return r.completed }

func (r *Runtime) Damping() float64 { return r.damping }

func (r *Runtime) Gravity() physics.Vec { return r.gravity }

func (r *Runtime) Effects() *particles.System { return r.fx }

// ElapsedSeconds converts the tick counter to wall seconds at the fixed
// rate.
func (r *Runtime) ElapsedSeconds() float64 {
	return float64(r.elapsedTicks) * config.Timestep
}

// BallPositions returns the current ball centers for rendering.
func (r *Runtime) BallPositions() []physics.Vec {
	out := make([]physics.Vec, 0, len(r.balls))
	for _, b := range r.balls {
		out = append(out, b.Position())
	}
	return out
}
