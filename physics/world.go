// Package physics wraps the rigid-body engine behind a narrow interface
// so the game runtime never touches the solver directly and tests can
// substitute a stub world.
package physics

// Vec is a 2D vector in play-field coordinates (y grows downward).
type Vec struct {
	X, Y float64
}

// Body is a handle to a dynamic body living in a World.
type Body interface {
	Position() Vec
	Velocity() Vec
}

// World is the façade over the rigid-body engine. Static rectangles are
// permanent for the world's lifetime; dynamic circles can be removed.
type World interface {
	SetGravity(g Vec)
	SetDamping(d float64)
	AddStaticRect(x, y, w, h float64)
	AddDynamicCircle(x, y, mass, radius float64) Body
	RemoveBody(b Body)
	// Step advances the simulation by a fixed delta of dt seconds.
	Step(dt float64)
}

// Material holds the surface properties applied to every shape the world
// creates. The game uses one material for walls and balls alike.
type Material struct {
	Elasticity float64
	Friction   float64
}

// Factory builds a fresh world. The runtime takes one of these so tests
// can hand it a stub instead of a real solver.
type Factory func(gravity Vec, damping float64) World
