package physics

import (
	"github.com/jakecoffman/cp"
)

// ChipmunkWorld implements World on top of a Chipmunk space.
type ChipmunkWorld struct {
	space    *cp.Space
	material Material
}

type chipmunkBody struct {
	body  *cp.Body
	shape *cp.Shape
}

func (b *chipmunkBody) Position() Vec {
	p := b.body.Position()
	return Vec{X: p.X, Y: p.Y}
}

func (b *chipmunkBody) Velocity() Vec {
	v := b.body.Velocity()
	return Vec{X: v.X, Y: v.Y}
}

// NewChipmunkWorld creates a space with the given gravity and damping.
// All shapes added later share mat.
func NewChipmunkWorld(gravity Vec, damping float64, mat Material) *ChipmunkWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})
	space.SetDamping(damping)
	return &ChipmunkWorld{space: space, material: mat}
}

func (w *ChipmunkWorld) SetGravity(g Vec) {
	w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

func (w *ChipmunkWorld) SetDamping(d float64) {
	w.space.SetDamping(d)
}

// AddStaticRect attaches a box to the shared static body. Coordinates are
// the rectangle's top-left corner plus extents, matching the schema.
func (w *ChipmunkWorld) AddStaticRect(x, y, wd, h float64) {
	bb := cp.BB{L: x, B: y, R: x + wd, T: y + h}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetElasticity(w.material.Elasticity)
	shape.SetFriction(w.material.Friction)
	w.space.AddShape(shape)
}

func (w *ChipmunkWorld) AddDynamicCircle(x, y, mass, radius float64) Body {
	moment := cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(w.material.Elasticity)
	shape.SetFriction(w.material.Friction)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	return &chipmunkBody{body: body, shape: shape}
}

func (w *ChipmunkWorld) RemoveBody(b Body) {
	cb, ok := b.(*chipmunkBody)
	if !ok || cb == nil {
		return
	}
	w.space.RemoveShape(cb.shape)
	w.space.RemoveBody(cb.body)
}

func (w *ChipmunkWorld) Step(dt float64) {
	w.space.Step(dt)
}
