// Package particles spawns, ages, and retires short-lived visual motes
// for ball trails, hazard explosions, and goal celebrations. It never
// touches the physics world; the runtime feeds it position and velocity
// seeds and it runs standalone from there.
package particles

import (
	"image/color"
	"math"
	"math/rand"
)

const (
	// gravityBias is added to every particle's vertical velocity each tick.
	gravityBias = 0.3
	// dragFactor decays horizontal velocity each tick.
	dragFactor = 0.98

	trailLifetime = 20
	trailJitter   = 3.0
)

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   color.RGBA
	Life    int
	MaxLife int
	Size    float64
}

// Fade is the render alpha fraction for the particle's remaining life.
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

type System struct {
	particles []Particle
	rng       *rand.Rand
}

// New creates a system with its own random source. Pass a fixed seed for
// deterministic tests.
func New(seed int64) *System {
	return &System{rng: rand.New(rand.NewSource(seed))}
}

// SpawnTrail adds one mote near (x, y) that inherits a fraction of the
// seed velocity plus a little jitter.
func (s *System) SpawnTrail(x, y, vx, vy float64, col color.RGBA) {
	s.particles = append(s.particles, Particle{
		X:       x + s.rng.Float64()*2*trailJitter - trailJitter,
		Y:       y + s.rng.Float64()*2*trailJitter - trailJitter,
		VX:      vx*0.3 + s.rng.Float64()*2 - 1,
		VY:      vy*0.3 + s.rng.Float64()*2 - 1,
		Color:   col,
		Life:    trailLifetime,
		MaxLife: trailLifetime,
		Size:    s.randomSize(),
	})
}

// SpawnBurst adds count motes at (x, y) with random radial velocities in
// [minSpeed, maxSpeed], an upward bias added to the vertical component,
// lifetimes in [minLife, maxLife], and colors drawn from palette.
func (s *System) SpawnBurst(x, y float64, count int, minSpeed, maxSpeed, upBias float64, minLife, maxLife int, palette []color.RGBA) {
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := minSpeed + s.rng.Float64()*(maxSpeed-minSpeed)
		life := minLife
		if maxLife > minLife {
			life += s.rng.Intn(maxLife - minLife + 1)
		}
		s.particles = append(s.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed + upBias,
			Color:   palette[s.rng.Intn(len(palette))],
			Life:    life,
			MaxLife: life,
			Size:    s.randomSize(),
		})
	}
}

// Advance ages every live particle by one tick and retires the dead ones
// with a mark-and-compact pass.
func (s *System) Advance() {
	live := s.particles[:0]
	for i := range s.particles {
		p := &s.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += gravityBias
		p.VX *= dragFactor
		p.Life--
		if p.Life > 0 {
			live = append(live, *p)
		}
	}
	s.particles = live
}

func (s *System) Clear() {
	s.particles = s.particles[:0]
}

func (s *System) Len() int {
	return len(s.particles)
}

// Particles exposes the live set for the render pass. Callers must not
// mutate it.
func (s *System) Particles() []Particle {
	return s.particles
}

func (s *System) randomSize() float64 {
	return float64(2 + s.rng.Intn(4))
}
