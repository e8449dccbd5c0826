package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
)

// FireworkSystem advances fireworks by one simulation tick.
//
// Each tick runs three phases on a single firework:
//  1. Integrate every particle (age, staggered launch, Euler step, gravity)
//  2. Fire the one-shot explosion when the lead particle slows down
//  3. Fade every particle once the firework has exploded
//
// The system owns the random source used for plain explosion jitter.
type FireworkSystem struct {
	cfg *config.FireworkConfig
	rng *rand.Rand
}

// NewFireworkSystem creates a FireworkSystem.
func NewFireworkSystem(cfg *config.FireworkConfig, rng *rand.Rand) *FireworkSystem {
	return &FireworkSystem{cfg: cfg, rng: rng}
}

// Advance mutates fw in place and reports whether it exploded during this tick.
func (s *FireworkSystem) Advance(fw *components.Firework) bool {
	lead := fw.Lead()
	if lead == nil {
		return false
	}

	for i := range fw.Particles {
		s.integrate(&fw.Particles[i])
	}

	explodedNow := false
	if !fw.Exploded && s.IsActive(lead) && lead.Velocity.Y < s.cfg.Explosion.TriggerVelocity {
		fw.Exploded = true
		explodedNow = true
		if fw.Smile {
			s.explodeSmile(fw)
		} else {
			s.explodePlain(fw)
		}
	}

	if fw.Exploded {
		for i := range fw.Particles {
			fw.Particles[i].Color.A -= s.cfg.Fade.AlphaStep
		}
	}

	return explodedNow
}

// IsActive reports whether p has waited out its stagger offset.
//
// Activation is age > offset*staggerStep. Half an age step of tolerance is
// added so accumulated rounding in Age cannot activate a particle one tick early.
func (s *FireworkSystem) IsActive(p *components.Particle) bool {
	threshold := float64(p.Offset)*s.cfg.Tick.StaggerStep + s.cfg.Tick.AgeStep/2
	return p.Age > threshold
}

func (s *FireworkSystem) integrate(p *components.Particle) {
	p.Age += s.cfg.Tick.AgeStep
	if !s.IsActive(p) {
		return
	}
	p.Position = p.Position.Add(p.Velocity)
	p.Velocity.Y -= s.cfg.Physics.Gravity
}

// explodePlain adds independent U(-jitter, jitter) noise on every axis.
func (s *FireworkSystem) explodePlain(fw *components.Firework) {
	j := s.cfg.Explosion.Jitter
	for i := range fw.Particles {
		v := &fw.Particles[i].Velocity
		v.X += s.jitter(j)
		v.Y += s.jitter(j)
		v.Z += s.jitter(j)
	}
}

func (s *FireworkSystem) jitter(amount float64) float64 {
	return (s.rng.Float64()*2 - 1) * amount
}

// explodeSmile spreads the body into a ring, the mouth into an inner arc and
// pushes the two corners out symmetrically.
func (s *FireworkSystem) explodeSmile(fw *components.Firework) {
	ex := s.cfg.Explosion

	body := fw.ParticlesByRole(components.RoleBody)
	step := RingStep(len(body))
	for k, p := range body {
		p.Velocity = p.Velocity.Add(ringImpulse(step*float64(k), ex.FaceRadius))
	}

	for k, p := range fw.ParticlesByRole(components.RoleMouth) {
		angle := step * float64(k+ex.MouthShift)
		p.Velocity = p.Velocity.Add(ringImpulse(angle, ex.FeatureRadius))
	}

	corner := ex.CornerAngle()
	for k, p := range fw.ParticlesByRole(components.RoleCorner) {
		sign := 1.0
		if k%2 == 1 {
			sign = -1
		}
		p.Velocity.X += sign * math.Cos(corner) * ex.FeatureRadius
		p.Velocity.Z += math.Sin(corner) * ex.FeatureRadius
	}
}

// RingStep returns the angle between neighbours of an n-particle ring.
func RingStep(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}

// ringImpulse is the horizontal velocity increment for a ring member at angle.
func ringImpulse(angle, radius float64) components.Vec3 {
	return components.Vec3{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius}
}
