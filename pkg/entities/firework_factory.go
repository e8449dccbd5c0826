package entities

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
)

// FireworkFactory builds new fireworks with randomized launch velocities.
//
// The factory draws from its own *rand.Rand, so two factories seeded alike
// produce identical bursts. Firework IDs come from crypto randomness and do
// not consume the simulation generator.
type FireworkFactory struct {
	cfg *config.FireworkConfig
	rng *rand.Rand
}

// NewFireworkFactory creates a factory.
//
// Parameters:
//   - cfg: simulation configuration (launch ranges, burst sizes)
//   - rng: random source for launch velocities
func NewFireworkFactory(cfg *config.FireworkConfig, rng *rand.Rand) *FireworkFactory {
	return &FireworkFactory{cfg: cfg, rng: rng}
}

// Launch creates a firework sitting at the origin.
//
// All particles share one launch velocity, start white and fully opaque,
// and have Offset equal to their index. Smile bursts tag their trailing
// particles with the mouth and corner roles.
//
// Example:
//
//	fw := factory.Launch(true, components.Textured(3))
//	fleet.Enqueue(fw)
func (f *FireworkFactory) Launch(smile bool, tex components.Texture) *components.Firework {
	burst := f.cfg.Plain
	if smile {
		burst = f.cfg.Smile
	}

	velocity := components.Vec3{
		X: uniform(f.rng, f.cfg.Launch.Horizontal),
		Y: uniform(f.rng, f.cfg.Launch.Vertical),
		Z: uniform(f.rng, f.cfg.Launch.Horizontal),
	}

	particles := make([]components.Particle, burst.Particles)
	for i := range particles {
		particles[i] = components.Particle{
			Offset:   i,
			Velocity: velocity,
			Color:    components.White,
			Scale:    burst.Scale,
			Texture:  tex,
			Role:     roleFor(smile, i, burst.Particles),
		}
	}

	return &components.Firework{
		ID:        uuid.NewString(),
		Particles: particles,
		Smile:     smile,
	}
}

// RandomTexture picks a texture index in [0, textures) from the factory's generator.
func (f *FireworkFactory) RandomTexture() components.Texture {
	return components.Textured(f.rng.Intn(f.cfg.Textures.Count()))
}

func roleFor(smile bool, index, count int) components.ParticleRole {
	if !smile {
		return components.RoleBody
	}
	switch {
	case index >= count-config.SmileCornerParticles:
		return components.RoleCorner
	case index >= count-config.SmileFeatureParticles:
		return components.RoleMouth
	default:
		return components.RoleBody
	}
}

// uniform draws from U(r.Min, r.Max).
func uniform(rng *rand.Rand, r config.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
