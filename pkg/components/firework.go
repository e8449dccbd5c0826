package components

// Firework is one burst: an ordered set of particles plus its explosion state.
//
// Particle order is meaningful. Index 0 is the lead particle that drives the
// explosion trigger and retirement, and Offset equals the index, so later
// particles trail behind it.
type Firework struct {
	// ID identifies the firework in log output and the HUD.
	ID string

	Particles []Particle

	// Exploded flips to true exactly once and never back.
	Exploded bool
	// Smile selects the smile explosion pattern instead of random jitter.
	Smile bool
}

// shortIDLen UUID 第一段的长度
const shortIDLen = 8

// ShortID returns the first group of the ID, as shown in the HUD.
func (f *Firework) ShortID() string {
	if len(f.ID) <= shortIDLen {
		return f.ID
	}
	return f.ID[:shortIDLen]
}

// Lead returns the reference particle, or nil for an empty firework.
func (f *Firework) Lead() *Particle {
	if len(f.Particles) == 0 {
		return nil
	}
	return &f.Particles[0]
}

// ParticlesByRole returns pointers to the particles tagged with role,
// in burst order.
func (f *Firework) ParticlesByRole(role ParticleRole) []*Particle {
	out := make([]*Particle, 0, len(f.Particles))
	for i := range f.Particles {
		if f.Particles[i].Role == role {
			out = append(out, &f.Particles[i])
		}
	}
	return out
}
