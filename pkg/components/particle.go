package components

// Vec3 is a world-space vector (世界坐标, origin-relative).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}


// Color holds RGBA channels in [0, 1].
// Alpha may drop below zero once a burst fades out; renderers treat that as transparent.
type Color struct {
	R, G, B, A float64
}

// White is the launch color of every particle.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Texture selects which sprite a particle is drawn with.
//
// The zero value is untextured; the render adapter draws those with
// texture unit 0.
type Texture struct {
	id       int
	textured bool
}

// Untextured returns a Texture that uses the default sprite.
func Untextured() Texture {
	return Texture{}
}

// Textured returns a Texture bound to the image at index id.
func Textured(id int) Texture {
	return Texture{id: id, textured: true}
}

// ImageID returns the texture index and whether the particle carries one.
func (t Texture) ImageID() (int, bool) {
	return t.id, t.textured
}

// IndexOr returns the texture index, or def for untextured particles.
func (t Texture) IndexOr(def int) int {
	if !t.textured {
		return def
	}
	return t.id
}

// ParticleRole tags the part a particle plays in the explosion pattern.
type ParticleRole int

const (
	// RoleBody is the trail / outer ring. Plain bursts only contain body particles.
	RoleBody ParticleRole = iota
	// RoleMouth is the inner arc of a smile burst.
	RoleMouth
	// RoleCorner is one of the two mouth corners of a smile burst.
	RoleCorner
)

// String implements fmt.Stringer.
func (r ParticleRole) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleMouth:
		return "mouth"
	case RoleCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Particle is one billboard of a firework burst.
//
// This is a pure data type; FireworkSystem mutates it every tick.
type Particle struct {
	// Offset 发射延迟：粒子在第 Offset+1 个 tick 才开始移动
	Offset int

	Position Vec3 // 世界坐标
	Velocity Vec3 // 每 tick 位移

	Color Color   // Only A changes after the explosion
	Scale float64 // Billboard size multiplier
	Age   float64 // Accumulated simulated time, never decreases

	Texture Texture
	Role    ParticleRole
}
