package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
)

func newTestFactory(seed int64) *FireworkFactory {
	return NewFireworkFactory(config.DefaultFireworkConfig(), rand.New(rand.NewSource(seed)))
}

// TestLaunch_Plain 测试普通烟花的初始状态
func TestLaunch_Plain(t *testing.T) {
	fw := newTestFactory(1).Launch(false, components.Untextured())

	if len(fw.Particles) != 10 {
		t.Fatalf("Expected 10 particles, got %d", len(fw.Particles))
	}
	if fw.Exploded {
		t.Error("Expected new firework not to be exploded")
	}
	if fw.Smile {
		t.Error("Expected plain firework")
	}
	if fw.ID == "" {
		t.Error("Expected firework ID to be set")
	}

	shared := fw.Particles[0].Velocity
	if shared.X < -0.02 || shared.X > 0.02 || shared.Z < -0.02 || shared.Z > 0.02 {
		t.Errorf("Expected horizontal velocity in [-0.02, 0.02], got %+v", shared)
	}
	if shared.Y < 0.15 || shared.Y > 0.25 {
		t.Errorf("Expected vertical velocity in [0.15, 0.25], got %f", shared.Y)
	}

	for i, p := range fw.Particles {
		if p.Offset != i {
			t.Errorf("Particle %d: expected offset %d, got %d", i, i, p.Offset)
		}
		if p.Velocity != shared {
			t.Errorf("Particle %d: expected shared velocity %+v, got %+v", i, shared, p.Velocity)
		}
		if p.Position != (components.Vec3{}) {
			t.Errorf("Particle %d: expected origin position, got %+v", i, p.Position)
		}
		if p.Color != components.White {
			t.Errorf("Particle %d: expected white color, got %+v", i, p.Color)
		}
		if p.Age != 0 {
			t.Errorf("Particle %d: expected age 0, got %f", i, p.Age)
		}
		if p.Scale != 1 {
			t.Errorf("Particle %d: expected scale 1, got %f", i, p.Scale)
		}
		if p.Role != components.RoleBody {
			t.Errorf("Particle %d: expected body role, got %s", i, p.Role)
		}
		if _, ok := p.Texture.ImageID(); ok {
			t.Errorf("Particle %d: expected untextured particle", i)
		}
	}
}

// TestLaunch_SmileRoles 测试笑脸烟花的粒子角色划分
func TestLaunch_SmileRoles(t *testing.T) {
	fw := newTestFactory(2).Launch(true, components.Textured(4))

	if len(fw.Particles) != 20 {
		t.Fatalf("Expected 20 particles, got %d", len(fw.Particles))
	}
	if !fw.Smile {
		t.Error("Expected smile firework")
	}

	if n := len(fw.ParticlesByRole(components.RoleBody)); n != 12 {
		t.Errorf("Expected 12 body particles, got %d", n)
	}
	if n := len(fw.ParticlesByRole(components.RoleMouth)); n != 6 {
		t.Errorf("Expected 6 mouth particles, got %d", n)
	}
	corners := fw.ParticlesByRole(components.RoleCorner)
	if len(corners) != 2 {
		t.Fatalf("Expected 2 corner particles, got %d", len(corners))
	}
	if corners[0].Offset != 18 || corners[1].Offset != 19 {
		t.Errorf("Expected corners at offsets 18 and 19, got %d and %d", corners[0].Offset, corners[1].Offset)
	}

	for i, p := range fw.Particles {
		if id, ok := p.Texture.ImageID(); !ok || id != 4 {
			t.Errorf("Particle %d: expected texture 4, got (%d, %v)", i, id, ok)
		}
		if p.Scale != 2 {
			t.Errorf("Particle %d: expected scale 2, got %f", i, p.Scale)
		}
	}
}

// TestLaunch_Deterministic 相同种子产生相同初速度
func TestLaunch_Deterministic(t *testing.T) {
	a := newTestFactory(42)
	b := newTestFactory(42)

	for i := 0; i < 5; i++ {
		fa := a.Launch(i%2 == 0, a.RandomTexture())
		fb := b.Launch(i%2 == 0, b.RandomTexture())

		if fa.Particles[0].Velocity != fb.Particles[0].Velocity {
			t.Errorf("Launch %d: expected identical velocities, got %+v and %+v",
				i, fa.Particles[0].Velocity, fb.Particles[0].Velocity)
		}
		if fa.Particles[0].Texture != fb.Particles[0].Texture {
			t.Errorf("Launch %d: expected identical textures", i)
		}
		if fa.ID == fb.ID {
			t.Errorf("Launch %d: expected distinct firework IDs", i)
		}
	}
}

func TestRandomTextureRange(t *testing.T) {
	f := newTestFactory(3)
	for i := 0; i < 200; i++ {
		id, ok := f.RandomTexture().ImageID()
		if !ok {
			t.Fatal("Expected textured result")
		}
		if id < 0 || id >= 5 {
			t.Fatalf("Expected texture index in [0, 5), got %d", id)
		}
	}
}

func TestLaunch_DegenerateRange(t *testing.T) {
	cfg := config.DefaultFireworkConfig()
	cfg.Launch.Horizontal = config.Range{Min: 0.01, Max: 0.01}
	cfg.Launch.Vertical = config.Range{Min: 0.2, Max: 0.2}

	fw := NewFireworkFactory(cfg, rand.New(rand.NewSource(9))).Launch(false, components.Untextured())
	want := components.Vec3{X: 0.01, Y: 0.2, Z: 0.01}
	if fw.Particles[0].Velocity != want {
		t.Errorf("Expected velocity %+v, got %+v", want, fw.Particles[0].Velocity)
	}
}
