package scenes

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
)

// newTestScene builds a scene whose textures can never load, so no
// Ebitengine images are created.
func newTestScene(t *testing.T) *FireworkScene {
	t.Helper()
	cfg := config.DefaultFireworkConfig()
	rm := game.NewResourceManager(os.ReadFile, []string{filepath.Join(t.TempDir(), "missing.png")})
	am := game.NewAudioManager(nil, cfg.Audio)
	return NewFireworkScene(cfg, 42, rm, am)
}

func TestLayoutButtons(t *testing.T) {
	buttons := layoutButtons(960, 640, 1)
	if len(buttons) != 2 {
		t.Fatalf("Expected 2 buttons, got %d", len(buttons))
	}
	if buttons[0].label != "Launch" || buttons[0].smile {
		t.Errorf("Expected first button to be plain Launch, got %+v", buttons[0])
	}
	if buttons[1].label != "Smile" || !buttons[1].smile {
		t.Errorf("Expected second button to be Smile, got %+v", buttons[1])
	}
	for _, b := range buttons {
		if b.rect.Y+b.rect.H > 640 || b.rect.X < 0 {
			t.Errorf("Button %s outside the screen: %+v", b.label, b.rect)
		}
	}
	if buttons[0].rect.X+buttons[0].rect.W > buttons[1].rect.X {
		t.Error("Expected buttons not to overlap")
	}

	large := layoutButtons(960, 640, 1.5)
	if large[0].rect.W != buttonWidth*1.5 || large[0].rect.Y+large[0].rect.H != 640-buttonMargin {
		t.Errorf("Expected scaled button anchored to the bottom margin, got %+v", large[0].rect)
	}
}

func TestButtonAt(t *testing.T) {
	buttons := layoutButtons(960, 640, 1)

	tests := []struct {
		name      string
		x, y      float64
		wantFound bool
		wantSmile bool
	}{
		{"launch button", buttons[0].rect.X + 5, buttons[0].rect.Y + 5, true, false},
		{"smile button", buttons[1].rect.X + 5, buttons[1].rect.Y + 5, true, true},
		{"empty sky", 480, 100, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := buttonAt(buttons, tt.x, tt.y)
			if ok != tt.wantFound {
				t.Fatalf("Expected found=%v, got %v", tt.wantFound, ok)
			}
			if ok && b.smile != tt.wantSmile {
				t.Errorf("Expected smile=%v, got %v", tt.wantSmile, b.smile)
			}
		})
	}
}

func TestSpriteSize(t *testing.T) {
	if got := spriteSize(16, 1, 60, 60); got != 16 {
		t.Errorf("Expected 16 at target distance, got %v", got)
	}
	if got := spriteSize(16, 2, 60, 120); got != 16 {
		t.Errorf("Expected double scale at double distance to cancel, got %v", got)
	}
	if got := spriteSize(16, 1, 60, 0); got != 0 {
		t.Errorf("Expected 0 for non-positive depth, got %v", got)
	}
}

func TestColorScale(t *testing.T) {
	tests := []struct {
		name  string
		color components.Color
		want  [4]float32
	}{
		{"opaque white", components.White, [4]float32{1, 1, 1, 1}},
		{"half faded", components.Color{R: 1, G: 0.5, B: 0, A: 0.5}, [4]float32{0.5, 0.25, 0, 0.5}},
		{"negative alpha", components.Color{R: 1, G: 1, B: 1, A: -0.2}, [4]float32{0, 0, 0, 0}},
		{"alpha above one", components.Color{R: 1, G: 1, B: 1, A: 1.5}, [4]float32{1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := colorScale(tt.color)
			got := [4]float32{r, g, b, a}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestFireworkScene_LaunchAndTick(t *testing.T) {
	s := newTestScene(t)

	s.Launch(false)
	s.Launch(true)
	if s.Fleet().Len() != 2 || s.launched != 2 {
		t.Fatalf("Expected 2 launched fireworks, got len=%d launched=%d", s.Fleet().Len(), s.launched)
	}
	if s.Fleet().ParticleCount() != 30 {
		t.Errorf("Expected 30 particles, got %d", s.Fleet().ParticleCount())
	}

	for i := 0; i < 1000; i++ {
		s.advance()
	}
	if s.explosions != 2 {
		t.Errorf("Expected 2 explosions, got %d", s.explosions)
	}
	if s.Fleet().Len() != 0 {
		t.Errorf("Expected every firework retired, got %d", s.Fleet().Len())
	}
	if s.ticks != 1000 {
		t.Errorf("Expected 1000 ticks, got %d", s.ticks)
	}
}

func TestFireworkScene_TicksWhileTexturesMissing(t *testing.T) {
	s := newTestScene(t)
	s.Launch(false)
	s.advance()

	lead := s.Fleet().Fireworks()[0].Lead()
	if lead.Age <= 0 {
		t.Errorf("Expected simulation to advance without textures, lead age %v", lead.Age)
	}
}

func TestFireworkScene_RotationAndResize(t *testing.T) {
	s := newTestScene(t)
	if s.rotating {
		t.Fatal("Expected rotation off by default")
	}
	if !s.ToggleRotation() {
		t.Fatal("Expected rotation on after toggle")
	}

	yaw := s.camera.Yaw
	s.advance()
	if s.camera.Yaw == yaw {
		t.Error("Expected camera yaw to change while rotating")
	}

	s.Resize(400, 300)
	if s.camera.Width != 400 || s.camera.Height != 300 {
		t.Errorf("Expected camera 400x300, got %vx%v", s.camera.Width, s.camera.Height)
	}
	if s.buttons[0].rect.Y+s.buttons[0].rect.H != 300-buttonMargin {
		t.Errorf("Expected buttons re-anchored, got y=%v", s.buttons[0].rect.Y)
	}
}

func TestLoadMessage(t *testing.T) {
	s := newTestScene(t)

	deadline := time.Now().Add(5 * time.Second)
	for s.resources.PollTextures() == game.LoadPending && time.Now().Before(deadline) {
		if msg := loadMessage(s.resources); msg != "loading textures..." {
			t.Fatalf("Expected loading message, got %q", msg)
		}
		time.Sleep(5 * time.Millisecond)
	}

	msg := loadMessage(s.resources)
	if !strings.HasPrefix(msg, "texture load failed") {
		t.Errorf("Expected failure message, got %q", msg)
	}
}

func TestButtonIndexAt(t *testing.T) {
	buttons := layoutButtons(960, 640, 1)

	if i := buttonIndexAt(buttons, buttons[1].rect.X+1, buttons[1].rect.Y+1); i != 1 {
		t.Errorf("Expected index 1 over the Smile button, got %d", i)
	}
	if i := buttonIndexAt(buttons, 480, 100); i != -1 {
		t.Errorf("Expected -1 over empty sky, got %d", i)
	}
}

func TestHUDText_ShowsNewestFirework(t *testing.T) {
	s := newTestScene(t)
	if hud := hudText(s.Fleet(), 0, 0); strings.Contains(hud, "latest:") {
		t.Errorf("Expected no latest ID for an empty fleet, got %q", hud)
	}

	s.Launch(false)
	s.Launch(true)
	newest := s.Fleet().Newest()
	hud := hudText(s.Fleet(), s.launched, s.explosions)

	if !strings.Contains(hud, "latest: "+newest.ShortID()) {
		t.Errorf("Expected HUD to show newest firework %s, got %q", newest.ShortID(), hud)
	}
	if len(newest.ShortID()) != 8 {
		t.Errorf("Expected an 8-character short ID, got %q", newest.ShortID())
	}
	if !strings.Contains(hud, "fireworks: 2  particles: 30  launched: 2") {
		t.Errorf("Expected fleet counters in HUD, got %q", hud)
	}
}
