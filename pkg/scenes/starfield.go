package scenes

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ojrac/opensimplex-go"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// skyRadius 星星所在球面的半径（世界单位）
const skyRadius = 400

type star struct {
	pos  components.Vec3
	size float32
}

// Starfield 背景星空
//
// Stars sit on the upper half of a large sphere around the camera target,
// so they turn with the camera. Each star's brightness follows its own
// track through 2D simplex noise.
type Starfield struct {
	stars   []star
	noise   opensimplex.Noise
	twinkle float64
	time    float64
}

// NewStarfield scatters cfg.Stars stars using cfg.Seed.
func NewStarfield(cfg config.SkyConfig, targetY float64) *Starfield {
	rng := rand.New(rand.NewSource(cfg.Seed))
	stars := make([]star, cfg.Stars)
	for i := range stars {
		yaw := rng.Float64() * 2 * math.Pi
		// 只取地平线以上
		pitch := math.Asin(rng.Float64())
		stars[i] = star{
			pos: components.Vec3{
				X: math.Cos(pitch) * math.Sin(yaw) * skyRadius,
				Y: targetY + math.Sin(pitch)*skyRadius,
				Z: math.Cos(pitch) * math.Cos(yaw) * skyRadius,
			},
			size: 1 + float32(rng.Intn(2)),
		}
	}

	return &Starfield{
		stars:   stars,
		noise:   opensimplex.NewNormalized(cfg.Seed),
		twinkle: cfg.Twinkle,
	}
}

// Len returns the number of stars.
func (sf *Starfield) Len() int {
	return len(sf.stars)
}

// Advance moves the twinkle clock forward by dt simulated seconds.
func (sf *Starfield) Advance(dt float64) {
	sf.time += dt
}

// Brightness returns star i's current brightness in [0.3, 1].
func (sf *Starfield) Brightness(i int) float64 {
	n := sf.noise.Eval2(float64(i)*1.7, sf.time*sf.twinkle)
	return utils.Lerp(0.3, 1, utils.Clamp01(n))
}

// Draw projects every visible star through cam.
func (sf *Starfield) Draw(screen *ebiten.Image, cam *utils.Camera) {
	for i, s := range sf.stars {
		sx, sy, _, ok := cam.Project(s.pos.X, s.pos.Y, s.pos.Z)
		if !ok || sx < 0 || sy < 0 || sx >= cam.Width || sy >= cam.Height {
			continue
		}
		v := uint8(255 * sf.Brightness(i))
		vector.DrawFilledRect(screen, float32(sx), float32(sy), s.size, s.size, color.RGBA{R: v, G: v, B: v, A: 255}, false)
	}
}
