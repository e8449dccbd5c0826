package scenes

import (
	"context"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/utils"
)

// rotateRampStep 旋转启停过渡每 tick 的进度（约半秒）
const rotateRampStep = 1.0 / 30

// FireworkScene 烟花场景
//
// 职责：
//   - 每个 tick 推进烟花队列（固定步长，与帧时间无关）
//   - 处理按钮和键盘输入
//   - 以加色混合绘制全部粒子
//
// The simulation keeps running while textures load; only particle drawing
// waits for them.
type FireworkScene struct {
	cfg *config.FireworkConfig

	factory   *entities.FireworkFactory
	fleet     *systems.FleetManager
	resources *game.ResourceManager
	audio     *game.AudioManager

	camera     *utils.Camera
	rotating   bool
	rotateRamp float64
	starfield  *Starfield
	buttons    []button
	// hover 指针下方的按钮索引，-1 表示没有
	hover int

	// particles 每帧复用的展开缓冲
	particles []components.Particle

	ticks      int
	launched   int
	explosions int
}

// NewFireworkScene creates the scene and starts loading textures.
//
// 参数：
//   - cfg: 已校验的模拟配置
//   - seed: 随机种子，发射速度和爆炸扰动各自使用独立的生成器
//   - rm: 贴图资源管理器
//   - am: 音效管理器（可为禁用状态）
func NewFireworkScene(cfg *config.FireworkConfig, seed int64, rm *game.ResourceManager, am *game.AudioManager) *FireworkScene {
	sys := systems.NewFireworkSystem(cfg, rand.New(rand.NewSource(seed+1)))

	s := &FireworkScene{
		cfg:       cfg,
		factory:   entities.NewFireworkFactory(cfg, rand.New(rand.NewSource(seed))),
		fleet:     systems.NewFleetManager(cfg, sys),
		resources: rm,
		audio:     am,
		camera: &utils.Camera{
			Distance:  cfg.Camera.Distance,
			Elevation: cfg.Camera.Elevation,
			TargetY:   cfg.Camera.TargetY,
			FOV:       cfg.Camera.FOVDeg * math.Pi / 180,
		},
		rotating:  cfg.Camera.Rotate,
		starfield: NewStarfield(cfg.Sky, cfg.Camera.TargetY),
		hover:     -1,
	}
	if s.rotating {
		s.rotateRamp = 1
	}
	s.Resize(cfg.Window.Width, cfg.Window.Height)

	rm.LoadTexturesAsync(context.Background())
	log.Printf("[FireworkScene] Created (seed=%d, stars=%d)", seed, s.starfield.Len())
	return s
}

// Resize implements game.Resizer.
func (s *FireworkScene) Resize(width, height int) {
	s.camera.Resize(width, height)
	s.buttons = layoutButtons(width, height, utils.UIScale())
}

// Update advances the scene by one tick.
func (s *FireworkScene) Update() error {
	s.resources.PollTextures()

	if err := s.handleInput(); err != nil {
		return err
	}

	s.advance()
	return nil
}

// advance runs the per-tick simulation work that does not depend on input.
func (s *FireworkScene) advance() {
	// 旋转开关时速度平滑过渡
	if s.rotating {
		s.rotateRamp = math.Min(1, s.rotateRamp+rotateRampStep)
	} else {
		s.rotateRamp = math.Max(0, s.rotateRamp-rotateRampStep)
	}
	if s.rotateRamp > 0 {
		s.camera.Rotate(s.cfg.Camera.RotateSpeed * utils.EaseOutQuad(s.rotateRamp))
	}

	report := s.fleet.Tick()
	if report.Explosions > 0 {
		s.explosions += report.Explosions
		s.audio.PlayExplosion()
	}

	s.starfield.Advance(s.cfg.Tick.AgeStep)
	s.ticks++
}

// Launch enqueues one firework with a random texture.
func (s *FireworkScene) Launch(smile bool) {
	s.fleet.Enqueue(s.factory.Launch(smile, s.factory.RandomTexture()))
	s.launched++
}

// Fleet exposes the fleet for the debug overlay and tests.
func (s *FireworkScene) Fleet() *systems.FleetManager {
	return s.fleet
}

// ToggleRotation flips camera rotation and returns the new state.
func (s *FireworkScene) ToggleRotation() bool {
	s.rotating = !s.rotating
	log.Printf("[FireworkScene] Camera rotation: %v", s.rotating)
	return s.rotating
}

func (s *FireworkScene) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		log.Printf("[FireworkScene] Quit requested")
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad1) {
		s.Launch(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad2) {
		s.Launch(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.ToggleRotation()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.fleet.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		muted := s.audio.ToggleMute()
		log.Printf("[FireworkScene] Muted: %v", muted)
	}

	px, py := utils.GetPointerPosition()
	s.hover = buttonIndexAt(s.buttons, float64(px), float64(py))

	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		if b, ok := buttonAt(s.buttons, float64(x), float64(y)); ok {
			s.Launch(b.smile)
		}
	}
	return nil
}
