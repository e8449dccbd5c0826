// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析命令行参数和创建窗口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 从磁盘读取的配置文件，为空则使用嵌入的 data/fireworks.yaml
	ConfigPath string
	// Mute 启动时静音
	Mute bool
	// Seed 模拟随机种子
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.FireworkConfig
	sceneManager *game.SceneManager
	tpsApplied   bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fwCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Config loaded (textures=%d, tps=%d)", fwCfg.Textures.Count(), fwCfg.Tick.TPS)

	// 贴图总是从嵌入资源读取，磁盘配置也可能引用不存在的路径
	if err := CheckTextures(fwCfg.Textures.Paths); err != nil {
		return nil, err
	}

	// 初始化音频上下文
	var audioContext *audio.Context
	if fwCfg.Audio.Enabled {
		audioContext = audio.NewContext(fwCfg.Audio.SampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, fwCfg.Audio)
	if cfg.Mute {
		audioManager.ToggleMute()
	}
	log.Printf("[App] AudioManager initialized (enabled=%v, muted=%v)", audioManager.Enabled(), audioManager.Muted())

	resourceManager := game.NewResourceManager(embedded.ReadFile, fwCfg.Textures.Paths)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewFireworkScene(fwCfg, cfg.Seed, resourceManager, audioManager))

	return &App{
		cfg:          fwCfg,
		sceneManager: sceneManager,
	}, nil
}

// LoadConfig reads the firework configuration from path, or from the
// embedded default when path is empty.
func LoadConfig(path string) (*config.FireworkConfig, error) {
	if path != "" {
		log.Printf("[App] Loading config from disk: %s", path)
		return config.LoadFireworkConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded firework config: %w", err)
	}
	return config.ParseFireworkConfig(data)
}

// CheckTextures reports the first texture path missing from the embedded assets.
func CheckTextures(paths []string) error {
	for _, path := range paths {
		if !embedded.Exists(path) {
			return fmt.Errorf("texture %s not found in embedded assets", path)
		}
	}
	return nil
}

// FireworkConfig returns the loaded configuration.
func (a *App) FireworkConfig() *config.FireworkConfig {
	return a.cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	if !a.tpsApplied {
		ebiten.SetTPS(a.cfg.Tick.TPS)
		a.tpsApplied = true
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	return a.sceneManager.Update()
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，场景据此重新计算投影
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = a.cfg.Window.Width, a.cfg.Window.Height
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
