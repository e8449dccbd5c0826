package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the embedded location of the firework configuration.
const DefaultConfigPath = "data/fireworks.yaml"

// FireworkConfig 烟花模拟配置
//
// Every tuning constant of the simulation lives here. The value is passed
// explicitly into the factory, the simulation system and the fleet manager;
// nothing reads a package-level copy.
//
// 配置文件位置: data/fireworks.yaml
type FireworkConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Tick      TickConfig      `yaml:"tick"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Launch    LaunchConfig    `yaml:"launch"`
	Plain     BurstConfig     `yaml:"plain"`
	Smile     BurstConfig     `yaml:"smile"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Fade      FadeConfig      `yaml:"fade"`
	Fleet     FleetConfig     `yaml:"fleet"`
	Textures  TexturesConfig  `yaml:"textures"`
	Camera    CameraConfig    `yaml:"camera"`
	Audio     AudioConfig     `yaml:"audio"`
	Sky       SkyConfig       `yaml:"sky"`
}

// Range 随机取值范围，取值服从 [Min, Max] 上的均匀分布
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TickConfig 时间步进配置
//
// Simulated time advances by AgeStep per tick regardless of wall-clock
// frame time, so simulation speed follows TPS.
type TickConfig struct {
	// AgeStep 每 tick 增加的粒子年龄
	AgeStep float64 `yaml:"ageStep"`
	// StaggerStep 每个 Offset 单位对应的发射延迟
	StaggerStep float64 `yaml:"staggerStep"`
	// TPS 每秒 tick 数（传给 ebiten.SetTPS）
	TPS int `yaml:"tps"`
}

// PhysicsConfig 运动模型配置
type PhysicsConfig struct {
	// Gravity 每 tick 从 velocity.y 扣除的量
	Gravity float64 `yaml:"gravity"`
}

// LaunchConfig 发射初速度配置
type LaunchConfig struct {
	// Horizontal 用于 vx 和 vz
	Horizontal Range `yaml:"horizontal"`
	// Vertical 用于 vy
	Vertical Range `yaml:"vertical"`
}

// BurstConfig 单种烟花的粒子配置
type BurstConfig struct {
	Particles int     `yaml:"particles"`
	Scale     float64 `yaml:"scale"`
}

// ExplosionConfig 爆炸配置
type ExplosionConfig struct {
	// TriggerVelocity 领头粒子 velocity.y 低于此值时爆炸
	TriggerVelocity float64 `yaml:"triggerVelocity"`
	// Jitter 普通烟花每个轴的随机扰动幅度
	Jitter float64 `yaml:"jitter"`
	// FaceRadius 笑脸外圈速度半径
	FaceRadius float64 `yaml:"faceRadius"`
	// FeatureRadius 嘴巴和嘴角的速度半径
	FeatureRadius float64 `yaml:"featureRadius"`
	// MouthShift 嘴巴弧线相对外圈的角度索引偏移
	MouthShift int `yaml:"mouthShift"`
	// CornerAngleDeg 嘴角方向（度）
	CornerAngleDeg float64 `yaml:"cornerAngleDeg"`
}

// CornerAngle returns the mouth-corner angle in radians.
func (e ExplosionConfig) CornerAngle() float64 {
	return e.CornerAngleDeg * math.Pi / 180
}

// FadeConfig 淡出配置
type FadeConfig struct {
	// AlphaStep 爆炸后每 tick 扣除的 alpha
	AlphaStep float64 `yaml:"alphaStep"`
}

// FleetConfig 烟花队列配置
type FleetConfig struct {
	// RetireAge 队首烟花领头粒子年龄超过此值时被移除
	RetireAge float64 `yaml:"retireAge"`
}

// TexturesConfig 贴图配置
type TexturesConfig struct {
	// Paths 贴图路径，索引即 imageID
	Paths []string `yaml:"paths"`
}

// Count returns the number of texture slots.
func (t TexturesConfig) Count() int {
	return len(t.Paths)
}

// CameraConfig 摄像机配置
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	// Elevation 摄像机相对目标点的高度
	Elevation float64 `yaml:"elevation"`
	// TargetY 摄像机注视点高度
	TargetY float64 `yaml:"targetY"`
	FOVDeg  float64 `yaml:"fovDeg"`
	// RotateSpeed 旋转开启时每 tick 增加的偏航角（弧度）
	RotateSpeed float64 `yaml:"rotateSpeed"`
	// Rotate 启动时是否旋转
	Rotate bool `yaml:"rotate"`
	// SpriteSize 粒子位于注视点距离时的贴图像素尺寸（Scale=1）
	SpriteSize float64 `yaml:"spriteSize"`
}

// AudioConfig 音效配置
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sampleRate"`
	// PopMillis 爆炸音效时长（毫秒）
	PopMillis int `yaml:"popMillis"`
}

// SkyConfig 星空背景配置
type SkyConfig struct {
	Stars int   `yaml:"stars"`
	Seed  int64 `yaml:"seed"`
	// Twinkle 闪烁速度（噪声时间缩放）
	Twinkle float64 `yaml:"twinkle"`
}

// DefaultFireworkConfig returns the hand-tuned constants the toy ships with.
func DefaultFireworkConfig() *FireworkConfig {
	return &FireworkConfig{
		Window: WindowConfig{Width: 960, Height: 640, Title: "Fireworks"},
		Tick:   TickConfig{AgeStep: 0.01, StaggerStep: 0.01, TPS: 60},
		Physics: PhysicsConfig{
			Gravity: 0.0009,
		},
		Launch: LaunchConfig{
			Horizontal: Range{Min: -0.02, Max: 0.02},
			Vertical:   Range{Min: 0.15, Max: 0.25},
		},
		Plain: BurstConfig{Particles: 10, Scale: 1},
		Smile: BurstConfig{Particles: 20, Scale: 2},
		Explosion: ExplosionConfig{
			TriggerVelocity: 0.07,
			Jitter:          0.125,
			FaceRadius:      0.2,
			FeatureRadius:   0.1,
			MouthShift:      7,
			CornerAngleDeg:  45,
		},
		Fade:  FadeConfig{AlphaStep: 0.005},
		Fleet: FleetConfig{RetireAge: 4},
		Textures: TexturesConfig{Paths: []string{
			"assets/textures/spark0.png",
			"assets/textures/spark1.png",
			"assets/textures/spark2.png",
			"assets/textures/spark3.png",
			"assets/textures/spark4.png",
		}},
		Camera: CameraConfig{
			Distance:    60,
			Elevation:   6,
			TargetY:     16,
			FOVDeg:      60,
			RotateSpeed: 0.005,
			SpriteSize:  16,
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.35, SampleRate: 48000, PopMillis: 220},
		Sky:   SkyConfig{Stars: 160, Seed: 7, Twinkle: 0.8},
	}
}

// LoadFireworkConfig 从磁盘加载烟花配置
//
// 参数:
//   - path: 配置文件路径（如 "data/fireworks.yaml"）
//
// 返回:
//   - *FireworkConfig: 默认值之上叠加文件内容后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadFireworkConfig(path string) (*FireworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read firework config: %w", err)
	}
	return ParseFireworkConfig(data)
}

// ParseFireworkConfig decodes YAML on top of DefaultFireworkConfig and
// validates the result. Keys missing from data keep their default value.
func ParseFireworkConfig(data []byte) (*FireworkConfig, error) {
	config := DefaultFireworkConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse firework config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid firework config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *FireworkConfig) Validate() error {
	if c.Tick.AgeStep <= 0 {
		return fmt.Errorf("tick.ageStep must be > 0, got %g", c.Tick.AgeStep)
	}
	if c.Tick.StaggerStep < 0 {
		return fmt.Errorf("tick.staggerStep must be >= 0, got %g", c.Tick.StaggerStep)
	}
	if c.Tick.TPS <= 0 {
		return fmt.Errorf("tick.tps must be > 0, got %d", c.Tick.TPS)
	}

	if err := c.Launch.Horizontal.validate("launch.horizontal"); err != nil {
		return err
	}
	if err := c.Launch.Vertical.validate("launch.vertical"); err != nil {
		return err
	}

	if c.Plain.Particles < 1 {
		return fmt.Errorf("plain.particles must be >= 1, got %d", c.Plain.Particles)
	}
	if c.Smile.Particles < SmileFeatureParticles+1 {
		return fmt.Errorf("smile.particles must be >= %d, got %d", SmileFeatureParticles+1, c.Smile.Particles)
	}
	if c.Plain.Scale <= 0 || c.Smile.Scale <= 0 {
		return fmt.Errorf("burst scale must be > 0, got plain=%g smile=%g", c.Plain.Scale, c.Smile.Scale)
	}

	if c.Explosion.Jitter < 0 {
		return fmt.Errorf("explosion.jitter must be >= 0, got %g", c.Explosion.Jitter)
	}
	if c.Fade.AlphaStep < 0 {
		return fmt.Errorf("fade.alphaStep must be >= 0, got %g", c.Fade.AlphaStep)
	}
	if c.Fleet.RetireAge <= 0 {
		return fmt.Errorf("fleet.retireAge must be > 0, got %g", c.Fleet.RetireAge)
	}

	if c.Textures.Count() < 1 {
		return fmt.Errorf("textures.paths must list at least one texture")
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera.distance must be > 0, got %g", c.Camera.Distance)
	}
	if c.Camera.FOVDeg <= 0 || c.Camera.FOVDeg >= 180 {
		return fmt.Errorf("camera.fovDeg must be in (0, 180), got %g", c.Camera.FOVDeg)
	}

	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sampleRate must be > 0, got %d", c.Audio.SampleRate)
	}
	if c.Sky.Stars < 0 {
		return fmt.Errorf("sky.stars must be >= 0, got %d", c.Sky.Stars)
	}

	return nil
}

func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%g) > max(%g)", name, r.Min, r.Max)
	}
	return nil
}

// Smile burst layout: the trailing SmileFeatureParticles particles are six
// mouth particles followed by two corners, everything before is body.
const (
	SmileMouthParticles   = 6
	SmileCornerParticles  = 2
	SmileFeatureParticles = SmileMouthParticles + SmileCornerParticles
)
