package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/fireworks/pkg/config"
)

// popVoices is the number of explosion sounds that can overlap.
const popVoices = 4

// AudioManager 音效管理器
// 职责：
//   - 合成爆炸音效（无需音频文件）
//   - 管理少量可复用的播放器，允许音效重叠
//   - 静音切换
//
// A nil audio context disables playback; every method is then a no-op,
// which is how headless runs and tests use it.
type AudioManager struct {
	context *audio.Context
	volume  float64
	muted   bool

	pop     []byte
	players []*audio.Player
	next    int
}

// NewAudioManager prepares the explosion sound.
//
// 参数：
//   - ctx: 全局音频上下文（可为 nil，表示禁用音频）
//   - cfg: 音效配置
func NewAudioManager(ctx *audio.Context, cfg config.AudioConfig) *AudioManager {
	am := &AudioManager{volume: cfg.Volume}
	if ctx == nil || !cfg.Enabled {
		return am
	}

	am.context = ctx
	am.pop = SynthesizePop(ctx.SampleRate(), cfg.PopMillis, 1)
	am.players = make([]*audio.Player, popVoices)
	for i := range am.players {
		am.players[i] = ctx.NewPlayerFromBytes(am.pop)
	}
	log.Printf("[AudioManager] Explosion sound ready (%d bytes, %d voices)", len(am.pop), popVoices)
	return am
}

// Enabled reports whether playback is possible at all.
func (am *AudioManager) Enabled() bool {
	return am.context != nil
}

// Muted reports whether playback is muted.
func (am *AudioManager) Muted() bool {
	return am.muted
}

// ToggleMute flips the mute flag and returns the new value.
func (am *AudioManager) ToggleMute() bool {
	am.muted = !am.muted
	return am.muted
}

// PlayExplosion plays one pop on the next voice, restarting it if needed.
// Returns false when audio is disabled or muted.
func (am *AudioManager) PlayExplosion() bool {
	if am.context == nil || am.muted {
		return false
	}

	player := am.players[am.next]
	am.next = (am.next + 1) % len(am.players)

	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Failed to rewind explosion sound: %v", err)
		return false
	}
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// SynthesizePop renders a firework pop as 16-bit little-endian stereo PCM.
//
// The sound is white noise plus a low thump under an exponential decay.
// The same seed always yields the same bytes.
func SynthesizePop(sampleRate, millis int, seed int64) []byte {
	if sampleRate <= 0 || millis <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	samples := sampleRate * millis / 1000
	out := make([]byte, samples*4)

	decay := 6.0 / float64(samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-float64(i) * decay)
		noise := rng.Float64()*2 - 1
		thump := math.Sin(2 * math.Pi * 70 * t)
		v := (0.7*noise + 0.3*thump) * env

		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
