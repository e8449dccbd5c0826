package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/utils"
)

// 按钮布局（像素）
const (
	buttonWidth   = 96
	buttonHeight  = 32
	buttonMargin  = 16
	buttonSpacing = 12
)

var (
	buttonFill   = color.RGBA{R: 40, G: 44, B: 72, A: 220}
	buttonHover  = color.RGBA{R: 70, G: 78, B: 128, A: 235}
	buttonBorder = color.RGBA{R: 150, G: 160, B: 220, A: 255}
	overlayFill  = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// button 屏幕按钮，点击发射一枚烟花
type button struct {
	label string
	smile bool
	rect  utils.Rect
}

// layoutButtons anchors the launch buttons to the bottom-left corner,
// sized by scale (utils.UIScale on touch devices).
func layoutButtons(width, height int, scale float64) []button {
	w, h := buttonWidth*scale, buttonHeight*scale
	x := float64(buttonMargin)
	y := float64(height) - buttonMargin - h
	return []button{
		{label: "Launch", smile: false, rect: utils.Rect{X: x, Y: y, W: w, H: h}},
		{label: "Smile", smile: true, rect: utils.Rect{X: x + w + buttonSpacing, Y: y, W: w, H: h}},
	}
}

// buttonIndexAt returns the index of the button under (x, y), or -1.
func buttonIndexAt(buttons []button, x, y float64) int {
	for i, b := range buttons {
		if b.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// buttonAt returns the button under (x, y), if any.
func buttonAt(buttons []button, x, y float64) (button, bool) {
	if i := buttonIndexAt(buttons, x, y); i >= 0 {
		return buttons[i], true
	}
	return button{}, false
}

// hudText 左上角状态行
func hudText(fleet *systems.FleetManager, launched, explosions int) string {
	hud := fmt.Sprintf("fireworks: %d  particles: %d  launched: %d  exploded: %d",
		fleet.Len(), fleet.ParticleCount(), launched, explosions)
	if newest := fleet.Newest(); newest != nil {
		hud += "  latest: " + newest.ShortID()
	}
	return hud
}

func (s *FireworkScene) drawUI(screen *ebiten.Image) {
	for i, b := range s.buttons {
		r := b.rect
		fill := buttonFill
		if i == s.hover {
			fill = buttonHover
		}
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, buttonBorder, false)
		// DebugPrint 字符约 6x16 像素
		tx := int(r.X + (r.W-float64(len(b.label)*6))/2)
		ty := int(r.Y + (r.H-16)/2)
		ebitenutil.DebugPrintAt(screen, b.label, tx, ty)
	}

	ebitenutil.DebugPrintAt(screen, hudText(s.fleet, s.launched, s.explosions), buttonMargin, buttonMargin)

	help := "[1] launch  [2] smile  [R] rotate  [C] clear  [M] mute  [Q] quit"
	if s.audio.Muted() {
		help += "  (muted)"
	}
	ebitenutil.DebugPrintAt(screen, help, buttonMargin, buttonMargin+16)

	s.drawLoadOverlay(screen)
}

// drawLoadOverlay shows texture loading progress or the load error.
func (s *FireworkScene) drawLoadOverlay(screen *ebiten.Image) {
	msg := loadMessage(s.resources)
	if msg == "" {
		return
	}

	w := float32(len(msg)*6 + 24)
	x := (float32(s.camera.Width) - w) / 2
	y := float32(s.camera.Height)/2 - 20
	vector.DrawFilledRect(screen, x, y, w, 40, overlayFill, false)
	ebitenutil.DebugPrintAt(screen, msg, int(x)+12, int(y)+12)
}

// loadMessage returns the overlay text for the texture state, or "" once ready.
func loadMessage(rm *game.ResourceManager) string {
	switch rm.State() {
	case game.LoadReady:
		return ""
	case game.LoadFailed:
		return fmt.Sprintf("texture load failed: %v", rm.LoadError())
	default:
		return "loading textures..."
	}
}
