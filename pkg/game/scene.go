package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the application.
//
// Scenes are tick driven: Update is called once per Ebitengine tick and the
// simulation advances a fixed step per call, independent of frame time.
type Scene interface {
	// Update advances the scene by one tick.
	// Returning ebiten.Termination ends the program.
	Update() error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizer 是一个可选接口，用于接收逻辑屏幕尺寸变化
//
// 实现此接口的场景会在 Layout 报告新尺寸时被调用，
// 用于重新计算投影（宽高比）。
type Resizer interface {
	Resize(width, height int)
}
