package scenes

import (
	"github.com/decker502/fireworks/pkg/game"
)

// Scene is a type alias for game.Scene so callers can stay within this package.
type Scene = game.Scene

var (
	_ Scene        = (*FireworkScene)(nil)
	_ game.Resizer = (*FireworkScene)(nil)
)
