package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Load the firework config from this file instead of the embedded one")
	mute := flag.Bool("mute", false, "Start with audio muted")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(assetsFS, dataFS)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Mute:       *mute,
		Seed:       *seed,
	})
	if err != nil {
		// NewApp 在非 verbose 模式下会关闭日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize: %v", err)
	}

	window := a.FireworkConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
