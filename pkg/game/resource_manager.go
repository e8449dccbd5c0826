package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// ReadFileFunc reads a resource by path. embedded.ReadFile and os.ReadFile both fit.
type ReadFileFunc func(path string) ([]byte, error)

// LoadState 贴图加载状态
type LoadState int

const (
	// LoadIdle 尚未开始加载
	LoadIdle LoadState = iota
	// LoadPending 后台解码中
	LoadPending
	// LoadReady 全部贴图可用
	LoadReady
	// LoadFailed 至少一张贴图加载失败
	LoadFailed
)

// String implements fmt.Stringer.
func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadPending:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type decodeResult struct {
	images []image.Image
	err    error
}

// ResourceManager loads the firework textures.
//
// Decoding happens on background goroutines; the decoded images are handed
// back over a channel and turned into *ebiten.Image by PollTextures on the
// game goroutine. Until every texture has arrived the set reports not ready
// and the renderer skips particle drawing. A failed load stays failed and
// keeps its error for the overlay; it never stops the simulation.
//
// Apart from the background decode, the manager is used from the game
// goroutine only and needs no locking.
//
// Usage:
//
//	rm := NewResourceManager(embedded.ReadFile, cfg.Textures.Paths)
//	rm.LoadTexturesAsync(ctx)
//	// every Update:
//	rm.PollTextures()
//	if rm.TexturesReady() { ... }
type ResourceManager struct {
	readFile ReadFileFunc
	paths    []string

	state    LoadState
	loadErr  error
	results  chan decodeResult
	textures []*ebiten.Image
}

// NewResourceManager creates a manager for the textures at paths.
// Index i of paths becomes texture ID i.
func NewResourceManager(readFile ReadFileFunc, paths []string) *ResourceManager {
	return &ResourceManager{
		readFile: readFile,
		paths:    append([]string(nil), paths...),
		results:  make(chan decodeResult, 1),
	}
}

// LoadTexturesAsync starts decoding every texture in the background.
// Calling it again while a load is pending or finished does nothing.
func (rm *ResourceManager) LoadTexturesAsync(ctx context.Context) {
	if rm.state != LoadIdle {
		return
	}
	rm.state = LoadPending
	log.Printf("[ResourceManager] Loading %d textures", len(rm.paths))

	go func() {
		images, err := DecodeTextures(ctx, rm.readFile, rm.paths)
		rm.results <- decodeResult{images: images, err: err}
	}()
}

// PollTextures picks up a finished background decode, if any, and returns
// the current state. Must be called from the game goroutine.
func (rm *ResourceManager) PollTextures() LoadState {
	if rm.state != LoadPending {
		return rm.state
	}

	select {
	case res := <-rm.results:
		if res.err != nil {
			rm.state = LoadFailed
			rm.loadErr = res.err
			log.Printf("[ResourceManager] Texture load failed: %v", res.err)
			return rm.state
		}
		rm.textures = make([]*ebiten.Image, len(res.images))
		for i, img := range res.images {
			rm.textures[i] = ebiten.NewImageFromImage(img)
		}
		rm.state = LoadReady
		log.Printf("[ResourceManager] %d textures ready", len(rm.textures))
	default:
	}

	return rm.state
}

// State returns the current load state without polling.
func (rm *ResourceManager) State() LoadState {
	return rm.state
}

// TexturesReady reports whether every texture is available for drawing.
func (rm *ResourceManager) TexturesReady() bool {
	return rm.state == LoadReady
}

// LoadError returns the error of a failed load, or nil.
func (rm *ResourceManager) LoadError() error {
	return rm.loadErr
}

// TextureCount returns the number of configured texture slots.
func (rm *ResourceManager) TextureCount() int {
	return len(rm.paths)
}

// Texture returns texture id, falling back to texture 0 for out-of-range
// ids. Returns nil while textures are not ready.
func (rm *ResourceManager) Texture(id int) *ebiten.Image {
	if rm.state != LoadReady || len(rm.textures) == 0 {
		return nil
	}
	if id < 0 || id >= len(rm.textures) {
		id = 0
	}
	return rm.textures[id]
}

// DecodeTextures reads and decodes every path concurrently.
//
// The result keeps the order of paths. The first failure cancels the
// remaining reads and is returned wrapped with the offending path.
func DecodeTextures(ctx context.Context, readFile ReadFileFunc, paths []string) ([]image.Image, error) {
	images := make([]image.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readFile(path)
			if err != nil {
				return fmt.Errorf("failed to read texture %s: %w", path, err)
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("failed to decode texture %s: %w", path, err)
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
