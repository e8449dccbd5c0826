package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/components"
)

var skyColor = color.RGBA{R: 6, G: 8, B: 20, A: 255}

// Draw renders the sky, the particles and the UI.
func (s *FireworkScene) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	s.starfield.Draw(screen, s.camera)

	if s.resources.TexturesReady() {
		s.drawParticles(screen)
	}

	s.drawUI(screen)
}

// drawParticles 每个粒子一次 DrawImage，加色混合，不需要按深度排序
func (s *FireworkScene) drawParticles(screen *ebiten.Image) {
	s.particles = s.fleet.AppendParticles(s.particles[:0])

	op := &ebiten.DrawImageOptions{}
	for i := range s.particles {
		p := &s.particles[i]
		if p.Color.A <= 0 {
			continue
		}

		sx, sy, depth, ok := s.camera.Project(p.Position.X, p.Position.Y, p.Position.Z)
		if !ok {
			continue
		}

		img := s.resources.Texture(p.Texture.IndexOr(0))
		if img == nil {
			continue
		}
		bounds := img.Bounds()
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		size := spriteSize(s.cfg.Camera.SpriteSize, p.Scale, s.cfg.Camera.Distance, depth)

		op.GeoM.Reset()
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(size/w, size/h)
		op.GeoM.Translate(sx, sy)

		op.ColorScale.Reset()
		r, g, b, a := colorScale(p.Color)
		op.ColorScale.Scale(r, g, b, a)
		op.Blend = ebiten.BlendLighter
		op.Filter = ebiten.FilterLinear

		screen.DrawImage(img, op)
	}
}

// spriteSize returns the on-screen sprite edge in pixels.
// A particle of scale 1 at the target distance is base pixels wide.
func spriteSize(base, scale, targetDistance, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return base * scale * targetDistance / depth
}

// colorScale converts a particle color to premultiplied ColorScale factors.
// Alpha is clamped to [0, 1] for drawing only; the particle keeps its value.
func colorScale(c components.Color) (r, g, b, a float32) {
	alpha := c.A
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return float32(c.R * alpha), float32(c.G * alpha), float32(c.B * alpha), float32(alpha)
}
