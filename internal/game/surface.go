package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neuron-network/internal/network"
)

const glowRings = 4

// screenSurface draws the network onto an ebiten image. Glow is faked with
// a few translucent rings since vector has no blur.
type screenSurface struct {
	dst *ebiten.Image

	// glowScale stretches every halo, driven by the audio level.
	glowScale float64
}

func (s *screenSurface) FillCircle(x, y, r float64, p network.Paint) {
	if glow := p.Glow * s.glowScale; glow > 0 {
		for i := glowRings; i >= 1; i-- {
			rr := r + glow*float64(i)/glowRings*0.6
			vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(rr), haloColor(p.Color, i), true)
		}
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), p.Color, true)
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1 float64, p network.Paint) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, p.Color, true)
}

// haloColor fades c for ring i, outer rings being fainter.
func haloColor(c color.NRGBA, ring int) color.NRGBA {
	fade := 0.18 * (1 - float64(ring-1)/glowRings)
	c.A = uint8(float64(c.A) * fade)
	return c
}
