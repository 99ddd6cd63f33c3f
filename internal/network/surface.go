package network

import "image/color"

// Paint describes how a shape is filled or stroked. Glow is the blur radius
// of the halo drawn around the shape, zero for none.
type Paint struct {
	Color color.NRGBA
	Glow  float64
}

// Surface is the 2D drawing target the network renders onto.
type Surface interface {
	FillCircle(x, y, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1 float64, p Paint)
}

var (
	accent = color.NRGBA{R: 0x4e, G: 0xcb, B: 0xd4, A: 0xff}

	pointPaint   = Paint{Color: accent, Glow: 15}
	linkPaint    = Paint{Color: color.NRGBA{R: 78, G: 203, B: 212, A: 26}}
	pointerPaint = Paint{Color: accent, Glow: 50}
	reachPaint   = Paint{Color: color.NRGBA{R: 78, G: 203, B: 212, A: 77}}
)

const pointerRadius = 10

// Tally is a Surface that only counts what would have been drawn.
type Tally struct {
	Circles int
	Lines   int
}

func (t *Tally) FillCircle(x, y, r float64, p Paint) { t.Circles++ }

func (t *Tally) StrokeLine(x0, y0, x1, y1 float64, p Paint) { t.Lines++ }

// Reset zeroes both counters.
func (t *Tally) Reset() {
	t.Circles = 0
	t.Lines = 0
}
