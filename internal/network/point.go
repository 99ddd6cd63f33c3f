package network

import (
	"math"
	"math/rand"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a single moving neuron.
type Point struct {
	ID     int
	Pos    orb.Point
	Origin orb.Point
	Radius float64
	VX, VY float64
}

// NewPoint creates a point at (x, y) with a random velocity. Position and
// radius are truncated to whole pixels.
func NewPoint(id int, x, y, r float64, rng *rand.Rand) *Point {
	pos := orb.Point{math.Floor(x), math.Floor(y)}
	return &Point{
		ID:     id,
		Pos:    pos,
		Origin: pos,
		Radius: math.Floor(r),
		VX:     (rng.Float64()*2 - 1) * rng.Float64() * 2,
		VY:     (rng.Float64()*2 - 1) * rng.Float64() * 2,
	}
}

func (p *Point) X() float64 { return p.Pos[0] }
func (p *Point) Y() float64 { return p.Pos[1] }

// Bounds implements rtreego.Spatial.
func (p *Point) Bounds() rtreego.Rect {
	return rtreego.Point{p.Pos[0], p.Pos[1]}.ToRect(0.5)
}

// Draw paints the point and links it to neighbors within reach, recording
// every new link in f.Links. The connection budget is local to this call.
// It returns the number of links drawn.
func (p *Point) Draw(dst Surface, f *Frame) int {
	dst.FillCircle(p.Pos[0], p.Pos[1], p.Radius, f.pointPaint(p.ID))

	reach := f.MaxDistance * f.MaxDistance
	connections := 0
	for _, other := range f.Points {
		if connections >= f.MaxConnections {
			break
		}
		if other == p || f.Links.Linked(p.ID, other.ID) {
			continue
		}
		if planar.DistanceSquared(p.Pos, other.Pos) > reach {
			continue
		}
		connections++
		dst.StrokeLine(p.Pos[0], p.Pos[1], other.Pos[0], other.Pos[1], linkPaint)
		f.Links.Link(p.ID, other.ID)
	}
	return connections
}

// Update advances the point by its velocity, bouncing off the bounds.
// A point that crosses an edge has its velocity component flipped and is
// then clamped back onto the edge.
func (p *Point) Update(bounds orb.Bound) {
	x := p.Pos[0] + p.VX
	y := p.Pos[1] + p.VY

	if x <= bounds.Min[0] || x >= bounds.Max[0] {
		p.VX = -p.VX
	}
	if y <= bounds.Min[1] || y >= bounds.Max[1] {
		p.VY = -p.VY
	}

	p.Pos = orb.Point{
		math.Min(math.Max(x, bounds.Min[0]), bounds.Max[0]),
		math.Min(math.Max(y, bounds.Min[1]), bounds.Max[1]),
	}
}
