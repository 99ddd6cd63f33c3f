package network

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/paulmach/orb"
)

// Frame is the per-frame context handed to points and the pointer tracker.
// Links is the only field draw calls may mutate.
type Frame struct {
	Bounds         orb.Bound
	MaxDistance    float64
	MaxConnections int
	Points         []*Point
	Links          *Adjacency
	Index          *Index

	// Optional shimmer; nil noise disables it.
	noise opensimplex.Noise
	tick  float64
}

// Width and Height of the canvas.
func (f *Frame) Width() float64  { return f.Bounds.Max[0] - f.Bounds.Min[0] }
func (f *Frame) Height() float64 { return f.Bounds.Max[1] - f.Bounds.Min[1] }

func (f *Frame) pointPaint(id int) Paint {
	if f.noise == nil {
		return pointPaint
	}
	p := pointPaint
	n := f.noise.Eval2(float64(id)*0.37, f.tick*0.02)
	p.Color.A = uint8(math.Round(255 * (0.65 + 0.35*n)))
	return p
}
