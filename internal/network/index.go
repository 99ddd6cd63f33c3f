package network

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Index is an R-tree over a frame's points for proximity queries.
type Index struct {
	tree   *rtreego.Rtree
	points []*Point
}

// NewIndex bulk-loads the given points.
func NewIndex(points []*Point) *Index {
	objs := make([]rtreego.Spatial, len(points))
	for i, p := range points {
		objs[i] = p
	}
	return &Index{
		tree:   rtreego.NewTree(2, 25, 50, objs...),
		points: points,
	}
}

// Within returns every point whose squared distance from center is at most
// radius². A negative radius behaves like its absolute value.
func (ix *Index) Within(center orb.Point, radius float64) []*Point {
	reach := radius * radius
	radius = math.Abs(radius)

	var candidates []*Point
	box, err := rtreego.NewRect(
		rtreego.Point{center[0] - radius, center[1] - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		// Degenerate query box, scan everything
		candidates = ix.points
	} else {
		for _, item := range ix.tree.SearchIntersect(box) {
			candidates = append(candidates, item.(*Point))
		}
	}

	out := make([]*Point, 0, len(candidates))
	for _, p := range candidates {
		if planar.DistanceSquared(center, p.Pos) <= reach {
			out = append(out, p)
		}
	}
	return out
}
