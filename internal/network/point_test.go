package network

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// recorder captures every line drawn so tests can inspect geometry.
type recorder struct {
	circles int
	lines   [][2]orb.Point
}

func (r *recorder) FillCircle(x, y, rad float64, p Paint) { r.circles++ }

func (r *recorder) StrokeLine(x0, y0, x1, y1 float64, p Paint) {
	r.lines = append(r.lines, [2]orb.Point{{x0, y0}, {x1, y1}})
}

func TestNewPoint_TruncatesPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPoint(7, 12.9, 3.2, 2.7, rng)

	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
	if p.X() != 12 || p.Y() != 3 {
		t.Errorf("position = (%v, %v), want (12, 3)", p.X(), p.Y())
	}
	if p.Origin != p.Pos {
		t.Errorf("origin = %v, want %v", p.Origin, p.Pos)
	}
	if p.Radius != 2 {
		t.Errorf("radius = %v, want 2", p.Radius)
	}
	if p.VX < -2 || p.VX > 2 || p.VY < -2 || p.VY > 2 {
		t.Errorf("velocity (%v, %v) outside [-2, 2]", p.VX, p.VY)
	}
}

func TestPointUpdate(t *testing.T) {
	b := bounds(100, 50)

	tests := []struct {
		name    string
		pos     orb.Point
		vx, vy  float64
		wantPos orb.Point
		wantVX  float64
		wantVY  float64
	}{
		{"interior", orb.Point{10, 10}, 1, -1, orb.Point{11, 9}, 1, -1},
		{"crosses left", orb.Point{0.5, 10}, -1, 0.5, orb.Point{0, 10.5}, 1, 0.5},
		{"lands on left edge", orb.Point{1, 10}, -1, 0.5, orb.Point{0, 10.5}, 1, 0.5},
		{"crosses right", orb.Point{99.5, 10}, 2, 0, orb.Point{100, 10}, -2, 0},
		{"crosses top", orb.Point{10, 0.5}, 0.5, -1, orb.Point{10.5, 0}, 0.5, 1},
		{"crosses bottom", orb.Point{10, 49}, 0, 1.5, orb.Point{10, 50}, 0, -1.5},
		{"corner", orb.Point{0, 0}, -1, -1, orb.Point{0, 0}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Point{Pos: tt.pos, VX: tt.vx, VY: tt.vy}
			p.Update(b)
			if p.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", p.Pos, tt.wantPos)
			}
			if p.VX != tt.wantVX || p.VY != tt.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", p.VX, p.VY, tt.wantVX, tt.wantVY)
			}
		})
	}
}

func TestPointUpdate_StaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := bounds(320, 240)

	points := make([]*Point, 200)
	for i := range points {
		points[i] = NewPoint(i, rng.Float64()*320, rng.Float64()*240, 2, rng)
	}

	for step := 0; step < 2000; step++ {
		for _, p := range points {
			p.Update(b)
			if !b.Contains(p.Pos) {
				t.Fatalf("step %d: point %d at %v escaped %v", step, p.ID, p.Pos, b)
			}
		}
	}
}

func TestPointUpdate_FlipsAtEdge(t *testing.T) {
	b := bounds(100, 100)
	// Landing exactly on the edge counts as a crossing.
	p := &Point{Pos: orb.Point{-1, 50}, VX: 1, VY: 0}
	p.Update(b)
	if p.VX != -1 {
		t.Errorf("VX = %v, want -1", p.VX)
	}
	if p.Pos[0] != 0 {
		t.Errorf("x = %v, want 0", p.Pos[0])
	}
}

func TestPointDraw_Budget(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := make([]*Point, 40)
	for i := range points {
		points[i] = NewPoint(i, 50+rng.Float64()*10, 50+rng.Float64()*10, 2, rng)
	}

	for _, limit := range []int{0, 1, 3, 5, 100} {
		f := &Frame{
			Bounds:         bounds(200, 200),
			MaxDistance:    100,
			MaxConnections: limit,
			Points:         points,
			Links:          NewAdjacency(),
		}
		var rec recorder
		total := 0
		for _, p := range points {
			n := p.Draw(&rec, f)
			if n > limit {
				t.Errorf("max=%d: point %d drew %d links", limit, p.ID, n)
			}
			total += n
		}
		if total != f.Links.Len() {
			t.Errorf("max=%d: drew %d lines, adjacency has %d links", limit, total, f.Links.Len())
		}
		if len(rec.lines) != total {
			t.Errorf("max=%d: recorded %d lines, want %d", limit, len(rec.lines), total)
		}
		if rec.circles != len(points) {
			t.Errorf("max=%d: drew %d circles, want %d", limit, rec.circles, len(points))
		}
	}
}

func TestPointDraw_NoLinksBeyondReach(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := make([]*Point, 150)
	for i := range points {
		points[i] = NewPoint(i, rng.Float64()*800, rng.Float64()*600, 2, rng)
	}
	byID := make(map[int]*Point, len(points))
	for _, p := range points {
		byID[p.ID] = p
	}

	f := &Frame{
		Bounds:         bounds(800, 600),
		MaxDistance:    90,
		MaxConnections: 5,
		Points:         points,
		Links:          NewAdjacency(),
	}
	for _, p := range points {
		p.Draw(&Tally{}, f)
	}
	if f.Links.Len() == 0 {
		t.Fatal("expected some links")
	}

	for _, p := range points {
		for _, id := range f.Links.Neighbors(p.ID) {
			d := planar.DistanceSquared(p.Pos, byID[id].Pos)
			if d > 90*90 {
				t.Errorf("points %d and %d linked at squared distance %v", p.ID, id, d)
			}
		}
	}
}

func TestPointDraw_NegativeDistanceActsLikeAbsolute(t *testing.T) {
	a := &Point{ID: 0, Pos: orb.Point{0, 0}}
	b := &Point{ID: 1, Pos: orb.Point{30, 40}}
	f := &Frame{
		Bounds:         bounds(100, 100),
		MaxDistance:    -50,
		MaxConnections: 5,
		Points:         []*Point{a, b},
		Links:          NewAdjacency(),
	}
	if n := a.Draw(&Tally{}, f); n != 1 {
		t.Errorf("drew %d links, want 1", n)
	}
}
