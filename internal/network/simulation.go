// Package network simulates a field of drifting points that link to their
// neighbors when close enough, plus a pointer that reaches out to every
// point nearby. It draws through the Surface interface and knows nothing
// about windows or input devices.
package network

import (
	"math/rand"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/paulmach/orb"
)

// Settings are the live-tunable parameters of a Simulation. None of them
// are validated: a non-positive Count yields an empty network, a
// non-positive MaxConnections yields no links.
type Settings struct {
	Count          int
	MaxDistance    float64
	MaxConnections int
	Radius         float64
	Seed           int64
	Shimmer        bool
}

// DefaultSettings mirrors the initial slider positions.
func DefaultSettings() Settings {
	return Settings{
		Count:          100,
		MaxDistance:    150,
		MaxConnections: 5,
		Radius:         2,
	}
}

// FrameStats summarizes what a Step drew.
type FrameStats struct {
	Frame        uint64 `json:"frame"`
	Points       int    `json:"points"`
	Links        int    `json:"links"`
	MaxDrawn     int    `json:"max_drawn"`
	MaxDegree    int    `json:"max_degree"`
	PointerLines int    `json:"pointer_lines"`
}

// Simulation owns the points, their per-frame links and the pointer.
type Simulation struct {
	settings Settings
	bounds   orb.Bound
	points   []*Point
	links    *Adjacency
	pointer  *PointerTracker
	ids      IDSource
	rng      *rand.Rand
	noise    opensimplex.Noise
	frame    uint64
}

// New creates a simulation sized width×height and spawns s.Count points.
// A zero Seed picks one from the clock.
func New(s Settings, width, height float64) *Simulation {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := &Simulation{
		settings: s,
		links:    NewAdjacency(),
		pointer:  &PointerTracker{},
		rng:      rand.New(rand.NewSource(seed)),
	}
	if s.Shimmer {
		sim.noise = opensimplex.New(seed)
	}
	sim.Resize(width, height)
	sim.spawn()
	return sim
}

func (s *Simulation) Settings() Settings { return s.settings }
func (s *Simulation) Points() []*Point { return s.points }
func (s *Simulation) Links() *Adjacency { return s.links }
func (s *Simulation) Pointer() *PointerTracker { return s.pointer }
func (s *Simulation) Bounds() orb.Bound { return s.bounds }
func (s *Simulation) Frames() uint64 { return s.frame }
func (s *Simulation) NextID() int { return s.ids.Peek() }
func (s *Simulation) SetMaxDistance(d float64) { s.settings.MaxDistance = d }
func (s *Simulation) SetMaxConnections(n int) { s.settings.MaxConnections = n }
func (s *Simulation) Resize(width, height float64) { s.bounds = bounds(width, height) }

// SetCount discards every point and spawns n new ones over the canvas.
// Ids keep counting from where the previous batch stopped.
func (s *Simulation) SetCount(n int) {
	s.settings.Count = n
	s.spawn()
}

// SetShimmer toggles the noise-driven alpha flicker of points.
func (s *Simulation) SetShimmer(on bool) {
	s.settings.Shimmer = on
	if on && s.noise == nil {
		s.noise = opensimplex.New(s.rng.Int63())
	}
}

// Apply replaces all settings. Points are regenerated only when the count
// changes.
func (s *Simulation) Apply(next Settings) {
	prev := s.settings
	s.settings.MaxDistance = next.MaxDistance
	s.settings.MaxConnections = next.MaxConnections
	s.settings.Radius = next.Radius
	s.SetShimmer(next.Shimmer)
	if next.Count != prev.Count || next.Radius != prev.Radius {
		s.SetCount(next.Count)
	}
}

// Add places a single point at (x, y) and returns it.
func (s *Simulation) Add(x, y float64) *Point {
	p := NewPoint(s.ids.Next(), x, y, s.settings.Radius, s.rng)
	s.points = append(s.points, p)
	s.settings.Count = len(s.points)
	return p
}

func (s *Simulation) spawn() {
	n := max(s.settings.Count, 0)
	w, h := s.bounds.Max[0], s.bounds.Max[1]
	s.points = make([]*Point, 0, n)
	for i := 0; i < n; i++ {
		x := s.rng.Float64() * w
		y := s.rng.Float64() * h
		s.points = append(s.points, NewPoint(s.ids.Next(), x, y, s.settings.Radius, s.rng))
	}
}

// Frame builds the context for the current frame.
func (s *Simulation) Frame() *Frame {
	f := &Frame{
		Bounds:         s.bounds,
		MaxDistance:    s.settings.MaxDistance,
		MaxConnections: s.settings.MaxConnections,
		Points:         s.points,
		Links:          s.links,
		tick:           float64(s.frame),
	}
	if s.settings.Shimmer {
		f.noise = s.noise
	}
	return f
}

// Draw paints every point with its links, then the pointer. Links
// accumulate in the adjacency until Reset.
func (s *Simulation) Draw(dst Surface) FrameStats {
	f := s.Frame()
	stats := FrameStats{Frame: s.frame, Points: len(s.points)}
	for _, p := range s.points {
		stats.MaxDrawn = max(stats.MaxDrawn, p.Draw(dst, f))
	}
	if _, active := s.pointer.Position(); active {
		f.Index = NewIndex(s.points)
	}
	stats.PointerLines = s.pointer.Draw(dst, f)
	stats.Links = s.links.Len()
	stats.MaxDegree = s.links.MaxDegree()
	return stats
}

// Update moves every point one step.
func (s *Simulation) Update() {
	for _, p := range s.points {
		p.Update(s.bounds)
	}
}

// Step runs one full frame: draw, clear links, move.
func (s *Simulation) Step(dst Surface) FrameStats {
	stats := s.Draw(dst)
	s.links.Reset()
	s.Update()
	s.frame++
	return stats
}

func bounds(width, height float64) orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{width, height}}
}
