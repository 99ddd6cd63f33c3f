package network

import "github.com/paulmach/orb"

// PointerTracker follows the latest mouse or touch position and draws a
// highlight with lines to every point in reach.
type PointerTracker struct {
	pos    orb.Point
	active bool
}

// Move records a pointer or touch move.
func (m *PointerTracker) Move(x, y float64) {
	m.pos = orb.Point{x, y}
	m.active = true
}

// Leave marks the pointer as gone (left the window, touch ended).
func (m *PointerTracker) Leave() {
	m.active = false
}

// Position returns the last recorded position and whether it is active.
func (m *PointerTracker) Position() (orb.Point, bool) {
	return m.pos, m.active
}

// Draw paints the highlight and its reach lines. It never touches
// f.Links. It returns the number of lines drawn.
func (m *PointerTracker) Draw(dst Surface, f *Frame) int {
	if !m.active {
		return 0
	}
	dst.FillCircle(m.pos[0], m.pos[1], pointerRadius, pointerPaint)

	var near []*Point
	if f.Index != nil {
		near = f.Index.Within(m.pos, f.MaxDistance)
	} else {
		near = NewIndex(f.Points).Within(m.pos, f.MaxDistance)
	}
	for _, p := range near {
		dst.StrokeLine(m.pos[0], m.pos[1], p.Pos[0], p.Pos[1], reachPaint)
	}
	return len(near)
}
