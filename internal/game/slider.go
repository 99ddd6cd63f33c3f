package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neuron-network/internal/config"
)

// slider is a horizontal integer range control with a label showing its
// current value.
type slider struct {
	label    string
	min, max int
	value    int

	x, y, width, height int

	hovered  bool
	dragging bool
}

func newSlider(label string, index, min, max, value int) *slider {
	return &slider{
		label:  label,
		min:    min,
		max:    max,
		value:  value,
		x:      config.SliderX,
		y:      config.SliderY + index*config.SliderSpacing + 14,
		width:  config.SliderWidth,
		height: config.SliderHeight,
	}
}

// Text returns the label with the current value, e.g. "Points (100)".
func (s *slider) Text() string {
	return fmt.Sprintf("%s (%d)", s.label, s.value)
}

// contains reports whether (mx, my) is over the track, with some slack
// around it for the knob.
func (s *slider) contains(mx, my int) bool {
	pad := config.KnobRadius
	return mx >= s.x-pad && mx <= s.x+s.width+pad &&
		my >= s.y-pad && my <= s.y+s.height+pad
}

// valueAt maps a cursor x coordinate to a value on the track.
func (s *slider) valueAt(mx int) int {
	progress := clamp01(float64(mx-s.x) / float64(s.width))
	return s.min + int(math.Round(progress*float64(s.max-s.min)))
}

// set moves the knob without notifying anyone. Values past the ends are
// kept for the label; the knob stops at the end of the track.
func (s *slider) set(v int) {
	s.value = v
}

// update handles a mouse tick. It reports the new value and whether it
// changed.
func (s *slider) update(mx, my int, justPressed, justReleased bool) (int, bool) {
	s.hovered = s.contains(mx, my)

	if s.hovered && justPressed {
		s.dragging = true
	}
	if justReleased {
		defer func() { s.dragging = false }()
	}
	if !s.dragging {
		return s.value, false
	}

	v := s.valueAt(mx)
	if v == s.value {
		return v, false
	}
	s.value = v
	return v, true
}

func (s *slider) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.Text(), s.x, s.y-16)

	// Track
	vector.DrawFilledRect(screen, float32(s.x), float32(s.y), float32(s.width), float32(s.height), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(s.x), float32(s.y), float32(s.width), float32(s.height), 1, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	// Fill up to the knob
	progress := 0.0
	if s.max > s.min {
		progress = clamp01(float64(s.value-s.min) / float64(s.max-s.min))
	}
	fill := progress * float64(s.width)
	if fill > 0 {
		vector.DrawFilledRect(screen, float32(s.x), float32(s.y), float32(fill), float32(s.height), color.RGBA{R: 78, G: 203, B: 212, A: 160}, false)
	}

	// Knob
	knob := color.RGBA{R: 220, G: 230, B: 240, A: 255}
	if s.hovered || s.dragging {
		knob = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	cx := float32(float64(s.x) + fill)
	cy := float32(s.y + s.height/2)
	vector.DrawFilledCircle(screen, cx, cy, config.KnobRadius, knob, true)
	vector.StrokeCircle(screen, cx, cy, config.KnobRadius, 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, true)
}
