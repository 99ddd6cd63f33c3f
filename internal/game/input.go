package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/neuron-network/internal/network"
)

// pointerSample is one tick's worth of raw pointer state.
type pointerSample struct {
	touching       bool
	touchX, touchY int
	touchEnded     bool

	cursorX, cursorY int
	focused          bool
	width, height    int
}

// pointerInput turns polled ebiten state into move/leave events for the
// tracker. Ebiten has no enter/leave events, so leaving is inferred from
// the cursor being outside the window or the window losing focus.
type pointerInput struct {
	lastX, lastY int
	seen         bool

	touchIDs    []ebiten.TouchID
	releasedIDs []ebiten.TouchID
}

func (in *pointerInput) sample(width, height int) pointerSample {
	s := pointerSample{width: width, height: height, focused: ebiten.IsFocused()}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		s.touching = true
		s.touchX, s.touchY = ebiten.TouchPosition(in.touchIDs[0])
	}
	in.releasedIDs = inpututil.AppendJustReleasedTouchIDs(in.releasedIDs[:0])
	s.touchEnded = len(in.releasedIDs) > 0

	s.cursorX, s.cursorY = ebiten.CursorPosition()
	return s
}

// apply routes one sample to the tracker.
func (in *pointerInput) apply(s pointerSample, t *network.PointerTracker) {
	switch {
	case s.touching:
		t.Move(float64(s.touchX), float64(s.touchY))
		return
	case s.touchEnded:
		t.Leave()
		return
	}

	inside := s.focused &&
		s.cursorX >= 0 && s.cursorY >= 0 &&
		s.cursorX < s.width && s.cursorY < s.height
	if !inside {
		t.Leave()
		return
	}

	// The first sample is only a baseline; the pointer shows up once it moves.
	if !in.seen {
		in.lastX, in.lastY = s.cursorX, s.cursorY
		in.seen = true
		return
	}
	if s.cursorX != in.lastX || s.cursorY != in.lastY {
		t.Move(float64(s.cursorX), float64(s.cursorY))
		in.lastX, in.lastY = s.cursorX, s.cursorY
	}
}
