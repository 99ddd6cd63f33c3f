package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and keeps the most recent mono samples in a
// ring so the renderer can read how loud the audio is right now.
type levelTap struct {
	Source beep.Streamer

	mu   sync.RWMutex
	ring []float64
	next int
	full bool
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		ring:   make([]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n == 0 {
		return n, ok
	}

	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.next] = (s[0] + s[1]) * 0.5
		t.next++
		if t.next == len(t.ring) {
			t.next = 0
			t.full = true
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// recent copies up to the last n mono samples, oldest first.
func (t *levelTap) recent(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	have := t.next
	if t.full {
		have = len(t.ring)
	}
	n = min(n, have)

	out := make([]float64, n)
	start := t.next - n
	if start < 0 {
		start += len(t.ring)
		copied := copy(out, t.ring[start:])
		copy(out[copied:], t.ring[:t.next])
	} else {
		copy(out, t.ring[start:t.next])
	}
	return out
}

// level returns the loudness of the last n samples, compressed into
// [0, 1] so quiet passages still register.
func (t *levelTap) level(n int) float64 {
	return clamp01(math.Pow(rms(t.recent(n)), 0.3))
}
