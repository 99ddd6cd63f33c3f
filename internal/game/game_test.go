package game

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/neuron-network/internal/config"
	"github.com/iburimskiy/neuron-network/internal/logging"
	"github.com/iburimskiy/neuron-network/internal/network"
)

func TestSlider_ValueAt(t *testing.T) {
	s := newSlider("Points", 0, 0, 500, 100)

	tests := []struct {
		mx   int
		want int
	}{
		{s.x - 50, 0},
		{s.x, 0},
		{s.x + s.width/4, 125},
		{s.x + s.width/2, 250},
		{s.x + s.width, 500},
		{s.x + s.width + 80, 500},
	}
	for _, tt := range tests {
		if got := s.valueAt(tt.mx); got != tt.want {
			t.Errorf("valueAt(%d) = %d, want %d", tt.mx, got, tt.want)
		}
	}
}

func TestSlider_Drag(t *testing.T) {
	s := newSlider("Distance", 1, 0, 500, 150)
	my := s.y + s.height/2

	// Hovering without a press does nothing
	if _, changed := s.update(s.x+s.width/4, my, false, false); changed {
		t.Fatal("hover changed the value")
	}

	v, changed := s.update(s.x+s.width/4, my, true, false)
	if !changed || v != 125 {
		t.Fatalf("press = (%d, %v), want (125, true)", v, changed)
	}

	// Dragging keeps working outside the track
	v, changed = s.update(s.x+s.width/2, my+100, false, false)
	if !changed || v != 250 {
		t.Errorf("drag = (%d, %v), want (250, true)", v, changed)
	}

	// Same spot, no change
	if _, changed := s.update(s.x+s.width/2, my+100, false, false); changed {
		t.Error("no movement reported a change")
	}

	v, changed = s.update(s.x+s.width, my, false, true)
	if !changed || v != 500 {
		t.Errorf("release = (%d, %v), want (500, true)", v, changed)
	}
	if s.dragging {
		t.Error("still dragging after release")
	}
	if _, changed := s.update(s.x, my, false, false); changed {
		t.Error("moved after release")
	}
	if s.Text() != "Distance (500)" {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestSlider_PressOutside(t *testing.T) {
	s := newSlider("Connections", 2, 0, 20, 5)
	if _, changed := s.update(s.x+s.width/2, s.y+200, true, false); changed {
		t.Error("press outside the track changed the value")
	}
	if s.dragging {
		t.Error("press outside started a drag")
	}
}

func TestPointerInput_Apply(t *testing.T) {
	base := pointerSample{focused: true, width: 800, height: 600}
	at := func(x, y int) pointerSample {
		s := base
		s.cursorX, s.cursorY = x, y
		return s
	}

	t.Run("first sample is a baseline", func(t *testing.T) {
		var in pointerInput
		var tr network.PointerTracker
		in.apply(at(100, 100), &tr)
		if _, ok := tr.Position(); ok {
			t.Error("pointer active before any movement")
		}
		in.apply(at(101, 100), &tr)
		if pos, ok := tr.Position(); !ok || pos[0] != 101 {
			t.Errorf("Position() = %v, %v after move", pos, ok)
		}
	})

	t.Run("leaving the window", func(t *testing.T) {
		var in pointerInput
		var tr network.PointerTracker
		in.apply(at(10, 10), &tr)
		in.apply(at(20, 20), &tr)
		in.apply(at(-1, 20), &tr)
		if _, ok := tr.Position(); ok {
			t.Error("pointer active outside the window")
		}
		in.apply(at(30, 30), &tr)
		if _, ok := tr.Position(); !ok {
			t.Error("pointer not restored on re-entry")
		}
	})

	t.Run("losing focus", func(t *testing.T) {
		var in pointerInput
		var tr network.PointerTracker
		in.apply(at(10, 10), &tr)
		in.apply(at(20, 20), &tr)
		s := at(20, 20)
		s.focused = false
		in.apply(s, &tr)
		if _, ok := tr.Position(); ok {
			t.Error("pointer active without focus")
		}
	})

	t.Run("touch move and end", func(t *testing.T) {
		var in pointerInput
		var tr network.PointerTracker
		s := base
		s.touching = true
		s.touchX, s.touchY = 300, 200
		in.apply(s, &tr)
		if pos, ok := tr.Position(); !ok || pos[0] != 300 || pos[1] != 200 {
			t.Errorf("Position() = %v, %v after touch", pos, ok)
		}

		end := base
		end.touchEnded = true
		in.apply(end, &tr)
		if _, ok := tr.Position(); ok {
			t.Error("pointer active after touch end")
		}
	})
}

// seqStreamer emits each value on both channels, then ends.
type seqStreamer struct {
	values []float64
	pos    int
}

func (s *seqStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.values) {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos < len(s.values) {
		samples[n] = [2]float64{s.values[s.pos], s.values[s.pos]}
		n++
		s.pos++
	}
	return n, true
}

func (s *seqStreamer) Err() error { return nil }

func sliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLevelTap_Recent(t *testing.T) {
	src := &seqStreamer{values: []float64{1, 2, 3, 4, 5, 6}}
	tap := newLevelTap(src, 4)
	buf := make([][2]float64, 2)

	tap.Stream(buf)
	if got := tap.recent(4); !sliceEqual(got, []float64{1, 2}) {
		t.Errorf("recent before wrap = %v, want [1 2]", got)
	}

	tap.Stream(buf)
	tap.Stream(buf)
	if got := tap.recent(4); !sliceEqual(got, []float64{3, 4, 5, 6}) {
		t.Errorf("recent after wrap = %v, want [3 4 5 6]", got)
	}
	if got := tap.recent(10); !sliceEqual(got, []float64{3, 4, 5, 6}) {
		t.Errorf("recent(10) = %v, want [3 4 5 6]", got)
	}
	if got := tap.recent(3); !sliceEqual(got, []float64{4, 5, 6}) {
		t.Errorf("recent(3) = %v, want [4 5 6]", got)
	}

	if n, ok := tap.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted Stream = (%d, %v)", n, ok)
	}
}

func TestLevelTap_Level(t *testing.T) {
	values := make([]float64, 64)
	for i := range values {
		values[i] = 0.5
	}
	tap := newLevelTap(&seqStreamer{values: values}, 128)
	if tap.level(64) != 0 {
		t.Errorf("level of silence = %v", tap.level(64))
	}

	tap.Stream(make([][2]float64, 64))
	want := math.Pow(0.5, 0.3)
	if got := tap.level(64); math.Abs(got-want) > 1e-9 {
		t.Errorf("level = %v, want %v", got, want)
	}
}

func TestPulse_Idle(t *testing.T) {
	var p pulse
	if p.status() != "" {
		t.Errorf("status() = %q, want empty", p.status())
	}
	if p.glowScale() != 1 {
		t.Errorf("glowScale() = %v, want 1", p.glowScale())
	}

	p.level = 1
	p.tick(60)
	if p.level != config.SmoothingFactor {
		t.Errorf("level after idle tick = %v, want %v", p.level, config.SmoothingFactor)
	}
	p.togglePause()
	if p.paused {
		t.Error("togglePause without audio paused")
	}
}

// track is an in-memory beep.StreamSeekCloser.
type track struct {
	seqStreamer
	closed bool
}

func (t *track) Len() int { return len(t.values) }
func (t *track) Position() int { return t.pos }
func (t *track) Seek(p int) error { t.pos = p; return nil }
func (t *track) Close() error { t.closed = true; return nil }

func TestPulse_InstallClearsStaleFinish(t *testing.T) {
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	newTrack := func() *track { return &track{seqStreamer: seqStreamer{values: make([]float64, 44100)}} }

	var p pulse
	// A track ended while the file dialog was open
	p.finished.Store(true)

	first := newTrack()
	doneFirst := p.install(nil, first, format, newLevelTap(first, 64))
	p.tick(60)
	if p.streamer != first || first.closed {
		t.Fatal("stale end of playback released the new track")
	}
	if p.status() == "" {
		t.Error("status empty while a track is loaded")
	}

	second := newTrack()
	doneSecond := p.install(nil, second, format, newLevelTap(second, 64))
	if !first.closed {
		t.Error("replaced track not closed")
	}

	doneFirst()
	p.tick(60)
	if p.streamer != second || second.closed {
		t.Fatal("callback of a replaced track released the current one")
	}

	doneSecond()
	p.tick(60)
	if p.streamer != nil || !second.closed {
		t.Error("current track not released after it finished")
	}
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, _, err := decode(filepath.Join(dir, "missing.wav"))
	if err == nil || errors.Is(err, errUnsupported) {
		t.Errorf("missing file: got %v", err)
	}

	ogg := filepath.Join(dir, "track.ogg")
	if err := os.WriteFile(ogg, []byte("OggS"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := decode(ogg); !errors.Is(err, errUnsupported) {
		t.Errorf("ogg: got %v, want errUnsupported", err)
	}

	wav := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(wav, []byte("not a wave file"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := decode(wav); err == nil || !strings.Contains(err.Error(), "decoding broken.wav") {
		t.Errorf("broken wav: got %v", err)
	}
}

func TestHaloColor(t *testing.T) {
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 200}
	inner := haloColor(c, 1)
	outer := haloColor(c, glowRings)
	if inner.A <= outer.A {
		t.Errorf("inner halo alpha %d not above outer %d", inner.A, outer.A)
	}
	if inner.R != 1 || inner.G != 2 || inner.B != 3 {
		t.Errorf("halo changed color: %+v", inner)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(83 * time.Second); got != "01:23" {
		t.Errorf("formatDuration = %q, want 01:23", got)
	}
}

func TestGame_ApplySettings(t *testing.T) {
	cfg := config.Default()
	cfg.Network.Seed = 1
	g := New(cfg, logging.Discard())

	if len(g.Simulation().Points()) != 100 {
		t.Fatalf("started with %d points", len(g.Simulation().Points()))
	}
	if g.count.Text() != "Points (100)" || g.distance.Text() != "Distance (150)" || g.connections.Text() != "Connections (5)" {
		t.Errorf("labels = %q, %q, %q", g.count.Text(), g.distance.Text(), g.connections.Text())
	}

	g.applySettings(network.Settings{Count: 1000, MaxDistance: 60, MaxConnections: 3, Radius: 2})
	if len(g.Simulation().Points()) != 1000 {
		t.Errorf("have %d points, want 1000", len(g.Simulation().Points()))
	}
	if g.count.Text() != "Points (1000)" {
		t.Errorf("count label = %q", g.count.Text())
	}
	if s := g.Simulation().Settings(); s.MaxDistance != 60 || s.MaxConnections != 3 {
		t.Errorf("settings = %+v", s)
	}
}

func TestGame_StatusAndStop(t *testing.T) {
	cfg := config.Default()
	g := New(cfg, logging.Discard())

	g.paused = true
	g.setErr(errors.New("boom"))
	g.setErr(nil)
	status := g.status()
	if !strings.Contains(status, "[paused]") || !strings.Contains(status, "Error: boom") {
		t.Errorf("status = %q", status)
	}

	for _, key := range []string{"H: controls", "O: audio", "M: mute", "P: preset", "Space: pause", "Esc/Q: quit"} {
		if !strings.Contains(keyHelp, key) {
			t.Errorf("key help %q missing %q", keyHelp, key)
		}
	}
	if cfg.Window.Title != "Neurons" {
		t.Errorf("window title = %q, want it short", cfg.Window.Title)
	}

	g.Stop()
	if err := g.Update(); err == nil {
		t.Error("Update after Stop returned nil")
	}
}
