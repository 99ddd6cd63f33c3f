package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/neuron-network/internal/config"
)

// errUnsupported is returned for files beep cannot decode.
var errUnsupported = errors.New("unsupported file type")

// pulse plays an audio file and exposes a smoothed loudness level that the
// renderer turns into glow.
type pulse struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *levelTap

	level    float64
	position time.Duration
	duration time.Duration

	paused   bool
	initDone bool

	// finished is set from the speaker goroutine when the track of the
	// current generation ends. gen is bumped on every install.
	finished atomic.Bool
	gen      atomic.Uint64
}

// playing reports whether a file is loaded and not paused.
func (p *pulse) playing() bool {
	return p.streamer != nil && !p.paused
}

// tick advances the position clock and the smoothed level. Called once per
// update at the given tick rate.
func (p *pulse) tick(tps int) {
	if p.finished.Swap(false) {
		p.release()
	}
	if !p.playing() {
		p.level *= config.SmoothingFactor
		return
	}

	p.position += time.Second / time.Duration(max(tps, 1))
	if p.position > p.duration {
		p.position = p.duration
	}
	p.level = config.SmoothingFactor*p.level + (1-config.SmoothingFactor)*p.tap.level(2048)
}

// glowScale maps the current level to a halo multiplier.
func (p *pulse) glowScale() float64 {
	return 1 + config.PulseGain*p.level
}

func (p *pulse) togglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// status is the HUD fragment for the audio, empty when nothing is loaded.
func (p *pulse) status() string {
	if p.streamer == nil {
		return ""
	}
	state := "playing"
	if p.paused {
		state = "paused"
	}
	return fmt.Sprintf("audio %s %s/%s", state, formatDuration(p.position), formatDuration(p.duration))
}

// decode opens path with the decoder matching its extension.
func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, fmt.Errorf("opening audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %s", errUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// load decodes path and starts playing it, replacing whatever was playing.
func (p *pulse) load(path string) error {
	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	t := newLevelTap(streamer, config.VisualRingSize)

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("initializing speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinitializing speaker: %w", err)
		}
	default:
		speaker.Clear()
	}

	done := p.install(f, streamer, format, t)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(done)))
	return nil
}

// install swaps in a decoded track and returns the end-of-playback callback
// for it. Callbacks of earlier tracks become no-ops.
func (p *pulse) install(f *os.File, streamer beep.StreamSeekCloser, format beep.Format, t *levelTap) func() {
	p.release()
	gen := p.gen.Add(1)
	p.finished.Store(false)

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: t, Paused: false}
	p.tap = t
	p.paused = false
	p.duration = format.SampleRate.D(streamer.Len())
	p.position = 0

	return func() {
		if p.gen.Load() == gen {
			p.finished.Store(true)
		}
	}
}

// release closes the current file, if any.
func (p *pulse) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.paused = false
	p.position = 0
	p.duration = 0
}

// stop silences the speaker and releases the file.
func (p *pulse) stop() {
	if p.initDone {
		speaker.Clear()
	}
	p.release()
}
