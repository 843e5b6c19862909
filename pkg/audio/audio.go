// Package audio is a small procedural sound engine on oto. Every sound
// and music track is synthesized, so there are no assets to load and no
// way for a missing file to break the game: a failed context simply
// yields a silent engine.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float samples (oto.FormatFloat32LE)
)

// System owns the oto context and the looping music player. A nil
// *System is valid and silent, so callers never need to guard.
type System struct {
	mu          sync.Mutex
	ctx         *oto.Context
	ready       chan struct{}
	musicPlayer oto.Player
	musicTrack  string
	musicVolume float64
	sfxVolume   float64
}

// NewSystem initializes the audio device. The error is informational;
// gameplay must continue without sound.
func NewSystem() (*System, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &System{ctx: ctx, ready: ready, musicVolume: 0.8, sfxVolume: 1.0}, nil
}

func (s *System) available() bool {
	if s == nil || s.ctx == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// PlaySound fires a one-shot effect by name. Unknown names are ignored.
func (s *System) PlaySound(name string) {
	if !s.available() {
		return
	}
	samples := generateEffect(name)
	if len(samples) == 0 {
		return
	}
	s.mu.Lock()
	vol := s.sfxVolume
	s.mu.Unlock()

	go func() {
		p := s.ctx.NewPlayer(&sampleReader{data: samples})
		p.SetVolume(vol)
		p.Play()
		for p.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		p.Close()
	}()
}

// SetMusicVolume adjusts the looping music level, clamped to [0,1].
func (s *System) SetMusicVolume(v float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.musicVolume = clamp(v, 0, 1)
	if s.musicPlayer != nil {
		s.musicPlayer.SetVolume(s.musicVolume)
	}
}

// Crossfade fades out whatever is playing and starts the named track in
// a loop. The fade runs in the background; the call never blocks.
func (s *System) Crossfade(track string, seconds float64) {
	if !s.available() {
		return
	}
	s.mu.Lock()
	old := s.musicPlayer
	s.musicPlayer = s.ctx.NewPlayer(newTrackLoop(track))
	s.musicPlayer.SetVolume(0)
	s.musicPlayer.Play()
	next := s.musicPlayer
	target := s.musicVolume
	s.musicTrack = track
	s.mu.Unlock()

	go func() {
		steps := 20
		stepWait := time.Duration(seconds * float64(time.Second) / float64(steps))
		for i := 1; i <= steps; i++ {
			frac := float64(i) / float64(steps)
			next.SetVolume(target * frac)
			if old != nil {
				old.SetVolume(target * (1 - frac))
			}
			time.Sleep(stepWait)
		}
		if old != nil {
			old.Close()
		}
	}()
}

// Preview plays a short snippet of the named track without touching the
// looping music player.
func (s *System) Preview(track string) {
	if !s.available() {
		return
	}
	samples := renderTrackBars(track, 2)
	s.mu.Lock()
	vol := s.musicVolume
	s.mu.Unlock()

	go func() {
		p := s.ctx.NewPlayer(&sampleReader{data: samples})
		p.SetVolume(vol)
		p.Play()
		for p.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		p.Close()
	}()
}

// Stop halts the looping music.
func (s *System) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.musicPlayer != nil {
		s.musicPlayer.Close()
		s.musicPlayer = nil
		s.musicTrack = ""
	}
}

// CurrentTrack returns the looping track name, empty when silent.
func (s *System) CurrentTrack() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.musicTrack
}

// sampleReader streams a fixed float32 sample buffer as little-endian
// bytes, then EOF.
type sampleReader struct {
	data []float32
	pos  int
}

func (r *sampleReader) Read(buf []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := 0
	for r.pos < len(r.data) && n+4 <= len(buf) {
		bits := math.Float32bits(r.data[r.pos])
		buf[n] = byte(bits)
		buf[n+1] = byte(bits >> 8)
		buf[n+2] = byte(bits >> 16)
		buf[n+3] = byte(bits >> 24)
		n += 4
		r.pos++
	}
	return n, nil
}

// trackLoop streams a synthesized riff forever.
type trackLoop struct {
	data []float32
	pos  int
}

func newTrackLoop(track string) *trackLoop {
	return &trackLoop{data: renderTrackBars(track, 4)}
}

func (t *trackLoop) Read(buf []byte) (int, error) {
	if len(t.data) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n+4 <= len(buf) {
		bits := math.Float32bits(t.data[t.pos])
		buf[n] = byte(bits)
		buf[n+1] = byte(bits >> 8)
		buf[n+2] = byte(bits >> 16)
		buf[n+3] = byte(bits >> 24)
		n += 4
		t.pos++
		if t.pos >= len(t.data) {
			t.pos = 0
		}
	}
	return n, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
