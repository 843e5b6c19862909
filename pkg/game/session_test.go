package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/drive/pkg/player"
	"github.com/golangdaddy/drive/pkg/tuning"
	"github.com/golangdaddy/drive/pkg/ui"
)

// musicRecorder captures every call the session routes to its audio
// collaborator.
type musicRecorder struct {
	sounds     []string
	crossfades []string
	volumes    []float64
	previews   []string
	stopped    bool
}

func (m *musicRecorder) PlaySound(name string) { m.sounds = append(m.sounds, name) }
func (m *musicRecorder) SetMusicVolume(v float64) { m.volumes = append(m.volumes, v) }
func (m *musicRecorder) Crossfade(t string, _ float64) { m.crossfades = append(m.crossfades, t) }
func (m *musicRecorder) Preview(t string) { m.previews = append(m.previews, t) }
func (m *musicRecorder) Stop() { m.stopped = true }

func (m *musicRecorder) count(sound string) int {
	n := 0
	for _, s := range m.sounds {
		if s == sound {
			n++
		}
	}
	return n
}

func newTestSession(seed int64) (*Session, *musicRecorder) {
	cfg := tuning.Default()
	cfg.Seed = seed
	rec := &musicRecorder{}
	s := NewSession(cfg, rec)
	s.track = ui.Track{Name: "CRUISE", ID: "cruise"}
	return s, rec
}

func TestNewSessionStartsAtMusicSelect(t *testing.T) {
	s, _ := newTestSession(1)
	assert.Equal(t, StateMusicSelect, s.State())
	assert.Equal(t, tuning.Default().Session.TotalRacers, s.Race().Position)
}

func TestNilMusicPlayerIsSafe(t *testing.T) {
	cfg := tuning.Default()
	cfg.Seed = 1
	s := NewSession(cfg, nil)

	s.startRace()
	s.Step(0.016, player.Input{Accelerate: true})
	assert.Equal(t, StateRacing, s.State())
}

func TestStartRaceResetsAndCuesMusic(t *testing.T) {
	s, rec := newTestSession(1)
	s.score = 999
	s.distance = 42

	s.startRace()

	assert.Equal(t, StateRacing, s.State())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Distance())
	assert.Equal(t, s.cfg.Session.RaceSeconds, s.raceTimer)
	assert.Len(t, s.rivals, s.cfg.Session.TotalRacers-1)
	assert.Equal(t, []string{"cruise"}, rec.crossfades)
	assert.Equal(t, 1, rec.count("rev"))
}

func TestStepClampsDelta(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()
	start := s.raceTimer

	s.Step(math.NaN(), player.Input{})
	assert.Equal(t, start, s.raceTimer, "NaN dt must not advance time")

	s.Step(-5, player.Input{})
	assert.Equal(t, start, s.raceTimer, "negative dt must not advance time")

	s.Step(1000, player.Input{})
	assert.InDelta(t, start-s.cfg.Session.MaxDeltaTime, s.raceTimer, 1e-9, "huge dt clamps to the tuned maximum")
}

func TestScoreAndDistanceTrackEffectiveSpeed(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()

	for i := 0; i < 200; i++ {
		s.Step(0.016, player.Input{Accelerate: true})
	}

	assert.Greater(t, s.Distance(), 0.0)
	assert.Greater(t, s.Score(), 0)
	assert.Greater(t, s.Race().Speed, 0.0)
	assert.Greater(t, s.TopSpeed(), 0.0)
}

func TestRaceEndsWhenTimerExpires(t *testing.T) {
	s, rec := newTestSession(1)
	s.startRace()
	s.raceTimer = 0.05

	s.Step(0.1, player.Input{})

	assert.Equal(t, StateGameOver, s.State())
	assert.True(t, s.Race().GameOver)
	assert.Zero(t, s.Race().TimeRemaining)
	assert.True(t, rec.stopped)
	assert.Equal(t, 1, rec.count("fanfare"))
}

func TestFinalLapCuesExactlyOnce(t *testing.T) {
	s, rec := newTestSession(1)
	s.startRace()
	s.raceTimer = s.cfg.Session.FinalLapSeconds + 0.05

	s.Step(0.1, player.Input{})
	require.True(t, s.Race().FinalLap)

	for i := 0; i < 50; i++ {
		s.Step(0.016, player.Input{})
	}

	finals := 0
	for _, track := range rec.crossfades {
		if track == "final" {
			finals++
		}
	}
	assert.Equal(t, 1, finals)
}

func TestPositionEstimate(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()

	s.publishRaceState()
	assert.Equal(t, s.cfg.Session.TotalRacers, s.Race().Position, "no score yet, dead last")

	s.score = s.cfg.Session.PositionScore * 3
	s.publishRaceState()
	assert.Equal(t, s.cfg.Session.TotalRacers-3, s.Race().Position)

	s.score = s.cfg.Session.PositionScore * 100
	s.publishRaceState()
	assert.Equal(t, 1, s.Race().Position, "rank never goes below first")
}

func TestVictoryRequiresFirstPlace(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()
	s.score = s.cfg.Session.PositionScore * 100
	s.raceTimer = 0.01

	s.Step(0.1, player.Input{})

	assert.Equal(t, StateGameOver, s.State())
	assert.True(t, s.Race().Victory)
	assert.Equal(t, 1, s.FinalPosition())

	s2, _ := newTestSession(1)
	s2.startRace()
	s2.raceTimer = 0.01
	s2.Step(0.1, player.Input{})
	assert.False(t, s2.Race().Victory, "dead last is not a win")
}

func TestMusicDucksWhileFlashTimerRuns(t *testing.T) {
	s, rec := newTestSession(1)
	s.startRace()

	s.car.Penalty.FlashTimer = 0.3
	s.Step(0.016, player.Input{})
	require.NotEmpty(t, rec.volumes)
	assert.Equal(t, 0.5, rec.volumes[len(rec.volumes)-1])

	for i := 0; i < 30; i++ {
		s.Step(0.016, player.Input{})
	}
	assert.Equal(t, 0.8, rec.volumes[len(rec.volumes)-1], "volume restores once the flash fades")
}

func TestEdgeCrashCuesSoundOnce(t *testing.T) {
	s, rec := newTestSession(1)
	s.startRace()
	s.car.X = 0.05
	s.car.Speed = 0.8

	s.Step(0.016, player.Input{})
	require.True(t, s.Race().Crash)
	assert.Equal(t, 1, rec.count("crash"))

	s.Step(0.016, player.Input{})
	assert.Equal(t, 1, rec.count("crash"), "held flag must not retrigger the sound")
}

func TestComicPopupRotatesOnItsTimer(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()

	frames := int(s.cfg.Session.ComicInterval/0.016) + 10
	for i := 0; i < frames; i++ {
		s.Step(0.016, player.Input{})
	}
	assert.NotEmpty(t, s.comicText)
}

func TestFixedSeedIsDeterministic(t *testing.T) {
	a, _ := newTestSession(42)
	b, _ := newTestSession(42)
	a.startRace()
	b.startRace()

	in := player.Input{Accelerate: true, SteerRight: true}
	for i := 0; i < 600; i++ {
		a.Step(0.016, in)
		b.Step(0.016, in)
	}

	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.Distance(), b.Distance())
	assert.Equal(t, a.car.X, b.car.X)
	assert.Equal(t, a.traffic.Count(), b.traffic.Count())
}

func TestProjectionWindowTracksDespawnDistance(t *testing.T) {
	cfg := tuning.Default()
	cfg.Seed = 1
	cfg.Traffic.DespawnAheadY = 500
	s := NewSession(cfg, nil)

	_, _, _, ok := s.project(0.5, 450)
	assert.True(t, ok)

	_, _, _, ok = s.project(0.5, 550)
	assert.False(t, ok, "nothing draws beyond the despawn distance")

	_, _, _, ok = s.project(0.5, -nearCull-1)
	assert.False(t, ok, "nothing draws behind the camera")

	_, sy, _, ok := s.project(0.5, cfg.Traffic.DespawnAheadY)
	require.True(t, ok)
	assert.InDelta(t, s.horizonY(), sy, 1e-9, "the farthest visible row sits on the horizon")
}

func TestGameOverFlagsClearOnRestart(t *testing.T) {
	s, _ := newTestSession(1)
	s.startRace()
	s.raceTimer = 0.01
	s.Step(0.1, player.Input{})
	require.Equal(t, StateGameOver, s.State())

	s.startRace()
	assert.Equal(t, StateRacing, s.State())
	assert.False(t, s.Race().GameOver)
	assert.False(t, s.Race().FinalLap)
	assert.False(t, s.Race().Victory)
}
