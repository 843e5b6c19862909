// Package game wires the drive simulation together: the session state
// machine, the fixed per-frame pipeline, and the rendering of the scene
// and HUD.
package game

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/drive/pkg/collision"
	"github.com/golangdaddy/drive/pkg/data"
	"github.com/golangdaddy/drive/pkg/hazard"
	"github.com/golangdaddy/drive/pkg/player"
	"github.com/golangdaddy/drive/pkg/road"
	"github.com/golangdaddy/drive/pkg/traffic"
	"github.com/golangdaddy/drive/pkg/tuning"
	"github.com/golangdaddy/drive/pkg/ui"
)

// State is the session's top-level state.
type State int

const (
	StateMusicSelect State = iota
	StateVehicleSelect
	StateReady
	StateRacing
	StateGameOver
)

// RaceState is the per-frame race summary published to the external
// music/UI collaborators.
type RaceState struct {
	Speed         float64
	Position      int
	TotalRacers   int
	TimeRemaining float64
	Boost         bool
	Crash         bool
	FinalLap      bool
	Victory       bool
	GameOver      bool
}

// MusicPlayer is the audio collaborator surface. Every call must be
// non-fatal; a silent implementation is fine.
type MusicPlayer interface {
	PlaySound(name string)
	SetMusicVolume(v float64)
	Crossfade(track string, seconds float64)
	Preview(track string)
	Stop()
}

// noopMusic keeps the session free of nil checks when no audio device
// is available.
type noopMusic struct{}

func (noopMusic) PlaySound(string)          {}
func (noopMusic) SetMusicVolume(float64)    {}
func (noopMusic) Crossfade(string, float64) {}
func (noopMusic) Preview(string)            {}
func (noopMusic) Stop()                     {}

// comicLabels rotate through the cosmetic popup timer while racing.
var comicLabels = []string{"VROOM!", "ZOOM!", "SCREECH!", "WHOOSH!"}

// Session is the drive minigame controller. It owns every component and
// advances them in a fixed order, once per frame, single threaded.
type Session struct {
	cfg  tuning.DriveTuning
	rng  *rand.Rand
	seed int64

	state       State
	returnState State // where a music-select detour goes back to

	turns    *road.TurnSystem
	geom     *road.Geometry
	traffic  *traffic.System
	hazards  *hazard.System
	car      *player.Model
	resolver *collision.Resolver
	music    MusicPlayer

	musicSel   *ui.MusicSelectScreen
	vehicleSel *ui.VehicleSelectScreen
	track      ui.Track
	vehicle    ui.VehicleOption

	race        RaceState
	raceTimer   float64
	score       float64
	distance    float64
	rivals      []string
	paused      bool
	prevCrashed bool
	finalLapCue bool

	scenery *ebiten.Image // countryside strip, generated on first draw

	comicTimer float64
	comicText  string
	comicLife  float64
}

// NewSession builds the controller with all components seeded from the
// tuning. A nil music player is replaced with a silent one.
func NewSession(cfg tuning.DriveTuning, music MusicPlayer) *Session {
	if music == nil {
		music = noopMusic{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		cfg:      cfg,
		rng:      rng,
		seed:     seed,
		state:    StateMusicSelect,
		turns:    road.NewTurnSystem(cfg.Turn, rng),
		geom:     road.NewGeometry(cfg.Road),
		traffic:  traffic.NewSystem(cfg.Traffic, rng),
		hazards:  hazard.NewSystem(cfg.Hazard, rng),
		car:      player.NewModel(cfg.Player, player.DefaultStats()),
		resolver: collision.NewResolver(cfg.Collision, cfg.Player, cfg.Road),
		music:    music,
		race:     RaceState{Position: cfg.Session.TotalRacers, TotalRacers: cfg.Session.TotalRacers},
	}
	s.musicSel = ui.NewMusicSelectScreen(ui.DefaultTracks(), music.Preview)
	s.vehicleSel = ui.NewVehicleSelectScreen(ui.DefaultVehicles())
	return s
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Race returns the published race summary.
func (s *Session) Race() RaceState { return s.race }

// Score, Distance, TopSpeed, and FinalPosition are the plain read
// values an external leaderboard collaborator picks up at game over.
func (s *Session) Score() int         { return int(s.score) }
func (s *Session) Distance() float64  { return s.distance }
func (s *Session) TopSpeed() float64  { return s.car.TopSpeedReached }
func (s *Session) FinalPosition() int { return s.race.Position }

// Update is the ebiten per-tick entry point: it maps host input and
// advances the state machine.
func (s *Session) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	switch s.state {
	case StateMusicSelect:
		s.updateMusicSelect()
	case StateVehicleSelect:
		s.updateVehicleSelect()
	case StateReady:
		s.updateReady()
	case StateRacing:
		s.updateRacing(dt)
	case StateGameOver:
		s.updateGameOver()
	}
	return nil
}

func (s *Session) updateMusicSelect() {
	switch s.musicSel.Update() {
	case ui.OutcomeSelected:
		s.track = s.musicSel.Selected()
		s.music.PlaySound("beep")
		if s.returnState == StateMusicSelect {
			s.state = StateVehicleSelect
		} else {
			s.state = s.returnState
			s.returnState = StateMusicSelect
		}
	case ui.OutcomeCancelled:
		if s.returnState != StateMusicSelect {
			s.state = s.returnState
			s.returnState = StateMusicSelect
		}
	}
}

func (s *Session) updateVehicleSelect() {
	switch s.vehicleSel.Update() {
	case ui.OutcomeSelected:
		s.vehicle = s.vehicleSel.Selected()
		s.car.SetStats(player.Stats{
			Name:         s.vehicle.Name,
			TopSpeed:     s.vehicle.TopSpeed,
			Acceleration: s.vehicle.Acceleration,
			Handling:     s.vehicle.Handling,
		})
		s.music.PlaySound("beep")
		s.state = StateReady
	case ui.OutcomeCancelled:
		s.state = StateMusicSelect
	}
}

func (s *Session) updateReady() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.startRace()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.returnState = StateReady
		s.state = StateMusicSelect
	}
}

func (s *Session) updateRacing(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
	}
	if s.paused {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.endRace()
		return
	}

	in := player.Input{
		Accelerate: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		SteerLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		SteerRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
	s.Step(dt, in)
}

func (s *Session) updateGameOver() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.state = StateReady
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.returnState = StateGameOver
		s.state = StateMusicSelect
	}
}

// startRace resets every component and enters Racing.
func (s *Session) startRace() {
	s.turns.Reset()
	s.geom.Reset()
	s.traffic.Reset()
	s.hazards.Reset()
	s.car.Reset()

	s.score = 0
	s.distance = 0
	s.rivals = data.PickRacers(s.rng, s.cfg.Session.TotalRacers-1)
	s.raceTimer = s.cfg.Session.RaceSeconds
	s.paused = false
	s.prevCrashed = false
	s.finalLapCue = false
	s.comicTimer = 0
	s.comicLife = 0
	s.race = RaceState{
		Position:      s.cfg.Session.TotalRacers,
		TotalRacers:   s.cfg.Session.TotalRacers,
		TimeRemaining: s.raceTimer,
	}

	s.state = StateRacing
	s.music.Crossfade(s.track.ID, 1.0)
	s.music.PlaySound("rev")
}

// endRace leaves Racing, freezes the results, and stops the race music.
func (s *Session) endRace() {
	s.state = StateGameOver
	s.race.GameOver = true
	s.race.Victory = s.race.Position == 1
	s.music.Stop()
	s.music.PlaySound("fanfare")
}

// Step advances the whole simulation pipeline by dt seconds in the
// fixed order: turns, road geometry, traffic, hazards, dynamic spawns,
// effects, comic timer, collisions, then scoring and race-state
// publishing. dt is clamped defensively at this boundary.
func (s *Session) Step(dt float64, in player.Input) {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	if dt > s.cfg.Session.MaxDeltaTime {
		dt = s.cfg.Session.MaxDeltaTime
	}

	s.turns.Update(dt)
	snap := s.turns.Snapshot()

	speed := s.car.EffectiveSpeed()
	s.geom.Update(dt, speed, snap)
	b := s.geom.Bounds()

	s.traffic.Update(dt, b, s.car.X, speed)
	s.hazards.Update(dt, speed, b)

	var trucks []hazard.TruckInfo
	for _, t := range s.traffic.TrucksAhead() {
		trucks = append(trucks, hazard.TruckInfo{X: t.X, Y: t.Y, Length: t.Height() * 2})
	}
	s.hazards.SpawnDynamics(b, trucks)
	s.hazards.UpdateEffects(dt, speed)

	s.car.Update(dt, in, snap, b, s.hazards.SlipFactor())

	s.updateComic(dt)

	if ev := s.resolver.Resolve(s.car, s.traffic, s.hazards); ev != nil {
		s.music.PlaySound(ev.Sound)
		s.showComic(ev.Label)
	}
	if s.car.Crashed() && !s.prevCrashed {
		s.music.PlaySound("crash")
		s.showComic("CRASH!")
	}
	s.prevCrashed = s.car.Crashed()

	s.distance += speed * dt * 10
	s.score += speed * dt * s.cfg.Session.ScorePerUnit

	s.raceTimer -= dt
	if s.raceTimer < 0 {
		s.raceTimer = 0
	}
	s.publishRaceState()

	if s.raceTimer <= 0 {
		s.endRace()
	}
}

// updateComic rotates the cosmetic popup while one isn't already showing.
func (s *Session) updateComic(dt float64) {
	if s.comicLife > 0 {
		s.comicLife -= dt
		return
	}
	s.comicTimer += dt
	if s.comicTimer >= s.cfg.Session.ComicInterval {
		s.comicTimer = 0
		s.showComic(comicLabels[s.rng.Intn(len(comicLabels))])
	}
}

func (s *Session) showComic(label string) {
	s.comicText = label
	s.comicLife = s.cfg.Session.ComicLifetime
}

// publishRaceState refreshes the summary the music collaborator keys
// off: speed, rank estimate, and the boost/crash/final-lap flags.
func (s *Session) publishRaceState() {
	s.race.Speed = s.car.Speed
	s.race.TimeRemaining = s.raceTimer
	s.race.Boost = s.car.Speed >= s.cfg.Session.BoostThreshold*s.cfg.Player.MaxSpeed
	s.race.Crash = s.car.Crashed()

	rank := s.cfg.Session.TotalRacers - int(s.score/s.cfg.Session.PositionScore)
	if rank < 1 {
		rank = 1
	}
	s.race.Position = rank

	if !s.race.FinalLap && s.raceTimer <= s.cfg.Session.FinalLapSeconds {
		s.race.FinalLap = true
		if !s.finalLapCue {
			s.finalLapCue = true
			s.music.Crossfade("final", 1.0)
		}
	}

	// Duck the music briefly after a hit so the impact reads.
	if s.car.Penalty.FlashTimer > 0 {
		s.music.SetMusicVolume(0.5)
	} else {
		s.music.SetMusicVolume(0.8)
	}
}
