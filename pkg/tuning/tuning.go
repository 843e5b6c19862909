// Package tuning centralizes every balance constant the drive simulation
// uses, so gameplay feel can be adjusted in one place instead of hunting
// through update loops.
package tuning

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Road holds the constants behind procedural road geometry.
type Road struct {
	ScreenWidth       float64 // logical screen width in pixels
	ScreenHeight      float64 // logical screen height in pixels
	BaseWidth         float64 // road width in pixels before oscillation
	CurvePixelGain    float64 // pixels of center offset per unit of curve
	FreewayAmplitude  float64 // baseline sine bend strength
	FreewayFrequency  float64 // baseline sine bend frequency (per road unit)
	WidthPrimaryAmp   float64 // primary width oscillation, +- pixels
	WidthSecondaryAmp float64 // secondary width oscillation, +- pixels
	SurfaceNoiseAmp   float64 // cosmetic surface noise, speed scaled
	PlayerHalfWidth   float64 // safety margin folded into the boundaries, pixels
	CurveSmoothing    float64 // low-pass factor kept from the previous frame
	TurnFreewayDamp   float64 // freeway influence while a discrete turn is active
}

// Turn holds the discrete turn scheduler constants.
type Turn struct {
	InitialStraight float64 // seconds of straight road before the first turn
	StraightMin     float64 // seconds, lower bound of the straight window
	StraightMax     float64 // seconds, upper bound of the straight window
	Duration        float64 // seconds a turn takes from entry to exit
	AlternateChance float64 // probability the next turn flips direction
	IntensityBase   float64
	IntensityJitter float64 // uniform +- jitter around the base
	IntensityMin    float64
	IntensityMax    float64
}

// Player holds the drive model constants.
type Player struct {
	MaxSpeed          float64
	Acceleration      float64 // speed units per second while accelerating
	Deceleration      float64 // speed units per second while coasting
	TurnDragFactor    float64 // how much an active turn saps accel/decel
	SteerRate         float64 // normalized x units per second at full input
	RacingLinePull    float64 // involuntary pull toward the inside of a turn
	DriftBuildRate    float64 // momentum accumulation while turning fast
	DriftDecayRate    float64 // momentum bleed while straight
	DriftSpeedGate    float64 // minimum speed before drift accumulates
	OffRoadGain       float64 // penalty accumulation per second at full speed
	OffRoadCap        float64
	OffRoadNudge      float64 // corrective pull back onto the road, per second
	PenaltyFloor      float64 // effective speed multiplier never drops below this
	CrashEdgeLow      float64 // crash zone: x below this...
	CrashEdgeHigh     float64 // ...or above this
	CrashSpeedGate    float64 // ...while faster than this
	CrashSpeedScale   float64 // speed multiplier applied on crash
	CrashFlagSeconds  float64 // one-shot timer before the crash flag clears
	CollisionBoxW     float64 // pixels
	CollisionBoxH     float64 // longitudinal units
	PenaltyRecovery   float64 // collision speed penalty decay per second
	SpeedPenaltyCap   float64
	DamageCap         float64
}

// Traffic holds the NPC spawning and AI constants.
type Traffic struct {
	SpawnInterval      float64 // seconds between spawn attempts
	SpawnChance        float64
	MaxVehicles        int
	SameDirectionRatio float64 // share of spawns in lanes 3-4
	TruckRatio         float64
	TruckSpeedScale    float64
	OncomingBaseSpeed  float64
	AheadSpawnMinY     float64
	AheadSpawnMaxY     float64
	BehindSpawnMinY    float64
	BehindSpawnMaxY    float64
	DespawnBehindY     float64
	DespawnAheadY      float64
	LaneChangeChance   float64 // per-frame roll while cruising
	TruckChangeScale   float64 // trucks roll at a fraction of the car chance
	LaneChangeRate     float64 // normalized x units per second while merging
	LaneChangeSnap     float64 // distance at which the merge completes
	LaneChangeCooldown float64 // seconds between attempts
	SafeGapY           float64 // longitudinal clearance required to merge
	MergingGapY        float64 // clearance when the other car is mid-merge
	PlayerClearance    float64 // lateral clearance from the player
	PlayerClearanceY   float64 // longitudinal window around the player
	BrakeWindowY       float64 // follow distance where speed matching starts
	EmergencyGapY      float64 // follow distance for an emergency brake
	HeadOnWindowY      float64 // opposing-car window forcing a lane change
	StuckBrakeSeconds  float64 // braking this long may trigger a merge
	StuckMergeChance   float64
	LaneDriftTolerance float64 // fraction of a lane width before recentering
	RecenterRate       float64 // pull toward the lane center, per second
	HalfMargin         float64 // normalized margin inside each direction half
}

// Hazard holds construction zone and dynamic hazard constants.
type Hazard struct {
	ZoneInterval     float64 // seconds between construction zone attempts
	MaxZones         int
	ZoneMinLength    float64
	ZoneMaxLength    float64
	ConeSpacing      float64
	BarrierThreshold float64 // zones longer than this get a midpoint barrier
	SignLeadDistance float64 // warning sign placed this far before the zone
	ZoneSpawnY       float64 // longitudinal offset where zones appear
	PruneY           float64 // hazards behind this are discarded
	OilSlickChance   float64 // per-frame roll per truck ahead of the player
	DebrisChance     float64 // per-frame roll
	DebrisSpawnY     float64
	OilSlipStrength  float64
	OilSlipDuration  float64
	DebrisDamage     float64
	PuddleStrength   float64
	PuddleDuration   float64
	SpinRate         float64 // decorative spin while slipping, radians/sec
	SpinDecay        float64 // proportional spin bleed per second once dry
}

// Collision holds penalty bookkeeping shared by traffic and hazard hits.
type Collision struct {
	CarPenalty      float64
	CarDamage       float64
	TruckPenalty    float64
	TruckDamage     float64
	ConePenalty     float64
	ConeDamage      float64
	BarrierPenalty  float64
	BarrierDamage   float64
	TrafficCooldown float64
	HazardCooldown  float64
	TrafficFlash    float64
	HazardFlash     float64
	NudgeY          float64 // longitudinal shove applied to the offending car
}

// Session holds race pacing constants.
type Session struct {
	RaceSeconds     float64
	FinalLapSeconds float64 // remaining time at which the final lap flag raises
	TotalRacers     int
	ScorePerUnit    float64 // score per unit of distance traveled
	PositionScore   float64 // score per rank step in the position estimate
	ComicInterval   float64 // seconds between cosmetic comic-text popups
	ComicLifetime   float64
	MaxDeltaTime    float64 // dt clamp applied at the controller boundary
	BoostThreshold  float64 // speed at which the boost flag raises
}

// DriveTuning is the complete balance sheet for the drive minigame. One
// value is built at startup and shared, read-only, by every component.
type DriveTuning struct {
	Seed      int64
	Road      Road
	Turn      Turn
	Player    Player
	Traffic   Traffic
	Hazard    Hazard
	Collision Collision
	Session   Session
}

// Default returns the shipped balance values.
func Default() DriveTuning {
	return DriveTuning{
		Seed: 0,
		Road: Road{
			ScreenWidth:       640,
			ScreenHeight:      480,
			BaseWidth:         300,
			CurvePixelGain:    200,
			FreewayAmplitude:  0.5,
			FreewayFrequency:  0.045,
			WidthPrimaryAmp:   20,
			WidthSecondaryAmp: 7.5,
			SurfaceNoiseAmp:   3,
			PlayerHalfWidth:   12,
			CurveSmoothing:    0.7,
			TurnFreewayDamp:   0.3,
		},
		Turn: Turn{
			InitialStraight: 12,
			StraightMin:     8,
			StraightMax:     10,
			Duration:        4,
			AlternateChance: 0.8,
			IntensityBase:   0.6,
			IntensityJitter: 0.2,
			IntensityMin:    0.3,
			IntensityMax:    1.0,
		},
		Player: Player{
			MaxSpeed:         1.0,
			Acceleration:     0.35,
			Deceleration:     0.5,
			TurnDragFactor:   0.5,
			SteerRate:        0.55,
			RacingLinePull:   0.04,
			DriftBuildRate:   0.05,
			DriftDecayRate:   0.12,
			DriftSpeedGate:   0.5,
			OffRoadGain:      0.8,
			OffRoadCap:       0.6,
			OffRoadNudge:     2.5,
			PenaltyFloor:     0.1,
			CrashEdgeLow:     0.1,
			CrashEdgeHigh:    0.9,
			CrashSpeedGate:   0.6,
			CrashSpeedScale:  0.3,
			CrashFlagSeconds: 0.5,
			CollisionBoxW:    24,
			CollisionBoxH:    36,
			PenaltyRecovery:  0.4,
			SpeedPenaltyCap:  0.8,
			DamageCap:        1.0,
		},
		Traffic: Traffic{
			SpawnInterval:      1.5,
			SpawnChance:        0.7,
			MaxVehicles:        10,
			SameDirectionRatio: 0.7,
			TruckRatio:         0.15,
			TruckSpeedScale:    0.85,
			OncomingBaseSpeed:  0.7,
			AheadSpawnMinY:     150,
			AheadSpawnMaxY:     400,
			BehindSpawnMinY:    -150,
			BehindSpawnMaxY:    -50,
			DespawnBehindY:     -250,
			DespawnAheadY:      700,
			LaneChangeChance:   0.004,
			TruckChangeScale:   0.4,
			LaneChangeRate:     0.12,
			LaneChangeSnap:     0.05,
			LaneChangeCooldown: 3,
			SafeGapY:           100,
			MergingGapY:        120,
			PlayerClearance:    0.15,
			PlayerClearanceY:   100,
			BrakeWindowY:       120,
			EmergencyGapY:      60,
			HeadOnWindowY:      50,
			StuckBrakeSeconds:  2,
			StuckMergeChance:   0.05,
			LaneDriftTolerance: 0.4,
			RecenterRate:       0.6,
			HalfMargin:         0.02,
		},
		Hazard: Hazard{
			ZoneInterval:     8,
			MaxZones:         2,
			ZoneMinLength:    200,
			ZoneMaxLength:    400,
			ConeSpacing:      40,
			BarrierThreshold: 300,
			SignLeadDistance: 100,
			ZoneSpawnY:       500,
			PruneY:           -300,
			OilSlickChance:   0.002,
			DebrisChance:     0.0008,
			DebrisSpawnY:     400,
			OilSlipStrength:  0.3,
			OilSlipDuration:  1.5,
			DebrisDamage:     0.15,
			PuddleStrength:   0.7,
			PuddleDuration:   0.8,
			SpinRate:         6,
			SpinDecay:        8,
		},
		Collision: Collision{
			CarPenalty:      0.2,
			CarDamage:       0.1,
			TruckPenalty:    0.3,
			TruckDamage:     0.15,
			ConePenalty:     0.1,
			ConeDamage:      0.05,
			BarrierPenalty:  0.3,
			BarrierDamage:   0.15,
			TrafficCooldown: 1.0,
			HazardCooldown:  0.5,
			TrafficFlash:    0.3,
			HazardFlash:     0.2,
			NudgeY:          50,
		},
		Session: Session{
			RaceSeconds:     90,
			FinalLapSeconds: 20,
			TotalRacers:     8,
			ScorePerUnit:    10,
			PositionScore:   500,
			ComicInterval:   6,
			ComicLifetime:   1.2,
			MaxDeltaTime:    0.1,
			BoostThreshold:  0.95,
		},
	}
}

// Load returns the default tuning with any environment overrides applied.
// A .env file in the working directory is honored if present; a missing
// file is not an error.
func Load() DriveTuning {
	_ = godotenv.Load()

	t := Default()
	if v, ok := lookupInt64("DRIVE_SEED"); ok {
		t.Seed = v
	}
	if v, ok := lookupFloat("DRIVE_RACE_SECONDS"); ok {
		t.Session.RaceSeconds = v
	}
	if v, ok := lookupInt("DRIVE_TRAFFIC_CAP"); ok {
		t.Traffic.MaxVehicles = v
	}
	if v, ok := lookupFloat("DRIVE_MAX_SPEED"); ok {
		t.Player.MaxSpeed = v
	}
	if v, ok := lookupFloat("DRIVE_SPAWN_INTERVAL"); ok {
		t.Traffic.SpawnInterval = v
	}
	return t
}

func lookupFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookupInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookupInt64(key string) (int64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
