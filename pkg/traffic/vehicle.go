package traffic

import (
	"github.com/google/uuid"
)

// Class distinguishes the two NPC body types. Trucks are wider, slower,
// and leak oil.
type Class int

const (
	ClassCar Class = iota
	ClassTruck
)

// AIState is the lane-keeping state of an NPC vehicle.
type AIState int

const (
	Cruising AIState = iota
	ChangingLanes
)

// laneChangePlan exists only while a vehicle is mid lane change; a nil
// plan means the vehicle is cruising, so a stale target can never leak
// into the cruising state.
type laneChangePlan struct {
	targetLane int
	targetX    float64
}

// Vehicle is one NPC in the traffic stream. X is normalized [0,1]; Y is
// the signed longitudinal offset from the player, positive ahead.
type Vehicle struct {
	ID        uuid.UUID
	X         float64
	Y         float64
	Lane      int // 1-2 oncoming, 3-4 same direction
	Direction int // +1 same direction as the player, -1 oncoming
	Speed     float64
	SpeedMult float64
	Class     Class
	Palette   int // color variant for the renderer

	state      AIState
	plan       *laneChangePlan
	changeWait float64 // cooldown before the next lane-change roll
	brakingFor float64 // accumulated time spent braking behind someone
}

// State returns the vehicle's AI state.
func (v *Vehicle) State() AIState { return v.state }

// TargetX returns the lane-change target and whether one is active. The
// target only exists while the vehicle is changing lanes.
func (v *Vehicle) TargetX() (float64, bool) {
	if v.plan == nil {
		return 0, false
	}
	return v.plan.targetX, true
}

// Width returns the collision half-extent in normalized x. Trucks carry
// a noticeably larger box.
func (v *Vehicle) Width() float64 {
	if v.Class == ClassTruck {
		return 0.055
	}
	return 0.04
}

// Height returns the collision half-extent in longitudinal units.
func (v *Vehicle) Height() float64 {
	if v.Class == ClassTruck {
		return 34
	}
	return 22
}

func (v *Vehicle) beginLaneChange(lane int, targetX float64) {
	v.state = ChangingLanes
	v.plan = &laneChangePlan{targetLane: lane, targetX: targetX}
}

func (v *Vehicle) cancelLaneChange() {
	v.state = Cruising
	v.plan = nil
}

func (v *Vehicle) finishLaneChange() {
	if v.plan != nil {
		v.Lane = v.plan.targetLane
		v.X = v.plan.targetX
	}
	v.state = Cruising
	v.plan = nil
}
