/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "math"

// Slots identify which side of the tray a participant controls.
const (
	SlotLeft  = 1
	SlotRight = 2
)

type OutcomeKind int

const (
	// Ignored means the state was not playing and nothing changed.
	Ignored OutcomeKind = iota
	Updated
	Won
	Lost
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Updated:
		return "updated"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}

	return "unknown"
}

// Outcome describes what a transition did.
type Outcome struct {
	Kind OutcomeKind
}

// Terminal reports whether the transition ended the run.
func (o Outcome) Terminal() bool {
	return o.Kind == Won || o.Kind == Lost
}

// ClampTilt limits a raw input to [-MaxTilt, MaxTilt]. NaN counts as level.
func ClampTilt(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return math.Max(-MaxTilt, math.Min(MaxTilt, v))
}

// ApplyTilt records one participant's tilt and advances the run by one tick.
// The value is used as given; slots other than SlotLeft and SlotRight record
// nothing but still tick.
func ApplyTilt(s State, slot int, value float64) (State, Outcome) {
	if !s.IsPlaying {
		return s, Outcome{Kind: Ignored}
	}

	switch slot {
	case SlotLeft:
		s.TiltLeft = value
	case SlotRight:
		s.TiltRight = value
	}

	s.TrayAngle = (s.TiltLeft + s.TiltRight) / 2

	tilt := math.Abs(s.TrayAngle)
	balanced := tilt < BalancedAngle

	if tilt > SpillAngle {
		s.WaterLevel = drain(s.WaterLevel, SpillPenalty)
	}

	if balanced {
		s.Position += Advance
	}

	// Crossing a decile while unbalanced forfeits it for good.
	decile := int(math.Floor(s.Position / DecileWidth))
	if decile > s.LastObstacleCheck && balanced {
		s.ObstaclesDodged++
		s.LastObstacleCheck = decile
	}

	// Win is checked before loss.
	if s.Position >= FinishLine {
		s.IsPlaying = false
		s.Winner = true

		return s, Outcome{Kind: Won}
	}

	if s.WaterLevel <= 0 {
		return lose(s)
	}

	return s, Outcome{Kind: Updated}
}

// ApplyObstacleHit charges the obstacle penalty.
func ApplyObstacleHit(s State) (State, Outcome) {
	if !s.IsPlaying {
		return s, Outcome{Kind: Ignored}
	}

	s.WaterLevel = drain(s.WaterLevel, ObstaclePenalty)

	if s.WaterLevel <= 0 {
		return lose(s)
	}

	return s, Outcome{Kind: Updated}
}

func lose(s State) (State, Outcome) {
	s.IsPlaying = false
	s.Winner = false

	return s, Outcome{Kind: Lost}
}

func drain(level, amount float64) float64 {
	return math.Max(0, level-amount)
}
