/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package game holds the authoritative tray-balancing rules. Everything here
// is pure: callers pass a State in and get the next State back.
package game

// State is the shared state of one session. JSON names are the wire names
// sent to clients.
type State struct {
	TiltLeft          float64 `json:"tiltLeft"`
	TiltRight         float64 `json:"tiltRight"`
	TrayAngle         float64 `json:"trayAngle"`
	WaterLevel        float64 `json:"waterLevel"`
	Position          float64 `json:"position"`
	IsPlaying         bool    `json:"isPlaying"`
	Winner            bool    `json:"winner"`
	ObstaclesDodged   int     `json:"obstaclesDodged"`
	LastObstacleCheck int     `json:"lastObstacleCheck"`
}

// NewState returns the state of a freshly created, not yet started session.
func NewState() State {
	return State{
		WaterLevel: StartWater,
		Position:   StartPosition,
	}
}

// Start resets the run counters and marks the state as playing. Tilts and
// the previous winner flag are carried over untouched.
func Start(s State) State {
	s.IsPlaying = true
	s.WaterLevel = StartWater
	s.Position = StartPosition
	s.TrayAngle = 0
	s.ObstaclesDodged = 0
	s.LastObstacleCheck = 0

	return s
}
