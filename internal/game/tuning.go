/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

const (
	MaxTilt = 20.0

	// Tray angles beyond SpillAngle spill water; below BalancedAngle the
	// tray moves forward.
	SpillAngle    = 15.0
	BalancedAngle = 10.0

	SpillPenalty    = 2.0
	ObstaclePenalty = 5.0
	Advance         = 0.3

	StartWater    = 100.0
	StartPosition = 10.0
	FinishLine    = 90.0

	// DecileWidth is the progress distance between obstacles.
	DecileWidth = 10.0
)
