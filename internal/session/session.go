/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package session keeps track of two-player rooms and their game state.
package session

import (
	"slices"

	"github.com/Seednode/wobbly/internal/game"
)

// MaxParticipants is the number of players a room holds.
const MaxParticipants = 2

// Session is one room. Participants are connection ids; the first one
// controls the left side of the tray, the second the right.
type Session struct {
	Code         string
	Participants []string
	State        game.State
}

func newSession(code, participant string) *Session {
	return &Session{
		Code:         code,
		Participants: []string{participant},
		State:        game.NewState(),
	}
}

// Full reports whether no more participants may join.
func (s *Session) Full() bool {
	return len(s.Participants) >= MaxParticipants
}

// Slot returns the 1-based slot of participant, or 0 if they are not a member.
func (s *Session) Slot(participant string) int {
	return slices.Index(s.Participants, participant) + 1
}

// Has reports whether participant is a member.
func (s *Session) Has(participant string) bool {
	return s.Slot(participant) != 0
}
