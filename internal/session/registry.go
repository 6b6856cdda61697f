/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

import (
	"errors"
	"fmt"

	"github.com/Seednode/wobbly/internal/game"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrCodeSpaceExhausted = errors.New("no free room code")
)

const defaultCodeAttempts = 64

// Registry maps room codes to sessions.
//
// A Registry is not safe for concurrent use. The gateway owns it and
// serializes every call through its dispatch loop.
type Registry struct {
	sessions map[string]*Session
	codes    CodeSource
	attempts int
}

type Option func(*Registry)

// WithCodeSource replaces the random code generator.
func WithCodeSource(src CodeSource) Option {
	return func(r *Registry) {
		r.codes = src
	}
}

// WithCodeAttempts bounds how many colliding codes Create tolerates.
func WithCodeAttempts(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		codes:    GenerateCode,
		attempts: defaultCodeAttempts,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create opens a new room with participant in slot 1.
func (r *Registry) Create(participant string) (string, int, error) {
	code, err := r.freeCode()
	if err != nil {
		return "", 0, err
	}

	r.sessions[code] = newSession(code, participant)

	return code, game.SlotLeft, nil
}

func (r *Registry) freeCode() (string, error) {
	for attempt := 0; attempt < r.attempts; attempt++ {
		code, err := r.codes()
		if err != nil {
			return "", fmt.Errorf("generating room code: %w", err)
		}

		if _, taken := r.sessions[code]; !taken {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

// Join adds participant to the room as slot 2.
func (r *Registry) Join(code, participant string) (int, error) {
	s, ok := r.sessions[code]
	if !ok {
		return 0, ErrRoomNotFound
	}

	if s.Full() {
		return 0, ErrRoomFull
	}

	s.Participants = append(s.Participants, participant)

	return game.SlotRight, nil
}

func (r *Registry) Get(code string) (*Session, bool) {
	s, ok := r.sessions[code]

	return s, ok
}

// RemoveByParticipant deletes the first room participant belongs to and
// returns its code.
func (r *Registry) RemoveByParticipant(participant string) (string, bool) {
	for code, s := range r.sessions {
		if s.Has(participant) {
			delete(r.sessions, code)

			return code, true
		}
	}

	return "", false
}

// Start begins (or restarts) the run in a full room. Rooms that are missing
// or still waiting for a second player are left alone.
func (r *Registry) Start(code string) (*Session, bool) {
	s, ok := r.sessions[code]
	if !ok || len(s.Participants) != MaxParticipants {
		return nil, false
	}

	s.State = game.Start(s.State)

	return s, true
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	return len(r.sessions)
}
