/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Seednode/wobbly/internal/game"
)

// Inbound message types.
const (
	MsgCreateRoom  = "createRoom"
	MsgJoinRoom    = "joinRoom"
	MsgStartGame   = "startGame"
	MsgTilt        = "tilt"
	MsgObstacleHit = "obstacleHit"
)

// Outbound message types.
const (
	MsgRoomCreated      = "roomCreated"
	MsgRoomJoined       = "roomJoined"
	MsgBothPlayersReady = "bothPlayersReady"
	MsgGameStarted      = "gameStarted"
	MsgUpdateGame       = "updateGame"
	MsgGameOver         = "gameOver"
	MsgPlayerLeft       = "playerLeft"
	MsgError            = "error"
)

// User-facing error texts. Clients display these verbatim.
const (
	textRoomNotFound = "Room not found 😢"
	textRoomFull     = "Room is full 🚫"
	textCreateFailed = "Unable to create room, try again"
)

var errEmptyPayload = errors.New("empty payload")

// Envelope is the frame format in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RoomAssigned answers createRoom and joinRoom.
type RoomAssigned struct {
	Code string `json:"code"`
	Slot int    `json:"slot"`
}

// GameOver carries the score only for a win.
type GameOver struct {
	Winner          bool     `json:"winner"`
	WaterLevel      *float64 `json:"waterLevel,omitempty"`
	ObstaclesDodged *int     `json:"obstaclesDodged,omitempty"`
}

func newGameOver(s game.State) GameOver {
	if !s.Winner {
		return GameOver{}
	}

	water, dodged := s.WaterLevel, s.ObstaclesDodged

	return GameOver{
		Winner:          true,
		WaterLevel:      &water,
		ObstaclesDodged: &dodged,
	}
}

type codeRequest struct {
	Code string `json:"code"`
}

type tiltRequest struct {
	Code  string   `json:"code"`
	Value *float64 `json:"value"`
}

// Encode builds a frame. A nil payload is left out.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encoding envelope without type")
	}

	env := Envelope{Type: t}

	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", t, err)
		}
		env.Payload = pb
	}

	return json.Marshal(env)
}

func Decode(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}

	if env.Type == "" {
		return Envelope{}, errors.New("envelope has no type")
	}

	return env, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Payload) == 0 {
		return out, fmt.Errorf("%s: %w", env.Type, errEmptyPayload)
	}

	err := json.Unmarshal(env.Payload, &out)

	return out, err
}

// decodeCode accepts either a bare JSON string or {"code": "..."}.
func decodeCode(env Envelope) (string, error) {
	if code, err := DecodePayload[string](env); err == nil {
		return code, nil
	}

	req, err := DecodePayload[codeRequest](env)
	if err != nil {
		return "", err
	}

	if req.Code == "" {
		return "", fmt.Errorf("%s: missing code", env.Type)
	}

	return req.Code, nil
}
