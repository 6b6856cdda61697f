/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gateway

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Seednode/wobbly/internal/game"
	"github.com/Seednode/wobbly/internal/session"
)

func (g *Gateway) handleMessage(c *Client, env Envelope) {
	switch env.Type {
	case MsgCreateRoom:
		g.handleCreate(c)
	case MsgJoinRoom:
		g.handleJoin(c, env)
	case MsgStartGame:
		g.handleStart(c, env)
	case MsgTilt:
		g.handleTilt(c, env)
	case MsgObstacleHit:
		g.handleObstacleHit(c, env)
	default:
		g.ignore(c, env, "unknown type")
	}
}

// ignore drops a message that does not fit the client's current state.
func (g *Gateway) ignore(c *Client, env Envelope, reason string) {
	g.log.Debug("ignoring message",
		zap.String("client", c.id),
		zap.String("code", c.code),
		zap.Int("slot", c.slot),
		zap.String("type", env.Type),
		zap.String("reason", reason),
	)
}

func (g *Gateway) handleCreate(c *Client) {
	if c.code != "" {
		g.ignore(c, Envelope{Type: MsgCreateRoom}, "already in a room")

		return
	}

	code, slot, err := g.registry.Create(c.id)
	if err != nil {
		g.log.Warn("creating room", zap.String("client", c.id), zap.Error(err))
		g.send(c, MsgError, textCreateFailed)

		return
	}

	g.addToGroup(code, c, slot)
	g.send(c, MsgRoomCreated, RoomAssigned{Code: code, Slot: slot})

	g.log.Info("room created", zap.String("code", code), zap.String("client", c.id))
}

func (g *Gateway) handleJoin(c *Client, env Envelope) {
	if c.code != "" {
		g.ignore(c, env, "already in a room")

		return
	}

	code, err := decodeCode(env)
	if err != nil {
		g.ignore(c, env, err.Error())

		return
	}

	slot, err := g.registry.Join(code, c.id)
	switch {
	case errors.Is(err, session.ErrRoomNotFound):
		g.send(c, MsgError, textRoomNotFound)

		return
	case errors.Is(err, session.ErrRoomFull):
		g.send(c, MsgError, textRoomFull)

		return
	case err != nil:
		g.log.Warn("joining room", zap.String("code", code), zap.Error(err))

		return
	}

	g.addToGroup(code, c, slot)
	g.send(c, MsgRoomJoined, RoomAssigned{Code: code, Slot: slot})
	g.broadcast(code, MsgBothPlayersReady, nil)

	g.log.Info("player joined room", zap.String("code", code), zap.String("client", c.id))
}

// member resolves the room named in env, provided c belongs to it.
func (g *Gateway) member(c *Client, env Envelope, code string) (*session.Session, bool) {
	s, ok := g.registry.Get(code)
	if !ok {
		g.ignore(c, env, "no such room")

		return nil, false
	}

	if !s.Has(c.id) {
		g.ignore(c, env, "not a member")

		return nil, false
	}

	return s, true
}

func (g *Gateway) handleStart(c *Client, env Envelope) {
	code, err := decodeCode(env)
	if err != nil {
		g.ignore(c, env, err.Error())

		return
	}

	if _, ok := g.member(c, env, code); !ok {
		return
	}

	s, ok := g.registry.Start(code)
	if !ok {
		g.ignore(c, env, "room not full")

		return
	}

	g.broadcast(code, MsgGameStarted, s.State)

	g.log.Info("game started", zap.String("code", code))
}

func (g *Gateway) handleTilt(c *Client, env Envelope) {
	req, err := DecodePayload[tiltRequest](env)
	if err != nil || req.Value == nil {
		g.ignore(c, env, "bad tilt payload")

		return
	}

	s, ok := g.member(c, env, req.Code)
	if !ok {
		return
	}

	next, out := game.ApplyTilt(s.State, s.Slot(c.id), game.ClampTilt(*req.Value))
	s.State = next

	switch out.Kind {
	case game.Ignored:
		g.ignore(c, env, "not playing")
	case game.Updated:
		g.broadcast(s.Code, MsgUpdateGame, s.State)
	default:
		g.finish(s, out)
	}
}

// handleObstacleHit only reports terminal results; the next tilt carries the
// lowered water level to clients.
func (g *Gateway) handleObstacleHit(c *Client, env Envelope) {
	code, err := decodeCode(env)
	if err != nil {
		g.ignore(c, env, err.Error())

		return
	}

	s, ok := g.member(c, env, code)
	if !ok {
		return
	}

	next, out := game.ApplyObstacleHit(s.State)
	s.State = next

	switch {
	case out.Kind == game.Ignored:
		g.ignore(c, env, "not playing")
	case out.Terminal():
		g.finish(s, out)
	}
}

// finish announces a terminal outcome. The room stays registered until one of
// its players disconnects.
func (g *Gateway) finish(s *session.Session, out game.Outcome) {
	g.broadcast(s.Code, MsgGameOver, newGameOver(s.State))

	g.log.Info("game over",
		zap.String("code", s.Code),
		zap.Stringer("outcome", out.Kind),
		zap.Float64("water", s.State.WaterLevel),
		zap.Int("obstacles", s.State.ObstaclesDodged),
	)
}

func (g *Gateway) handleLeave(c *Client) {
	if _, ok := g.clients[c]; !ok {
		return
	}

	delete(g.clients, c)
	c.shut()

	g.log.Debug("client disconnected", zap.String("client", c.id))

	code, ok := g.registry.RemoveByParticipant(c.id)
	if !ok {
		return
	}

	group := g.groups[code]
	delete(g.groups, code)
	delete(group, c)

	g.sendGroup(group, MsgPlayerLeft, nil)
	for member := range group {
		member.unassign()
	}

	g.log.Info("room deleted", zap.String("code", code), zap.String("client", c.id))
}
