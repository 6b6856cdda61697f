/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gateway

import "go.uber.org/zap"

func (g *Gateway) addToGroup(code string, c *Client, slot int) {
	group, ok := g.groups[code]
	if !ok {
		group = make(map[*Client]struct{})
		g.groups[code] = group
	}

	group[c] = struct{}{}
	c.assign(code, slot)
}

// send queues a frame for one client.
func (g *Gateway) send(c *Client, t string, payload any) {
	frame, err := Encode(t, payload)
	if err != nil {
		g.log.Error("encoding frame", zap.String("type", t), zap.Error(err))

		return
	}

	g.push(c, frame)
}

func (g *Gateway) broadcast(code string, t string, payload any) {
	g.sendGroup(g.groups[code], t, payload)
}

func (g *Gateway) sendGroup(group map[*Client]struct{}, t string, payload any) {
	if len(group) == 0 {
		return
	}

	frame, err := Encode(t, payload)
	if err != nil {
		g.log.Error("encoding frame", zap.String("type", t), zap.Error(err))

		return
	}

	for c := range group {
		g.push(c, frame)
	}
}

// push never blocks the loop. A client that cannot keep up is shut, and its
// read pump reports the disconnect.
func (g *Gateway) push(c *Client, frame []byte) {
	if c.closed {
		return
	}

	select {
	case c.send <- frame:
	default:
		g.log.Warn("client too slow, dropping", zap.String("client", c.id), zap.String("code", c.code))
		c.shut()
	}
}
