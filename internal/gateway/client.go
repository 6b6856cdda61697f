/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gateway

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Client is one websocket connection. Everything except the pumps is owned
// by the gateway loop.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	// Empty code means the client is not in a room.
	code string
	slot int

	closed bool
}

func newClient(id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (c *Client) assign(code string, slot int) {
	c.code = code
	c.slot = slot
}

func (c *Client) unassign() {
	c.code = ""
	c.slot = 0
}

// shut closes the send channel once and tears down the connection, which
// ends both pumps.
func (c *Client) shut() {
	if c.closed {
		return
	}
	c.closed = true

	close(c.send)

	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) readPump(g *Gateway, pongWait time.Duration) {
	defer func() {
		g.enqueue(leave{client: c})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if pongWait > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warn("reading from client", zap.String("client", c.id), zap.Error(err))
			}

			return
		}

		env, err := Decode(data)
		if err != nil {
			g.log.Debug("dropping malformed frame", zap.String("client", c.id), zap.Error(err))

			continue
		}

		if !g.enqueue(message{client: c, env: env}) {
			return
		}
	}
}

func (c *Client) writePump(pingInterval time.Duration) {
	var ping <-chan time.Time
	if pingInterval > 0 {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ping:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
