/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package gateway accepts websocket players, routes their events to the
// session registry and the game rules, and fans the results back out.
//
// All state changes happen on the single goroutine running Gateway.Run, so
// rooms never see interleaved updates.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Seednode/wobbly/internal/session"
)

const inboxSize = 256

type Options struct {
	// SendBuffer is the number of frames queued per client before the client
	// is considered too slow and dropped.
	SendBuffer int
	// PingInterval of zero disables keepalive pings and read deadlines.
	PingInterval time.Duration
	// CheckOrigin defaults to accepting every origin.
	CheckOrigin func(r *http.Request) bool
}

// Stats is a point-in-time view of the gateway.
type Stats struct {
	Sessions int
	Clients  int
}

type Gateway struct {
	log      *zap.Logger
	registry *session.Registry

	clients map[*Client]struct{}
	groups  map[string]map[*Client]struct{}

	inbox chan any
	done  chan struct{}

	sendBuffer   int
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

type connect struct {
	client *Client
}

type leave struct {
	client *Client
}

type message struct {
	client *Client
	env    Envelope
}

type statsRequest struct {
	reply chan<- Stats
}

func New(registry *session.Registry, log *zap.Logger, opts Options) *Gateway {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 16
	}

	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool {
			return true
		}
	}

	return &Gateway{
		log:          log,
		registry:     registry,
		clients:      make(map[*Client]struct{}),
		groups:       make(map[string]map[*Client]struct{}),
		inbox:        make(chan any, inboxSize),
		done:         make(chan struct{}),
		sendBuffer:   opts.SendBuffer,
		pingInterval: opts.PingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Run processes events until ctx is cancelled, then disconnects every
// client. It must be called exactly once.
func (g *Gateway) Run(ctx context.Context) {
	defer close(g.done)

	for {
		select {
		case <-ctx.Done():
			for c := range g.clients {
				c.shut()
			}
			g.log.Info("gateway stopped", zap.Int("clients", len(g.clients)), zap.Int("sessions", g.registry.Len()))

			return

		case ev := <-g.inbox:
			g.dispatch(ev)
		}
	}
}

// enqueue hands an event to the loop. It reports false once the gateway has
// stopped.
func (g *Gateway) enqueue(ev any) bool {
	select {
	case g.inbox <- ev:
		return true
	case <-g.done:
		return false
	}
}

// dispatch handles one event. A panic is contained to the event that caused it.
func (g *Gateway) dispatch(ev any) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("recovered from panic while handling event",
				zap.Any("panic", r),
				zap.String("event", fmt.Sprintf("%T", ev)),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()

	switch e := ev.(type) {
	case connect:
		g.clients[e.client] = struct{}{}
		g.log.Debug("client connected", zap.String("client", e.client.id))

	case leave:
		g.handleLeave(e.client)

	case message:
		if _, ok := g.clients[e.client]; !ok {
			return
		}
		g.handleMessage(e.client, e.env)

	case statsRequest:
		e.reply <- Stats{
			Sessions: g.registry.Len(),
			Clients:  len(g.clients),
		}
	}
}

// Stats asks the loop for current counts.
func (g *Gateway) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)

	select {
	case g.inbox <- statsRequest{reply: reply}:
	case <-g.done:
		return Stats{}, context.Canceled
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}

	select {
	case s := <-reply:
		return s, nil
	case <-g.done:
		return Stats{}, context.Canceled
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// ServeWS upgrades the request and runs the client until it disconnects.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	select {
	case <-g.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)

		return
	default:
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("upgrading connection", zap.String("remote", r.RemoteAddr), zap.Error(err))

		return
	}

	c := newClient(uuid.NewString(), conn, g.sendBuffer)

	if !g.enqueue(connect{client: c}) {
		_ = conn.Close()

		return
	}

	var pongWait time.Duration
	if g.pingInterval > 0 {
		pongWait = 2*g.pingInterval + writeWait
	}

	go c.writePump(g.pingInterval)
	c.readPump(g, pongWait)
}
