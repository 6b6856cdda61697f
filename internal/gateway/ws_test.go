package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/wobbly/internal/game"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func write(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	frame, err := Encode(typ, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
}

func read(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := Decode(data)
	require.NoError(t, err)
	return env
}

func TestWebsocketRoundTrip(t *testing.T) {
	g := newTestGateway("AB3C")
	g.pingInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(g.ServeWS))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	host := dial(t, url)
	guest := dial(t, url)

	write(t, host, MsgCreateRoom, nil)
	env := read(t, host)
	require.Equal(t, MsgRoomCreated, env.Type)
	assert.Equal(t, RoomAssigned{Code: "AB3C", Slot: 1}, payloadOf[RoomAssigned](t, env))

	write(t, guest, MsgJoinRoom, "AB3C")
	assert.Equal(t, MsgRoomJoined, read(t, guest).Type)
	assert.Equal(t, MsgBothPlayersReady, read(t, guest).Type)
	assert.Equal(t, MsgBothPlayersReady, read(t, host).Type)

	write(t, host, MsgStartGame, "AB3C")
	assert.Equal(t, MsgGameStarted, read(t, host).Type)
	assert.Equal(t, MsgGameStarted, read(t, guest).Type)

	write(t, guest, MsgTilt, map[string]any{"code": "AB3C", "value": 4})
	env = read(t, host)
	require.Equal(t, MsgUpdateGame, env.Type)
	assert.Equal(t, 4.0, payloadOf[game.State](t, env).TiltRight)
	assert.Equal(t, MsgUpdateGame, read(t, guest).Type)

	require.NoError(t, guest.Close())
	assert.Equal(t, MsgPlayerLeft, read(t, host).Type)

	assert.Eventually(t, func() bool {
		stats, err := g.Stats(ctx)
		return err == nil && stats == Stats{Sessions: 0, Clients: 1}
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWebsocketShutdown(t *testing.T) {
	g := newTestGateway("AB3C")

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(http.HandlerFunc(g.ServeWS))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn := dial(t, url)
	write(t, conn, MsgCreateRoom, nil)
	require.Equal(t, MsgRoomCreated, read(t, conn).Type)

	cancel()
	<-stopped

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
