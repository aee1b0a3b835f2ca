package uibridge

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/game"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/loop"
)

type recorder struct {
	mu       sync.Mutex
	commands []loop.Command
	full     bool
}

func (r *recorder) Submit(c loop.Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return false
	}
	r.commands = append(r.commands, c)
	return true
}

func (r *recorder) take() []loop.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.commands
	r.commands = nil
	return out
}

func newBridge(t *testing.T) (*Bridge, *recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{}
	b := New(rec, logging.Nop())
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, rec, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func startedWorld(t *testing.T) *game.World {
	t.Helper()
	w := game.NewWorld(game.Options{Seed: 5}, logging.Nop(), input.NewControlManager(), collision.NewSystem())
	t.Cleanup(w.Close)
	require.NoError(t, w.Start())
	return w
}

func TestIndexPage(t *testing.T) {
	_, _, srv := newBridge(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<title>Spiritwatch</title>")

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSnapshotEndpoint(t *testing.T) {
	b, _, srv := newBridge(t)

	resp, err := http.Get(srv.URL + "/snapshot")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	b.Publish(startedWorld(t).Snapshot())

	resp, err = http.Get(srv.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	var m Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, TypeSnapshot, m.Type)
	require.NotNil(t, m.Data)
	assert.Equal(t, "Tutorial", m.Data.Level)
}

func TestPublishIsThrottled(t *testing.T) {
	b, _, _ := newBridge(t)
	b.Publish(game.Snapshot{Frame: 1, Level: "Tutorial"})
	assert.Nil(t, b.latest)

	b.Publish(game.Snapshot{Frame: 1, Report: &game.MissionReport{Level: "Tutorial"}})
	assert.NotNil(t, b.latest, "reports are always sent")
}

func TestClientGetsLatestAndUpdates(t *testing.T) {
	b, _, srv := newBridge(t)
	b.Publish(game.Snapshot{Frame: 0, Level: "Tutorial"})

	conn := dial(t, srv)
	var m Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "Tutorial", m.Data.Level)

	require.Eventually(t, func() bool { return b.Clients() == 1 }, time.Second, 5*time.Millisecond)
	b.Publish(game.Snapshot{Frame: publishEvery, Level: "Level 1"})
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, uint64(publishEvery), m.Data.Frame)
	assert.Equal(t, "Level 1", m.Data.Level)
}

func TestMessagesBecomeCommands(t *testing.T) {
	_, rec, srv := newBridge(t)
	w := startedWorld(t)
	w.Select(w.Ship())

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(Message{Type: TypeAction, Index: 0}))
	require.NoError(t, conn.WriteJSON(Message{Type: "bogus"}))

	var cmds []loop.Command
	require.Eventually(t, func() bool {
		cmds = append(cmds, rec.take()...)
		return len(cmds) >= 1
	}, time.Second, 5*time.Millisecond)
	require.Len(t, cmds, 1)

	crew := w.Ship().Crew
	cmds[0](w)
	assert.Equal(t, crew-1, w.Ship().Crew, "first ship action deploys")
}

func TestContinueCommand(t *testing.T) {
	w := startedWorld(t)
	w.Levels().Transition()

	cmd, ok := command(Message{Type: TypeContinue})
	require.True(t, ok)
	cmd(w)

	for range 200 {
		w.Step(1.0/60, nil)
	}
	assert.Equal(t, 1, w.Levels().Index())
	assert.False(t, w.Levels().InTransition())
}

func TestDisconnectRemovesClient(t *testing.T) {
	b, _, srv := newBridge(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return b.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return b.Clients() == 0 }, time.Second, 5*time.Millisecond)
}
