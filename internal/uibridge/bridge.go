// Package uibridge mirrors a running match to browsers over a websocket:
// it pushes UI snapshots and turns button presses into world commands.
package uibridge

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/spiritwatch/internal/game"
	"github.com/tomz197/spiritwatch/internal/loop"
)

//go:embed index.html
var indexPage []byte

const (
	// publishEvery throttles snapshots to every n-th frame.
	publishEvery = 6
	sendBuffer   = 4
	pingPeriod   = 25 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
	readLimit    = 4096
)

// Message types.
const (
	TypeSnapshot = "snapshot"
	TypeAction   = "action"
	TypeItem     = "item"
	TypeContinue = "continue"
)

// Submitter runs commands on the game loop.
type Submitter interface {
	Submit(c loop.Command) bool
}

// Message is the envelope of every websocket frame.
type Message struct {
	Type  string         `json:"type"`
	Index int            `json:"index,omitempty"`
	Data  *game.Snapshot `json:"data,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Bridge fans snapshots out to websocket clients.
type Bridge struct {
	loop     Submitter
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*client
	latest  []byte
}

// New creates a bridge submitting commands to s.
func New(s Submitter, log *zap.Logger) *Bridge {
	return &Bridge{
		loop: s,
		log:  log.Named("uibridge"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The page may be served from another port during development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Publish records s and pushes it to every client. It is a loop.Observer
// and must not block the loop.
func (b *Bridge) Publish(s game.Snapshot) {
	if s.Frame%publishEvery != 0 && s.Report == nil {
		return
	}
	data, err := json.Marshal(Message{Type: TypeSnapshot, Data: &s})
	if err != nil {
		b.log.Error("encode snapshot", zap.Error(err))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = data
	for _, c := range b.clients {
		select {
		case c.send <- data:
		default:
			// Slow reader; it catches up with a later snapshot.
		}
	}
}

// Clients returns the number of connected clients.
func (b *Bridge) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Handler serves the page, the websocket and the latest snapshot.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexPage)
	})
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		data := b.latest
		b.mu.Unlock()
		if data == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
	mux.HandleFunc("/ws", b.handleWebSocket)
	return mux
}

// Serve listens on addr until ctx is done.
func (b *Bridge) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.log.Info("ui bridge listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "ui bridge")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b.closeAll()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (b *Bridge) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("upgrade", zap.Error(err))
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, sendBuffer)}
	b.mu.Lock()
	b.clients[c.id] = c
	if b.latest != nil {
		c.send <- b.latest
	}
	b.mu.Unlock()
	log := b.log.With(zap.String("client", c.id.String()))
	log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	done := make(chan struct{})
	go b.writeLoop(c, done)
	b.readLoop(c, log)

	close(done)
	b.remove(c.id)
	_ = conn.Close()
	log.Info("client disconnected")
}

func (b *Bridge) readLoop(c *client, log *zap.Logger) {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var m Message
		if err := c.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read", zap.Error(err))
			}
			return
		}
		cmd, ok := command(m)
		if !ok {
			log.Debug("unknown message", zap.String("type", m.Type))
			continue
		}
		if !b.loop.Submit(cmd) {
			log.Warn("command queue full", zap.String("type", m.Type))
		}
	}
}

// command maps a client message to a world command.
func command(m Message) (loop.Command, bool) {
	switch m.Type {
	case TypeAction:
		return func(w *game.World) { w.InvokeAction(m.Index) }, true
	case TypeItem:
		return func(w *game.World) { w.InvokeItem(m.Index) }, true
	case TypeContinue:
		return func(w *game.World) { w.Levels().Continue() }, true
	}
	return nil, false
}

func (b *Bridge) writeLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (b *Bridge) remove(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, id)
}

func (b *Bridge) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	}
}
