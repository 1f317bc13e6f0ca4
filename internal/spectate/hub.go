// Package spectate streams live game state to websocket spectators.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/surfjump/internal/core"
)

// Message types sent to spectators.
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
)

// Message is the JSON envelope of every frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Config holds hub settings.
type Config struct {
	Buffer       int           // queued frames per spectator
	WriteTimeout time.Duration // per frame
	Every        int           // publish every Nth snapshot offered to Frame
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Buffer:       16,
		WriteTimeout: 2 * time.Second,
		Every:        2,
	}
}

// Hub fans game frames out to connected spectators. It implements
// http.Handler for the websocket endpoint and receives game events as a
// listener.
type Hub struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uint64]*client
	nextID  uint64
	last    []byte // latest snapshot frame, replayed to new spectators
	frames  uint64
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(cfg Config, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Every < 1 {
		cfg.Every = 1
	}
	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[uint64]*client),
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encodes payload once and queues it for every spectator.
// The latest snapshot is kept for spectators that join later.
func (h *Hub) Broadcast(kind string, payload any) error {
	frame, err := json.Marshal(Message{Type: kind, Payload: payload})
	if err != nil {
		return fmt.Errorf("spectate: encode %s: %w", kind, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if kind == TypeSnapshot {
		h.last = frame
	}
	for _, c := range h.clients {
		c.send(frame)
	}
	return nil
}

// Frame offers a snapshot; only every Nth one is published.
func (h *Hub) Frame(snapshot any) {
	h.mu.Lock()
	h.frames++
	publish := (h.frames-1)%uint64(h.cfg.Every) == 0
	h.mu.Unlock()

	if !publish {
		return
	}
	if err := h.Broadcast(TypeSnapshot, snapshot); err != nil {
		h.logger.Error("snapshot not published", "error", err)
	}
}

// OnEvent forwards a game event to spectators.
func (h *Hub) OnEvent(ev core.Event) {
	if err := h.Broadcast(TypeEvent, ev); err != nil {
		h.logger.Error("event not published", "error", err)
	}
}

// ServeHTTP upgrades the request and streams frames until the spectator leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	h.mu.Lock()
	h.nextID++
	c := newClient(h.nextID, conn, h.cfg.Buffer)
	h.clients[c.id] = c
	if h.last != nil {
		c.send(h.last)
	}
	h.mu.Unlock()
	h.logger.Info("spectator connected", "id", c.id, "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	c.close()
	h.logger.Info("spectator left", "id", c.id)
}

// readLoop drains incoming frames so control messages are processed.
// Spectators have nothing to say; the loop ends when the connection does.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for {
		select {
		case frame := <-c.frames:
			if h.cfg.WriteTimeout > 0 {
				_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Debug("spectator write failed", "id", c.id, "error", err)
				return
			}
		case <-c.done:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
	}
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

// ListenAndServe serves the hub on addr at /ws until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "surfjump spectator endpoint: connect a websocket to /ws (%d watching)\n", h.Clients())
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: serve %s: %w", addr, err)
	}
}
