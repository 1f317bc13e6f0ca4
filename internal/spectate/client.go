package spectate

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client is one connected spectator. Frames are queued on a buffered channel
// and written by a dedicated goroutine.
type client struct {
	id       uint64
	conn     *websocket.Conn
	frames   chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func newClient(id uint64, conn *websocket.Conn, buffer int) *client {
	if buffer < 1 {
		buffer = 16
	}
	return &client{
		id:     id,
		conn:   conn,
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// send queues a frame without blocking. When the buffer is full the oldest
// frame is dropped; a slow spectator only ever misses history.
func (c *client) send(frame []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.frames <- frame:
	default:
		select {
		case <-c.frames:
		default:
		}
		select {
		case c.frames <- frame:
		default:
		}
	}
}

// close marks the client as done. Safe to call multiple times.
func (c *client) close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
