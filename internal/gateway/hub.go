package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/cayenne/internal/logging"
	"github.com/muurk/cayenne/internal/metrics"
)

const (
	// Time allowed to write a message to a subscriber.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from a subscriber.
	pongWait = 60 * time.Second
	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Per-subscriber send queue. A subscriber that falls this far
	// behind is dropped.
	sendQueueSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans decoded payload events out to WebSocket stream subscribers.
type Hub struct {
	metrics    *metrics.Metrics
	register   chan *subscriber
	unregister chan *subscriber
	events     chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

func newHub(m *metrics.Metrics) *Hub {
	return &Hub{
		metrics:    m,
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		events:     make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// run owns the subscriber set. All membership changes and broadcasts go
// through its channels, so no lock is needed.
func (h *Hub) run() {
	subscribers := make(map[*subscriber]bool)

	for {
		select {
		case sub := <-h.register:
			subscribers[sub] = true
			h.metrics.SubscriberConnected()

		case sub := <-h.unregister:
			if subscribers[sub] {
				delete(subscribers, sub)
				close(sub.send)
				h.metrics.SubscriberDisconnected()
			}

		case msg := <-h.events:
			for sub := range subscribers {
				select {
				case sub.send <- msg:
				default:
					// Slow subscriber, drop it.
					delete(subscribers, sub)
					close(sub.send)
					h.metrics.SubscriberDisconnected()
					logging.LogConnection(sub.conn.RemoteAddr().String(), "stream_dropped_slow")
				}
			}

		case <-h.done:
			for sub := range subscribers {
				close(sub.send)
			}
			return
		}
	}
}

// broadcast queues a decoded payload event for delivery to every
// subscriber. Events are dropped when the hub queue is full or the hub
// is shut down.
func (h *Hub) broadcast(event *StreamEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		logging.Error("Failed to marshal stream event", zap.Error(err))
		return
	}

	select {
	case h.events <- msg:
	case <-h.done:
	default:
	}
}

// subscribe registers an upgraded connection and starts its pumps.
func (h *Hub) subscribe(conn *websocket.Conn) {
	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}

	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go sub.writePump()
	go sub.readPump(h)
}

// writePump forwards queued events to the connection and keeps it alive
// with pings. One writer per connection, as the websocket package
// requires.
func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards subscriber messages and detects disconnects.
func (s *subscriber) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- s:
		case <-h.done:
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// close stops the run loop and disconnects every subscriber.
func (h *Hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}
