package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	feedBuffer   = 16
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
	pongTimeout  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed fans finished runs out to websocket subscribers. Slow subscribers
// drop messages instead of blocking Publish.
type Feed struct {
	mu      sync.Mutex
	clients map[chan runDTO]struct{}
	closed  bool
	logger  *log.Logger
}

// NewFeed creates an empty feed.
func NewFeed(logger *log.Logger) *Feed {
	return &Feed{
		clients: make(map[chan runDTO]struct{}),
		logger:  logger,
	}
}

func (f *Feed) subscribe() (chan runDTO, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, false
	}
	ch := make(chan runDTO, feedBuffer)
	f.clients[ch] = struct{}{}
	return ch, true
}

func (f *Feed) unsubscribe(ch chan runDTO) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[ch]; ok {
		delete(f.clients, ch)
		close(ch)
	}
}

// Subscribers returns the number of connected clients.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Publish delivers run to every subscriber with room in its buffer.
func (f *Feed) Publish(run runDTO) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.clients {
		select {
		case ch <- run:
		default:
			f.logger.Debug("live feed subscriber lagging, dropping run", "id", run.ID)
		}
	}
}

// Close disconnects every subscriber and rejects new ones.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for ch := range f.clients {
		delete(f.clients, ch)
		close(ch)
	}
}

// ServeHTTP upgrades the request and streams runs as JSON messages.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("live feed upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ch, ok := f.subscribe()
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		return
	}
	defer f.unsubscribe(ch)
	f.logger.Debug("live feed subscriber connected", "remote", r.RemoteAddr)

	// Reader: handles pongs and notices the client going away.
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case run, ok := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := conn.WriteJSON(run); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
