// Package preview serves a read-only browser view of the strip for the
// simulator: frames over a websocket, plus health and diagnostics as JSON.
package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

// Hub fans strip frames out to websocket clients. Publish never blocks the
// caller; frames that arrive faster than Throttle are dropped.
type Hub struct {
	mu      sync.RWMutex
	count   int
	rgb     []byte
	frameID uint64
	start   time.Time
	clients map[*websocket.Conn]bool

	diags  *diagnostics.Collector
	frames chan []byte
	log    zerolog.Logger

	Throttle time.Duration
}

func NewHub(count int, diags *diagnostics.Collector, logger zerolog.Logger) *Hub {
	return &Hub{
		count:    count,
		rgb:      make([]byte, count*3),
		start:    time.Now(),
		clients:  map[*websocket.Conn]bool{},
		diags:    diags,
		frames:   make(chan []byte, 1),
		log:      logger,
		Throttle: 50 * time.Millisecond, // ~20 FPS to the browser
	}
}

// Publish records rgb as the latest frame and queues it for broadcast,
// replacing any frame still waiting.
func (h *Hub) Publish(rgb []byte) {
	buf := append([]byte(nil), rgb...)
	h.mu.Lock()
	h.frameID++
	copy(h.rgb, buf)
	h.mu.Unlock()

	for {
		select {
		case h.frames <- buf:
			return
		default:
		}
		select {
		case <-h.frames:
		default:
		}
	}
}

// Run broadcasts queued frames until ctx is done, then disconnects clients.
func (h *Hub) Run(ctx context.Context) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case buf := <-h.frames:
			if now := time.Now(); now.Sub(last) >= h.Throttle {
				last = now
				h.broadcastFrame(buf)
			}
		}
	}
}

// Handler routes /ws, /diag and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiag)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// topology goes out before the first frame can
	h.mu.Lock()
	h.sendTopology(conn)
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) HandleDiag(w http.ResponseWriter, r *http.Request) {
	var items []diagnostics.Diagnostic
	if h.diags != nil {
		items = h.diags.Snapshot()
	}
	if items == nil {
		items = []diagnostics.Diagnostic{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.start).Seconds(),
		"count":    h.count,
		"clients":  len(h.clients),
		"est_amps": estimateCurrent(h.rgb),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// sendTopology must be called with h.mu held.
func (h *Hub) sendTopology(conn *websocket.Conn) {
	b, _ := json.Marshal(map[string]any{"count": h.count})
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

func (h *Hub) broadcastFrame(rgb []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: h.frameID, RGB: rgb})
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}

// estimateCurrent returns the approximate draw in amps of an rgb frame at
// 20 mA per fully lit channel.
func estimateCurrent(rgb []byte) float64 {
	var sum float64
	for _, v := range rgb {
		sum += float64(v)
	}
	return sum / 255.0 * 0.020
}

// Tee forwards every frame to d and publishes a copy to h.
func (h *Hub) Tee(d led.Driver) led.Driver {
	return &tee{Driver: d, hub: h}
}

type tee struct {
	led.Driver
	hub *Hub
}

func (t *tee) Write(rgb []byte) error {
	if err := t.Driver.Write(rgb); err != nil {
		return err
	}
	t.hub.Publish(rgb)
	return nil
}
