package server

import (
	"encoding/json"
	"sync"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
)

// Hub tracks live planning sessions and fans out server-wide events
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	closed   bool

	metrics *metrics.APIMetricsCollector
	logger  common.Logger
}

// NewHub creates an empty hub. collector may be nil.
func NewHub(collector *metrics.APIMetricsCollector, logger common.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		metrics:  collector,
		logger:   logger,
	}
}

// Register adds s to the hub. It reports false once the hub is closed.
func (h *Hub) Register(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s] = struct{}{}
	if h.metrics != nil {
		h.metrics.SessionOpened()
	}
	h.logger.Log("DEBUG", "Session opened", map[string]interface{}{
		"session": s.ID(),
	})
	return true
}

// Unregister removes s and closes its outbound queue
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(s)
}

// remove requires h.mu
func (h *Hub) remove(s *Session) {
	if _, ok := h.sessions[s]; !ok {
		return
	}
	delete(h.sessions, s)
	s.closeSend()
	if h.metrics != nil {
		h.metrics.SessionClosed()
	}
	h.logger.Log("DEBUG", "Session closed", map[string]interface{}{
		"session": s.ID(),
	})
}

// Broadcast queues msg on every session. Sessions whose queue is full are
// dropped.
func (h *Hub) Broadcast(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Log("ERROR", "Failed to encode broadcast", map[string]interface{}{
			"type":  msg.Type,
			"error": err.Error(),
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		if !s.enqueue(data) {
			h.remove(s)
		}
	}
}

// Len returns the number of live sessions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close ends every session and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.sessions {
		h.remove(s)
	}
}
