package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/sse"
)

const (
	eventConnected = "connected"
	eventStatus    = "status"
	eventPing      = "ping"
)

type StreamHandler interface {
	StatusStream(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	hub          *sse.Hub
	punchService punch.Service
	metrics      *metrics.Metrics
	keepalive    time.Duration
}

func NewStreamHandler(hub *sse.Hub, punchService punch.Service, m *metrics.Metrics) StreamHandler {
	return &streamHandlerImpl{
		hub:          hub,
		punchService: punchService,
		metrics:      m,
		keepalive:    30 * time.Second,
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// StatusStream pushes the user's punches as they are recorded, each followed
// by the recomputed status.
func (h *streamHandlerImpl) StatusStream(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	status, err := h.punchService.Status(r.Context(), u.ID)
	if err != nil {
		slog.Error("StatusStream status error", "user_id", u.ID, "error", err)
		http.Error(w, "Failed to load status", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(u.ID)
	defer cleanup()
	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	if err := writeEvent(w, flusher, eventConnected, status); err != nil {
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, flusher, event.Event, event.Data); err != nil {
				return
			}
			status, err := h.punchService.Status(r.Context(), u.ID)
			if err != nil {
				slog.Error("StatusStream status error", "user_id", u.ID, "error", err)
				continue
			}
			if err := writeEvent(w, flusher, eventStatus, status); err != nil {
				return
			}

		case <-keepalive.C:
			if err := writeEvent(w, flusher, eventPing, map[string]int64{"timestamp": time.Now().Unix()}); err != nil {
				return
			}

		case <-r.Context().Done():
			return
		}
	}
}
