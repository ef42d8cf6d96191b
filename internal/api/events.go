package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sitework-backend/internal/repository/postgres"
)

type EventsHandler struct {
	feed *postgres.ChangeFeed
}

func NewEventsHandler(feed *postgres.ChangeFeed) *EventsHandler {
	return &EventsHandler{feed: feed}
}

// Stream pushes row-change events to the client as server-sent events, so the
// UI can refresh inventory and assignment views without polling.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorMsg(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
