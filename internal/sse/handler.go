package sse

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/MineClicker_Go/internal/logger"
)

// IdentityFunc extracts the authenticated account identity from a request
type IdentityFunc func(r *http.Request) string

// Handler returns an HTTP handler for SSE connections. Requests without an
// identity are rejected.
func Handler(hub *Hub, identityOf IdentityFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		identity := identityOf(r)
		if identity == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var eventTypes []string
		if filterParam := r.URL.Query().Get("types"); filterParam != "" {
			eventTypes = strings.Split(filterParam, ",")
		}

		client := hub.Register(identity, eventTypes)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"identity", identity,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID, "identity", identity)
		}()

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !write(r.Context(), w, flusher, connected) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.EventChannel:
				if !ok {
					// Hub is shutting down
					return
				}
				if !write(ctx, w, flusher, evt) {
					return
				}

			case <-ticker.C:
				if !write(ctx, w, flusher, Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func write(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, evt Event) bool {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgWriteError, "error", err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
