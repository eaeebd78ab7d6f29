package ui

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS streams snapshot ticks to the dashboard. One message per refresh;
// slow clients skip ticks instead of backing up the refresher.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	if h.ref == nil {
		writeError(w, http.StatusNotImplemented, "live feed not enabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticks, cancel := h.ref.Subscribe()
	defer cancel()

	// Read pump: we never expect client messages, but reading is the only
	// way to notice a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Send the current snapshot immediately rather than waiting a tick.
	if snap, err := h.ref.Current(); err == nil {
		if err := conn.WriteJSON(newSnapshotView(snap)); err != nil {
			return
		}
	}

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-ticks:
			if !ok {
				return
			}
			if err := conn.WriteJSON(newSnapshotView(snap)); err != nil {
				return
			}
		}
	}
}
