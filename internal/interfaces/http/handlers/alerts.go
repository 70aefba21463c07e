package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	httpContracts "github.com/sawpanic/cea/internal/http"
)

const (
	streamBuffer = 16
	writeWait    = 5 * time.Second
)

// Alerts handles GET /api/alerts
func (h *Handlers) Alerts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, httpContracts.AlertsResponse{
		Alerts: h.advisor.Alerts().List(),
	})
}

// AlertStream handles GET /api/alerts/stream. Each alert recorded while the socket is
// open is pushed as one JSON text message.
func (h *Handlers) AlertStream(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so nothing recorded after it is missed
	feed, cancel := h.advisor.Alerts().Subscribe(streamBuffer)
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("Alert stream upgrade failed")
		return
	}
	defer conn.Close()

	log.Debug().Str("remote", r.RemoteAddr).Msg("Alert stream opened")

	// Drain client frames so close and ping control messages are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !isWebsocketClose(err) {
					log.Debug().Err(err).Msg("Alert stream read failed")
				}
				return
			}
		}
	}()

	for {
		select {
		case alert, ok := <-feed:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(alert); err != nil {
				log.Debug().Err(err).Msg("Alert stream write failed")
				return
			}
		case <-closed:
			log.Debug().Str("remote", r.RemoteAddr).Msg("Alert stream closed")
			return
		}
	}
}

// isWebsocketClose reports a normal client-initiated close
func isWebsocketClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
