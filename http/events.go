package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// GET "/events"
//
// handleEvents is a websocket endpoint. The connection is upgraded and every
// change event committed while it is open is fed to the client so open list
// views can refresh without polling. The connection closes when the bus
// closes or the peer goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sub := s.EventBus.Subscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		LogError(r, err)
		return
	}

	timer := time.NewTicker(websocketPingConnections)
	defer timer.Stop()
	defer conn.Close()
	defer sub.Close()
	for {
		select {
		case event, ok := <-sub.C():
			// bus closed, notify peer that the connection is
			// closing.
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			sendBuf, err := json.Marshal(event)
			if err != nil {
				LogError(r, err)
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, sendBuf); err != nil {
				LogError(r, err)
				return
			}

		case <-timer.C:
			conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				LogError(r, err)
				return
			}
		}
	}
}
