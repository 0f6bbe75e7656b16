// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/spyfall-io/spyfall/internal/game"
)

// RoomWSHandler upgrades the HTTP connection to a websocket bound to one
// room. It establishes the caller's guest identity, attaches the connection
// to the room, and then pumps messages both ways until the socket closes.
// The player only enters the game once a join action arrives on the socket.
func RoomWSHandler(logger *logrus.Logger, rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Path is /rooms/ws/{code}.
		code := strings.ToUpper(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/rooms/ws/"), "/"))
		if !ValidRoomCode(code) {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		// Cookie must be set before the upgrade hijacks the response.
		playerID, err := EnsureGuestSession(w, r)
		if err != nil {
			logger.Warnf("guest session failed for room %s: %v", code, err)
			http.Error(w, "could not establish session", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"spyfall"},
			OriginPatterns: []string{"*"}, // adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error for room %s: %v", code, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "spyfall" {
			c.Close(BadSubprotocolError, "client must speak the spyfall subprotocol")
			return
		}

		room := rs.roomForCode(code)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := &game.PlayerConn{
			PlayerID: playerID,
			OutChan:  make(chan game.Event, 16),
			Cancel:   cancel,
		}
		room.Attach(conn)
		rs.Metrics.IncOnlinePlayers()
		logger.Infof("player %s (%s) connected to room %s", playerID, r.RemoteAddr, code)

		go writePump(ctx, c, conn, logger)

		readPump(ctx, c, room, conn, rs, logger)

		// Read pump exited: the socket is gone. Run the departure policy.
		rs.Metrics.DecOnlinePlayers()
		room.HandleDisconnect(conn)
		logger.Infof("player %s disconnected from room %s", playerID, code)
	}
}

// readPump reads inbound messages and feeds them to the room until the
// connection closes or the context is cancelled. All validation lives in the
// room; the pump only filters out non-text frames.
func readPump(ctx context.Context, c *websocket.Conn, room *game.Room, conn *game.PlayerConn, rs *RoomServer, logger *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("room %s: websocket closed normally for player %s", room.Code, conn.PlayerID)
			} else if !strings.Contains(err.Error(), "context canceled") {
				logger.Warnf("room %s: read error for player %s: %v", room.Code, conn.PlayerID, err)
			}
			return
		}

		if typ != websocket.MessageText {
			continue
		}

		rs.Metrics.IncMessagesReceived()
		room.HandleMessage(conn.PlayerID, data)
	}
}

// writePump drains the connection's outbound channel onto the websocket and
// keeps the connection alive with periodic pings. It exits when the channel
// closes, the context is cancelled, or a write fails; the read pump then
// observes the closure and triggers cleanup.
func writePump(ctx context.Context, c *websocket.Conn, conn *game.PlayerConn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-conn.OutChan:
			if !ok {
				// Channel closed: this connection was replaced or removed.
				c.Close(websocket.StatusGoingAway, "connection superseded")
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal event for player %s: %v", conn.PlayerID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to player %s: %v", conn.PlayerID, err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for player %s, assuming disconnect: %v", conn.PlayerID, err)
				return
			}
		}
	}
}
