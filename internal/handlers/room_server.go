// internal/handlers/room_server.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/spyfall-io/spyfall/internal/game"
	"github.com/spyfall-io/spyfall/internal/metrics"
)

// RoomServer holds the room store plus the logger and metrics shared by all
// room handlers. One instance serves the whole process; rooms themselves are
// fully independent of each other.
type RoomServer struct {
	Rooms   *game.RoomStore
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
}

// NewRoomServer builds a RoomServer with an empty store.
func NewRoomServer(logger *logrus.Logger, m *metrics.Metrics) *RoomServer {
	return &RoomServer{
		Rooms:   game.NewRoomStore(),
		Logger:  logger,
		Metrics: m,
	}
}

// roomForCode returns the room for a code, creating it lazily on first use
// and wiring its OnEmpty hook to remove it from the store again.
func (rs *RoomServer) roomForCode(code string) *game.Room {
	room := rs.Rooms.GetOrCreate(code, func(code string) *game.Room {
		room := game.NewRoom(code)
		room.OnEmpty = func(code string) {
			rs.Rooms.Delete(code)
			rs.Metrics.SetActiveRooms(rs.Rooms.Count())
			rs.Logger.Infof("room %s released (empty)", code)
		}
		rs.Metrics.IncRoomsCreated()
		return room
	})
	rs.Metrics.SetActiveRooms(rs.Rooms.Count())
	return room
}

// CreateRoomHandler hands out a fresh, unused room code. The room itself is
// created lazily when the first player connects and joins.
func (rs *RoomServer) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := NewRoomCode()
	for {
		if _, taken := rs.Rooms.Get(code); !taken {
			break
		}
		code = NewRoomCode()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"code": code})
}

// roomSummary is one row of the room listing.
type roomSummary struct {
	Code    string     `json:"code"`
	Phase   game.Phase `json:"phase"`
	Players int        `json:"players"`
}

// ListRoomsHandler reports the active rooms with their phase and headcount.
func (rs *RoomServer) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rooms := rs.Rooms.Rooms()
	summaries := make([]roomSummary, 0, len(rooms))
	for code, room := range rooms {
		summaries = append(summaries, roomSummary{
			Code:    code,
			Phase:   room.Phase(),
			Players: room.PlayerCount(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
