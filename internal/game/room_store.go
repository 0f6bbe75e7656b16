// internal/game/room_store.go
package game

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// RoomStore manages the active rooms in memory, keyed by room code. Rooms
// are created lazily on first use and removed via each room's OnEmpty hook.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRoomStore initializes an empty RoomStore.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for code, constructing it with newRoom if it
// does not exist yet. Construction happens under the store lock so two
// concurrent first-joiners get the same instance.
func (s *RoomStore) GetOrCreate(code string, newRoom func(code string) *Room) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[code]; ok {
		return room
	}
	room := newRoom(code)
	s.rooms[code] = room
	log.Infof("room store: created room %s", code)
	return room
}

// Get returns the room for code, if present.
func (s *RoomStore) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Delete removes a room from the store. Typically called from OnEmpty.
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[code]; ok {
		delete(s.rooms, code)
		log.Infof("room store: deleted room %s", code)
	}
}

// Count reports the number of active rooms.
func (s *RoomStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Rooms returns a copy of the active room map so callers can iterate without
// racing the store.
func (s *RoomStore) Rooms() map[string]*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make(map[string]*Room, len(s.rooms))
	for code, room := range s.rooms {
		rooms[code] = room
	}
	return rooms
}
