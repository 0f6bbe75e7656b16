// internal/game/room_store_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomStoreGetOrCreate(t *testing.T) {
	s := NewRoomStore()

	created := 0
	factory := func(code string) *Room {
		created++
		return NewRoom(code)
	}

	r1 := s.GetOrCreate("AAAAAA", factory)
	r2 := s.GetOrCreate("AAAAAA", factory)
	require.Same(t, r1, r2, "same code must resolve to the same room")
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, s.Count())

	s.GetOrCreate("BBBBBB", factory)
	assert.Equal(t, 2, s.Count())

	got, ok := s.Get("AAAAAA")
	require.True(t, ok)
	assert.Same(t, r1, got)

	s.Delete("AAAAAA")
	_, ok = s.Get("AAAAAA")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Count())

	// Deleting an unknown code is harmless.
	s.Delete("AAAAAA")

	rooms := s.Rooms()
	assert.Len(t, rooms, 1)
	delete(rooms, "BBBBBB")
	assert.Equal(t, 1, s.Count(), "Rooms returns a copy")
}
