// internal/handlers/roomcode.go
package handlers

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"
)

// Room codes are short, shareable identifiers. The alphabet omits characters
// that are easy to misread aloud (0/O, 1/I).
const (
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var roomCodePattern = regexp.MustCompile(fmt.Sprintf("^[%s]{%d}$", roomCodeChars, roomCodeLength))

var codeRng = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}

// NewRoomCode generates a random room code.
func NewRoomCode() string {
	codeRng.Lock()
	defer codeRng.Unlock()

	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeChars[codeRng.Intn(len(roomCodeChars))]
	}
	return string(b)
}

// ValidRoomCode reports whether s is a well-formed room code.
func ValidRoomCode(s string) bool {
	return roomCodePattern.MatchString(s)
}
