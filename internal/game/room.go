// internal/game/room.go
package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MinPlayers is the minimum number of joined players required to start a round.
const MinPlayers = 3

// MaxNameLength caps player names, in runes, after trimming.
const MaxNameLength = 20

// PlayerConn is the room's handle to one player's transport. The room only
// ever pushes events onto OutChan; the websocket write pump on the other end
// owns the actual delivery. Writes never block: a slow or dead consumer gets
// its events dropped rather than stalling the room.
type PlayerConn struct {
	PlayerID uuid.UUID
	OutChan  chan Event
	Cancel   func()
}

// Write pushes an event onto the connection's outbound channel, dropping it
// if the channel is full or no longer being drained.
func (c *PlayerConn) Write(ev Event) {
	select {
	case c.OutChan <- ev:
	default:
		log.Warnf("player %s: outbound channel full or closed, dropping event", c.PlayerID)
	}
}

// Room owns all state for one game instance. Every exported method acquires
// the room mutex for the whole apply-and-broadcast step, so actions are
// applied strictly one at a time and preconditions always see a stable
// snapshot. Rooms are independent; nothing here blocks on another room.
type Room struct {
	Code string

	// OnEmpty is called after the last connection leaves the room, typically
	// wired by the store to delete the room. Set before the room is shared.
	OnEmpty func(code string)

	mu      sync.Mutex
	phase   Phase
	players map[uuid.UUID]*Player
	order   []uuid.UUID // player ids in join order; order[0] is promoted on host departure
	conns   map[uuid.UUID]*PlayerConn

	spyID     uuid.UUID
	location  string
	accuserID uuid.UUID
	accusedID uuid.UUID
	votes     map[uuid.UUID]Vote

	rng *rand.Rand
}

// NewRoom builds an empty lobby-phase room for the given code.
func NewRoom(code string) *Room {
	return &Room{
		Code:    code,
		phase:   PhaseLobby,
		players: make(map[uuid.UUID]*Player),
		conns:   make(map[uuid.UUID]*PlayerConn),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Attach registers a transport handle for a player id. The player does not
// exist in the game until a join action arrives; attaching only makes the
// connection addressable. A second attach for the same id replaces the first
// (e.g. a duplicate tab), closing the stale channel so its write pump exits.
func (r *Room) Attach(conn *PlayerConn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.conns[conn.PlayerID]; ok && old != conn {
		close(old.OutChan)
		if old.Cancel != nil {
			old.Cancel()
		}
	}
	r.conns[conn.PlayerID] = conn
}

// HandleMessage parses one raw inbound message and applies it. Malformed or
// unknown messages are dropped silently; per-action preconditions decide
// between silent drops and one-off error events.
func (r *Room) HandleMessage(playerID uuid.UUID, raw []byte) {
	msg, err := ParseClientMessage(raw)
	if err != nil {
		log.Debugf("room %s: dropping message from %s: %v", r.Code, playerID, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Type {
	case ActionJoin:
		r.handleJoin(playerID, msg.Name)
	case ActionStart:
		r.handleStart(playerID)
	case ActionAccuse:
		r.handleAccuse(playerID, msg.AccusedID)
	case ActionVote:
		r.handleVote(playerID, msg.Guilty)
	case ActionPlayAgain:
		r.handlePlayAgain(playerID)
	}
}

// HandleDisconnect runs the departure policy for the connection's player.
// The conn pointer is compared against the registered one so a stale
// connection instance (already replaced by a reattach) has no effect.
func (r *Room) HandleDisconnect(conn *PlayerConn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.conns[conn.PlayerID]
	if !ok || cur != conn {
		return
	}
	delete(r.conns, conn.PlayerID)

	p, joined := r.players[conn.PlayerID]
	if !joined {
		r.maybeReleaseLocked()
		return
	}

	delete(r.players, conn.PlayerID)
	for i, id := range r.order {
		if id == conn.PlayerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if len(r.players) == 0 {
		r.resetLocked()
		r.maybeReleaseLocked()
		return
	}

	if p.IsHost {
		r.players[r.order[0]].IsHost = true
	}

	if r.phase != PhaseLobby && conn.PlayerID == r.spyID {
		// The spy walked out mid-round. End the round with no accused so
		// clients can tell "spy disconnected" from "spy was caught".
		r.phase = PhaseResults
		r.accusedID = uuid.Nil
		r.broadcastStateLocked()
		return
	}

	if r.phase == PhaseVoting {
		if conn.PlayerID == r.accusedID {
			// The accusation lapses.
			r.phase = PhasePlaying
			r.clearAccusationLocked()
		} else {
			// Keep the ballot's key set equal to the player set, then
			// re-check completion: this departure may have been the only
			// thing the tally was waiting on.
			delete(r.votes, conn.PlayerID)
			r.resolveVotesLocked()
		}
	}

	r.broadcastStateLocked()
}

// PlayerCount reports how many players have joined.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Phase reports the room's current phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// --- Action handlers. All assume the room lock is held. ---

func (r *Room) handleJoin(playerID uuid.UUID, name string) {
	if _, ok := r.players[playerID]; ok {
		return
	}
	if r.phase != PhaseLobby {
		r.sendErrorLocked(playerID, "Game already in progress")
		return
	}

	trimmed := strings.TrimSpace(name)
	if runes := []rune(trimmed); len(runes) > MaxNameLength {
		trimmed = string(runes[:MaxNameLength])
	}
	if trimmed == "" {
		return
	}

	r.players[playerID] = &Player{
		ID:     playerID,
		Name:   trimmed,
		IsHost: len(r.players) == 0,
	}
	r.order = append(r.order, playerID)

	log.Infof("room %s: %s joined (%d players)", r.Code, trimmed, len(r.players))
	r.broadcastStateLocked()
}

func (r *Room) handleStart(playerID uuid.UUID) {
	p, ok := r.players[playerID]
	if !ok || !p.IsHost {
		return
	}
	if r.phase != PhaseLobby {
		return
	}
	if len(r.players) < MinPlayers {
		r.sendErrorLocked(playerID, "Need at least 3 players to start")
		return
	}

	r.spyID = r.order[r.rng.Intn(len(r.order))]
	r.location = Locations[r.rng.Intn(len(Locations))]
	r.phase = PhasePlaying

	log.Infof("room %s: round started with %d players", r.Code, len(r.players))
	r.broadcastStateLocked()
}

func (r *Room) handleAccuse(playerID uuid.UUID, accused string) {
	if r.phase != PhasePlaying {
		return
	}
	if _, ok := r.players[playerID]; !ok {
		return
	}
	accusedID, err := uuid.Parse(accused)
	if err != nil {
		return
	}
	if _, ok := r.players[accusedID]; !ok {
		return
	}
	if accusedID == playerID {
		return
	}

	r.phase = PhaseVoting
	r.accuserID = playerID
	r.accusedID = accusedID

	// Fresh ballot over the current players; the accuser's own vote is
	// automatically guilty.
	r.votes = make(map[uuid.UUID]Vote, len(r.players))
	for id := range r.players {
		if id == playerID {
			r.votes[id] = VoteGuilty
		} else {
			r.votes[id] = VoteUnset
		}
	}

	r.broadcastStateLocked()
}

func (r *Room) handleVote(playerID uuid.UUID, guilty *bool) {
	if guilty == nil {
		return
	}
	if r.phase != PhaseVoting {
		return
	}
	if _, ok := r.votes[playerID]; !ok {
		return
	}

	if *guilty {
		r.votes[playerID] = VoteGuilty
	} else {
		r.votes[playerID] = VoteNotGuilty
	}

	r.resolveVotesLocked()
	r.broadcastStateLocked()
}

func (r *Room) handlePlayAgain(playerID uuid.UUID) {
	p, ok := r.players[playerID]
	if !ok || !p.IsHost {
		return
	}
	if r.phase != PhaseResults {
		return
	}

	r.phase = PhaseLobby
	r.spyID = uuid.Nil
	r.location = ""
	r.clearAccusationLocked()

	r.broadcastStateLocked()
}

// resolveVotesLocked checks whether every ballot entry is cast and, if so,
// tallies. A strict majority of the current player count convicts and moves
// to results with the accusation intact; anything else, including an exact
// half split, acquits and returns to playing with the accusation cleared.
func (r *Room) resolveVotesLocked() {
	if r.phase != PhaseVoting {
		return
	}
	guilty := 0
	for _, v := range r.votes {
		switch v {
		case VoteUnset:
			return
		case VoteGuilty:
			guilty++
		}
	}

	if guilty*2 > len(r.players) {
		r.phase = PhaseResults
		return
	}

	r.phase = PhasePlaying
	r.clearAccusationLocked()
}

func (r *Room) clearAccusationLocked() {
	r.accuserID = uuid.Nil
	r.accusedID = uuid.Nil
	r.votes = nil
}

// resetLocked returns the room to its initial empty form. Connections are
// left alone: a connected visitor who never joined can still join afterwards.
func (r *Room) resetLocked() {
	r.phase = PhaseLobby
	r.players = make(map[uuid.UUID]*Player)
	r.order = nil
	r.spyID = uuid.Nil
	r.location = ""
	r.clearAccusationLocked()
}

// maybeReleaseLocked fires OnEmpty once no players and no connections remain.
func (r *Room) maybeReleaseLocked() {
	if len(r.players) == 0 && len(r.conns) == 0 && r.OnEmpty != nil {
		onEmpty := r.OnEmpty
		r.OnEmpty = nil
		go onEmpty(r.Code)
	}
}

func (r *Room) sendErrorLocked(playerID uuid.UUID, message string) {
	if conn, ok := r.conns[playerID]; ok {
		conn.Write(ErrorEvent{Type: EventError, Message: message})
	}
}

// broadcastStateLocked sends each joined player their personalized snapshot.
// Delivery is fire and forget; one dead connection never blocks the rest.
func (r *Room) broadcastStateLocked() {
	for _, id := range r.order {
		if conn, ok := r.conns[id]; ok {
			conn.Write(r.projectFor(id))
		}
	}
}
