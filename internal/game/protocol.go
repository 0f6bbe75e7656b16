// internal/game/protocol.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Inbound action types. The set is closed; anything else is dropped on parse.
const (
	ActionJoin      = "join"
	ActionStart     = "start"
	ActionAccuse    = "accuse"
	ActionVote      = "vote"
	ActionPlayAgain = "playAgain"
)

// ClientMessage is the envelope for every inbound action. Only the fields
// relevant to the tagged Type are populated; the rest stay zero.
type ClientMessage struct {
	Type string `json:"type"`

	// join
	Name string `json:"name,omitempty"`

	// accuse
	AccusedID string `json:"accusedId,omitempty"`

	// vote. A pointer so a vote with the guilty field missing is
	// distinguishable from an explicit not-guilty vote and can be dropped.
	Guilty *bool `json:"guilty,omitempty"`
}

// ParseClientMessage decodes raw bytes into a ClientMessage, rejecting
// anything that is not valid JSON or does not carry a known action type.
// A non-nil error means the message must be dropped without any response.
func ParseClientMessage(raw []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("malformed client message: %w", err)
	}
	switch msg.Type {
	case ActionJoin, ActionStart, ActionAccuse, ActionVote, ActionPlayAgain:
		return msg, nil
	}
	return ClientMessage{}, fmt.Errorf("unknown action type %q", msg.Type)
}

// EventType tags outbound messages. State snapshots and one-off error
// notices are the only two kinds of traffic the server emits.
type EventType string

const (
	EventState EventType = "state"
	EventError EventType = "error"
)

// Event is implemented by every outbound message variant. The variants form
// a closed set: one state snapshot per phase plus the standalone error event.
type Event interface {
	isEvent()
}

// LobbyState is the lobby-phase snapshot: who is here and who you are.
type LobbyState struct {
	Type    EventType `json:"type"`
	Phase   Phase     `json:"phase"`
	Players []Player  `json:"players"`
	You     string    `json:"you"`
}

// PlayingState is the playing-phase snapshot. Location is nil for the spy,
// who must bluff from the full catalog; everyone else sees the real value.
type PlayingState struct {
	Type         EventType `json:"type"`
	Phase        Phase     `json:"phase"`
	Players      []Player  `json:"players"`
	You          string    `json:"you"`
	Location     *string   `json:"location"`
	AllLocations []string  `json:"allLocations"`
}

// VotingState is the voting-phase snapshot. Every recipient sees the full
// ballot, including how others already voted; there is no secret ballot.
type VotingState struct {
	Type      EventType       `json:"type"`
	Phase     Phase           `json:"phase"`
	Players   []Player        `json:"players"`
	You       string          `json:"you"`
	AccuserID string          `json:"accuserId"`
	AccusedID string          `json:"accusedId"`
	Votes     map[string]Vote `json:"votes"`
}

// ResultsState is the end-of-round snapshot with everything revealed.
// AccusedID is nil when the round ended because the spy disconnected.
type ResultsState struct {
	Type      EventType `json:"type"`
	Phase     Phase     `json:"phase"`
	Players   []Player  `json:"players"`
	You       string    `json:"you"`
	SpyID     string    `json:"spyId"`
	Location  string    `json:"location"`
	AccusedID *string   `json:"accusedId"`
	SpyCaught bool      `json:"spyCaught"`
}

// ErrorEvent is a transient notice delivered only to the player whose action
// was rejected. It is never broadcast.
type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (LobbyState) isEvent()   {}
func (PlayingState) isEvent() {}
func (VotingState) isEvent()  {}
func (ResultsState) isEvent() {}
func (ErrorEvent) isEvent()   {}

// Player is the public view of one participant.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	IsHost bool      `json:"isHost"`
}
