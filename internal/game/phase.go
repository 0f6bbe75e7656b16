// internal/game/phase.go
package game

// Phase is the room's current stage in the round cycle.
// The cycle is lobby -> playing -> voting -> playing (failed accusation)
// or voting -> results -> lobby (play again). There is no terminal phase.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseVoting  Phase = "voting"
	PhaseResults Phase = "results"
)
