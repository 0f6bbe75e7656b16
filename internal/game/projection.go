// internal/game/projection.go
package game

import "github.com/google/uuid"

// projectFor computes the personalized snapshot one player is permitted to
// see for the current phase. It is a pure read of room state: no mutation,
// no delivery. The caller must hold the room lock.
//
// The per-phase contract:
//   - lobby: player list and your own id.
//   - playing: the location, except the spy gets nil and must bluff from the
//     catalog. The catalog itself goes to everyone so non-spies can weigh
//     plausible guesses; it reveals nothing about the selected entry.
//   - voting: accuser, accused, and the full tri-state ballot. Cast votes are
//     visible to all players as soon as they land.
//   - results: everything revealed, with a nil accused when the round ended
//     by spy disconnect.
func (r *Room) projectFor(playerID uuid.UUID) Event {
	players := r.playerListLocked()
	you := playerID.String()

	switch r.phase {
	case PhasePlaying:
		var loc *string
		if playerID != r.spyID {
			l := r.location
			loc = &l
		}
		return PlayingState{
			Type:         EventState,
			Phase:        PhasePlaying,
			Players:      players,
			You:          you,
			Location:     loc,
			AllLocations: Locations,
		}

	case PhaseVoting:
		votes := make(map[string]Vote, len(r.votes))
		for id, v := range r.votes {
			votes[id.String()] = v
		}
		return VotingState{
			Type:      EventState,
			Phase:     PhaseVoting,
			Players:   players,
			You:       you,
			AccuserID: r.accuserID.String(),
			AccusedID: r.accusedID.String(),
			Votes:     votes,
		}

	case PhaseResults:
		var accused *string
		if r.accusedID != uuid.Nil {
			s := r.accusedID.String()
			accused = &s
		}
		return ResultsState{
			Type:      EventState,
			Phase:     PhaseResults,
			Players:   players,
			You:       you,
			SpyID:     r.spyID.String(),
			Location:  r.location,
			AccusedID: accused,
			SpyCaught: r.accusedID != uuid.Nil && r.accusedID == r.spyID,
		}
	}

	return LobbyState{
		Type:    EventState,
		Phase:   PhaseLobby,
		Players: players,
		You:     you,
	}
}

// playerListLocked snapshots the players in join order.
func (r *Room) playerListLocked() []Player {
	players := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, *r.players[id])
	}
	return players
}
