// internal/game/projection_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// marshalEvent renders an event to its wire form and decodes it into a map
// for key-level assertions.
func marshalEvent(t *testing.T, ev Event) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestLobbyProjectionWireFormat(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")

	r.mu.Lock()
	ev := r.projectFor(players[1].id)
	r.mu.Unlock()

	m := marshalEvent(t, ev)
	assert.Equal(t, "state", m["type"])
	assert.Equal(t, "lobby", m["phase"])
	assert.Equal(t, players[1].id.String(), m["you"])
	assert.Len(t, m["players"], 3)
	assert.NotContains(t, m, "location")
	assert.NotContains(t, m, "spyId")

	first := m["players"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
	assert.Equal(t, true, first["isHost"])
}

func TestPlayingProjectionHidesLocationFromSpy(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")
	startRound(t, r, players)

	r.mu.Lock()
	spyID := r.spyID
	var nonSpy *testPlayer
	for _, p := range players {
		if p.id != spyID {
			nonSpy = p
			break
		}
	}
	spyEv := r.projectFor(spyID)
	otherEv := r.projectFor(nonSpy.id)
	location := r.location
	r.mu.Unlock()

	spyWire := marshalEvent(t, spyEv)
	assert.Equal(t, "playing", spyWire["phase"])
	assert.Contains(t, spyWire, "location", "spy still receives an explicit null location")
	assert.Nil(t, spyWire["location"])
	assert.Len(t, spyWire["allLocations"], len(Locations))

	// Nothing in the spy's own view marks them as the spy beyond the
	// missing location; in particular no role or spy id field leaks.
	assert.NotContains(t, spyWire, "spyId")
	assert.NotContains(t, spyWire, "spyCaught")

	otherWire := marshalEvent(t, otherEv)
	assert.Equal(t, location, otherWire["location"])
	assert.NotContains(t, otherWire, "spyId")
}

func TestVotingProjectionBallotVisibility(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")
	startRound(t, r, players)
	a, b, c := players[0], players[1], players[2]

	sendAccuse(t, r, b, c.id)
	sendVote(t, r, a, false)

	r.mu.Lock()
	ev := r.projectFor(c.id)
	r.mu.Unlock()

	m := marshalEvent(t, ev)
	assert.Equal(t, "voting", m["phase"])
	assert.Equal(t, b.id.String(), m["accuserId"])
	assert.Equal(t, c.id.String(), m["accusedId"])

	// Cast votes are visible to every recipient, including direction;
	// uncast ones serialize as null.
	votes := m["votes"].(map[string]interface{})
	assert.Equal(t, true, votes[b.id.String()])
	assert.Equal(t, false, votes[a.id.String()])
	assert.Nil(t, votes[c.id.String()])
}

func TestResultsProjectionRevealsEverything(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")
	startRound(t, r, players)
	a, b, c := players[0], players[1], players[2]

	r.mu.Lock()
	r.spyID = c.id
	r.mu.Unlock()

	sendAccuse(t, r, b, c.id)
	sendVote(t, r, a, true)
	sendVote(t, r, c, true)
	require.Equal(t, PhaseResults, r.phase)

	r.mu.Lock()
	ev := r.projectFor(a.id)
	location := r.location
	r.mu.Unlock()

	m := marshalEvent(t, ev)
	assert.Equal(t, "results", m["phase"])
	assert.Equal(t, c.id.String(), m["spyId"])
	assert.Equal(t, location, m["location"])
	assert.Equal(t, c.id.String(), m["accusedId"])
	assert.Equal(t, true, m["spyCaught"])
}

func TestResultsProjectionAfterSpyDisconnect(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")
	startRound(t, r, players)

	r.mu.Lock()
	r.spyID = players[2].id
	r.mu.Unlock()

	r.HandleDisconnect(players[2].conn)
	require.Equal(t, PhaseResults, r.phase)

	r.mu.Lock()
	ev := r.projectFor(players[0].id)
	r.mu.Unlock()

	m := marshalEvent(t, ev)
	assert.Contains(t, m, "accusedId")
	assert.Nil(t, m["accusedId"], "spy disconnect leaves an explicit null accused")
	assert.Equal(t, false, m["spyCaught"])
}

func TestVoteJSONRoundTrip(t *testing.T) {
	cases := []struct {
		vote Vote
		wire string
	}{
		{VoteUnset, "null"},
		{VoteGuilty, "true"},
		{VoteNotGuilty, "false"},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.vote)
		require.NoError(t, err)
		assert.Equal(t, tc.wire, string(data))

		var back Vote
		require.NoError(t, json.Unmarshal([]byte(tc.wire), &back))
		assert.Equal(t, tc.vote, back)
	}

	var v Vote
	assert.Error(t, v.UnmarshalJSON([]byte(`"guilty"`)))
}

func TestPlayerListSnapshotIsCopy(t *testing.T) {
	r, players := setupRoom(t, "Alice", "Bob", "Cara")

	r.mu.Lock()
	list := r.playerListLocked()
	r.mu.Unlock()

	list[0].Name = "Mallory"
	assert.Equal(t, "Alice", r.players[players[0].id].Name)
}
