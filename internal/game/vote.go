// internal/game/vote.go
package game

import (
	"bytes"
	"fmt"
)

// Vote is the tri-state value of one player's ballot during the voting phase.
// The zero value is VoteUnset, i.e. "hasn't voted yet". An explicit enum is
// used instead of *bool so "voted not guilty" and "absent" cannot be confused.
type Vote int

const (
	VoteUnset Vote = iota
	VoteGuilty
	VoteNotGuilty
)

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// MarshalJSON serializes a Vote to the wire form clients expect:
// null (not cast), true (guilty), false (not guilty).
func (v Vote) MarshalJSON() ([]byte, error) {
	switch v {
	case VoteUnset:
		return jsonNull, nil
	case VoteGuilty:
		return jsonTrue, nil
	case VoteNotGuilty:
		return jsonFalse, nil
	}
	return nil, fmt.Errorf("invalid vote value %d", int(v))
}

// UnmarshalJSON parses the null/true/false wire form back into a Vote.
func (v *Vote) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonNull):
		*v = VoteUnset
	case bytes.Equal(data, jsonTrue):
		*v = VoteGuilty
	case bytes.Equal(data, jsonFalse):
		*v = VoteNotGuilty
	default:
		return fmt.Errorf("invalid vote value %q", data)
	}
	return nil
}

func (v Vote) String() string {
	switch v {
	case VoteGuilty:
		return "guilty"
	case VoteNotGuilty:
		return "not-guilty"
	}
	return "unset"
}
