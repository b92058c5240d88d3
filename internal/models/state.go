package models

import (
	"encoding/json"
	"fmt"
)

// State represents the learning stage of a card.
type State int

const (
	StateNew State = iota
	StateLearning
	StateReview
	StateRelearning
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

var stateByName = map[string]State{
	"new":        StateNew,
	"learning":   StateLearning,
	"review":     StateReview,
	"relearning": StateRelearning,
}

func (s State) isValid() bool {
	return s >= StateNew && s <= StateRelearning
}

// String returns the lowercase name of the state, matching the persisted form.
func (s State) String() string {
	if s.isValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalJSON serializes the state as a JSON string ("new", "learning", ...).
func (s State) MarshalJSON() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("invalid card state: %d", int(s))
	}
	return json.Marshal(stateNames[s])
}

// UnmarshalJSON parses a state from its JSON string form.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid card state: %s", data)
	}
	v, ok := stateByName[name]
	if !ok {
		return fmt.Errorf("invalid card state: %q", name)
	}
	*s = v
	return nil
}
