// Package deck provides the normalized domain model for Deck data.
// It flattens the nested API representation into query-friendly types
// and derives the cross-cutting views the reporting layer consumes.
// Everything in this package is pure computation over in-memory data;
// no I/O, no logging, no retries.
package deck

import (
	"fmt"
	"time"
)

// User identifies a Deck user. Two users are the same user exactly when
// both username and full name match, which makes deduplication across
// boards sharing membership well defined.
type User struct {
	Username string `yaml:"username"`
	FullName string `yaml:"full_name"`
}

// CardState is the derived workflow state of a card. It never appears
// on the wire; it is computed from the owning stack's title.
type CardState int

const (
	// StateNone marks a card whose stack matched no configured name list.
	StateNone CardState = iota
	StateBacklog
	StateInProgress
	StateDone
)

var stateNames = map[CardState]string{
	StateNone:       "",
	StateBacklog:    "backlog",
	StateInProgress: "progress",
	StateDone:       "done",
}

func (s CardState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// MarshalYAML encodes the state as its name so dumps stay readable and
// stable across revisions of the enum.
func (s CardState) MarshalYAML() (any, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown card state %d", int(s))
	}
	return name, nil
}

// UnmarshalYAML decodes a state name written by MarshalYAML.
func (s *CardState) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown card state %q", name)
}

// Card is a normalized task. Labels are reduced to their titles and the
// owning board and stack names are carried along since they cannot be
// re-derived once the card is flattened out of the hierarchy.
type Card struct {
	ID            int        `yaml:"id"`
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Labels        []string   `yaml:"labels"`
	AssignedUsers []User     `yaml:"assigned_users"`
	DueDate       *time.Time `yaml:"duedate"`
	State         CardState  `yaml:"state"`
	Archived      bool       `yaml:"archived"`
	BoardName     string     `yaml:"board_name"`
	StackName     string     `yaml:"stack_name"`
}

// Stack is a normalized board column.
type Stack struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Cards []Card `yaml:"cards"`
}

// Board is a normalized board.
type Board struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Stacks []Stack `yaml:"stacks"`
}

// Deck is a full fetched snapshot: every board visible to the user plus
// the deduplicated set of all users appearing on any card. It is
// rebuilt from scratch on every fetch or dump load and is read-only
// afterwards.
type Deck struct {
	Users  []User  `yaml:"users"`
	Boards []Board `yaml:"boards"`
}
