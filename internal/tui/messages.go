// Package tui provides the Bubble Tea models for the interactive
// add-card flow.
package tui

import "github.com/robby/deckctl/internal/api"

// boardsLoadedMsg is emitted when the board list arrived.
type boardsLoadedMsg struct {
	boards []api.Board
}

// stacksLoadedMsg is emitted when the stacks of the chosen board arrived.
type stacksLoadedMsg struct {
	stacks []api.Stack
}

// usersLoadedMsg is emitted when the assignable user ids arrived.
type usersLoadedMsg struct {
	userIDs []string
}

// cardCreatedMsg is emitted once the card was created and all selected
// users were assigned.
type cardCreatedMsg struct {
	card *api.Card
}

// errorMsg is emitted when a request fails.
type errorMsg struct {
	err error
}
