// Package session holds the state of one interactive run against the
// API: the fetched board list and an explicit per-board stack cache so
// repeated selections do not refetch.
package session

import (
	"context"
	"fmt"

	"github.com/robby/deckctl/internal/api"
)

// ErrNotFound is returned by the selection helpers when user input
// matches no known entity. The interactive layer reprompts on it.
var ErrNotFound = fmt.Errorf("not found")

// Session caches API data for the duration of one interactive run. It
// is not safe for concurrent use; the interactive flow is sequential.
type Session struct {
	client *api.Client

	boards []api.Board
	stacks map[int][]api.Stack
}

// New creates a session around the given client.
func New(client *api.Client) *Session {
	return &Session{
		client: client,
		stacks: make(map[int][]api.Stack),
	}
}

// Boards returns all boards, fetching them on first use.
func (s *Session) Boards(ctx context.Context) ([]api.Board, error) {
	if s.boards != nil {
		return s.boards, nil
	}
	boards, err := s.client.Boards(ctx)
	if err != nil {
		return nil, err
	}
	s.boards = boards
	return boards, nil
}

// Stacks returns the stacks of a board, fetching them on first use.
func (s *Session) Stacks(ctx context.Context, boardID int) ([]api.Stack, error) {
	if cached, ok := s.stacks[boardID]; ok {
		return cached, nil
	}
	stacks, err := s.client.Stacks(ctx, boardID)
	if err != nil {
		return nil, err
	}
	s.stacks[boardID] = stacks
	return stacks, nil
}

// BoardByTitle resolves a board by its exact title.
func (s *Session) BoardByTitle(ctx context.Context, title string) (*api.Board, error) {
	boards, err := s.Boards(ctx)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		if boards[i].Title == title {
			return &boards[i], nil
		}
	}
	return nil, fmt.Errorf("board %q: %w", title, ErrNotFound)
}

// StackByTitle resolves a stack on a board by its exact title.
func (s *Session) StackByTitle(ctx context.Context, boardID int, title string) (*api.Stack, error) {
	stacks, err := s.Stacks(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i := range stacks {
		if stacks[i].Title == title {
			return &stacks[i], nil
		}
	}
	return nil, fmt.Errorf("stack %q on board %d: %w", title, boardID, ErrNotFound)
}
