package deck

import (
	"slices"
	"time"

	"github.com/robby/deckctl/internal/api"
)

// StackNames maps stack titles to workflow states. The three lists are
// consulted in fixed order (backlog, then progress, then done) and the
// first case-sensitive match wins, so a title present in more than one
// list classifies as the earlier state.
type StackNames struct {
	Backlog  []string
	Progress []string
	Done     []string
}

func (n StackNames) classify(title string) CardState {
	switch {
	case slices.Contains(n.Backlog, title):
		return StateBacklog
	case slices.Contains(n.Progress, title):
		return StateInProgress
	case slices.Contains(n.Done, title):
		return StateDone
	}
	return StateNone
}

// Normalize converts raw boards into a Deck. Every card inherits the
// derived state of its stack and carries its board and stack titles.
// The global user set collects each distinct (username, full name) pair
// in encounter order.
func Normalize(boards []api.Board, names StackNames) Deck {
	users := newUserSet()
	result := Deck{Boards: make([]Board, 0, len(boards))}
	for _, rawBoard := range boards {
		board := Board{
			ID:     rawBoard.ID,
			Name:   rawBoard.Title,
			Stacks: make([]Stack, 0, len(rawBoard.Stacks)),
		}
		for _, rawStack := range rawBoard.Stacks {
			state := names.classify(rawStack.Title)
			stack := Stack{
				ID:   rawStack.ID,
				Name: rawStack.Title,
			}
			// A nil card list means the endpoint omitted cards, which
			// normalizes the same as an empty stack.
			for _, rawCard := range rawStack.Cards {
				card := normalizeCard(rawCard, state, rawBoard.Title, rawStack.Title)
				for _, user := range card.AssignedUsers {
					users.add(user)
				}
				stack.Cards = append(stack.Cards, card)
			}
			board.Stacks = append(board.Stacks, stack)
		}
		result.Boards = append(result.Boards, board)
	}
	result.Users = users.ordered
	return result
}

func normalizeCard(raw api.Card, state CardState, boardName, stackName string) Card {
	labels := make([]string, 0, len(raw.Labels))
	for _, label := range raw.Labels {
		labels = append(labels, label.Title)
	}
	assigned := make([]User, 0, len(raw.AssignedUsers))
	for _, au := range raw.AssignedUsers {
		assigned = append(assigned, User{
			Username: au.Participant.UID,
			FullName: au.Participant.DisplayName,
		})
	}
	var due *time.Time
	if !raw.DueDate.IsZero() {
		t := raw.DueDate.Time
		due = &t
	}
	return Card{
		ID:            raw.ID,
		Name:          raw.Title,
		Description:   raw.Description,
		Labels:        labels,
		AssignedUsers: assigned,
		DueDate:       due,
		State:         state,
		Archived:      raw.Archived,
		BoardName:     boardName,
		StackName:     stackName,
	}
}

// userSet deduplicates users by their (username, full name) identity
// while preserving encounter order. An explicit map is used instead of
// relying on struct comparability so the identity rule stays visible.
type userSet struct {
	seen    map[User]struct{}
	ordered []User
}

func newUserSet() *userSet {
	return &userSet{seen: make(map[User]struct{})}
}

func (s *userSet) add(u User) {
	if _, ok := s.seen[u]; ok {
		return
	}
	s.seen[u] = struct{}{}
	s.ordered = append(s.ordered, u)
}
