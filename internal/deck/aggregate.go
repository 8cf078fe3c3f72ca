package deck

import (
	"fmt"
	"time"
)

// Cards flattens all cards of all boards into a single list, depth
// first in board, stack, card order. The order is stable: it is the
// encounter order of the underlying snapshot and every derived view
// preserves it.
func (d Deck) Cards() []Card {
	var cards []Card
	for _, board := range d.Boards {
		for _, stack := range board.Stacks {
			cards = append(cards, stack.Cards...)
		}
	}
	return cards
}

// OverdueCards returns every card whose due date lies strictly before
// the current UTC instant. The comparison is recomputed locally; the
// server-supplied overdue flag is never consulted, so stale flags or
// clock skew on the service side cannot leak into reports.
func (d Deck) OverdueCards() []Card {
	return d.overdueAt(time.Now().UTC())
}

func (d Deck) overdueAt(now time.Time) []Card {
	var overdue []Card
	for _, card := range d.Cards() {
		if card.DueDate != nil && card.DueDate.Before(now) {
			overdue = append(overdue, card)
		}
	}
	return overdue
}

// UserWithCards buckets one user's cards by workflow state. It is a
// projection for per-user report sections: a card assigned to several
// users appears in each of their buckets independently.
type UserWithCards struct {
	User          User   `yaml:"user"`
	BacklogCards  []Card `yaml:"backlog_cards"`
	ProgressCards []Card `yaml:"progress_cards"`
	DoneCards     []Card `yaml:"done_cards"`
	OtherCards    []Card `yaml:"other_cards"`
}

// UsersWithCards builds the per-user buckets for every user of the
// deck. Bucket order follows Cards(). A card whose assignee is missing
// from the deck's user set indicates the snapshot is inconsistent
// (board membership and card assignments disagree); this is surfaced
// as an error rather than silently dropped.
func UsersWithCards(d Deck) ([]UserWithCards, error) {
	index := make(map[User]int, len(d.Users))
	result := make([]UserWithCards, len(d.Users))
	for i, user := range d.Users {
		index[user] = i
		result[i] = UserWithCards{User: user}
	}
	for _, card := range d.Cards() {
		for _, assignee := range card.AssignedUsers {
			i, ok := index[assignee]
			if !ok {
				return nil, fmt.Errorf("card %d (%s) assigned to unknown user %s", card.ID, card.Name, assignee.Username)
			}
			bucket := &result[i]
			switch card.State {
			case StateBacklog:
				bucket.BacklogCards = append(bucket.BacklogCards, card)
			case StateInProgress:
				bucket.ProgressCards = append(bucket.ProgressCards, card)
			case StateDone:
				bucket.DoneCards = append(bucket.DoneCards, card)
			default:
				bucket.OtherCards = append(bucket.OtherCards, card)
			}
		}
	}
	return result, nil
}

// BoardCards groups cards under the name of their board.
type BoardCards struct {
	BoardName string
	Cards     []Card
}

// GroupByBoard splits cards into per-board groups, preserving the
// encounter order of distinct board names and the card order within
// each group.
func GroupByBoard(cards []Card) []BoardCards {
	index := make(map[string]int)
	var groups []BoardCards
	for _, card := range cards {
		i, ok := index[card.BoardName]
		if !ok {
			i = len(groups)
			index[card.BoardName] = i
			groups = append(groups, BoardCards{BoardName: card.BoardName})
		}
		groups[i].Cards = append(groups[i].Cards, card)
	}
	return groups
}
