package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robby/deckctl/internal/api"
)

var (
	alice = User{Username: "alice", FullName: "Alice A."}
	bob   = User{Username: "bob", FullName: "Bob B."}
)

func testDeck() Deck {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	return Deck{
		Users: []User{alice, bob},
		Boards: []Board{
			{
				ID: 1, Name: "Project",
				Stacks: []Stack{
					{ID: 10, Name: "Backlog", Cards: []Card{
						{ID: 1, Name: "plan", State: StateBacklog, BoardName: "Project", StackName: "Backlog",
							AssignedUsers: []User{alice, bob}},
					}},
					{ID: 11, Name: "In Progress", Cards: []Card{
						{ID: 2, Name: "build", State: StateInProgress, BoardName: "Project", StackName: "In Progress",
							DueDate: &yesterday, AssignedUsers: []User{alice}},
					}},
					{ID: 12, Name: "Icebox", Cards: []Card{
						{ID: 3, Name: "someday", State: StateNone, BoardName: "Project", StackName: "Icebox",
							AssignedUsers: []User{bob}},
					}},
				},
			},
			{
				ID: 2, Name: "Chores",
				Stacks: []Stack{
					{ID: 20, Name: "Done", Cards: []Card{
						{ID: 4, Name: "ship", State: StateDone, BoardName: "Chores", StackName: "Done",
							DueDate: &tomorrow, AssignedUsers: []User{alice}},
					}},
				},
			},
		},
	}
}

// TestCards verifies the depth-first flattening order: boards in order,
// stacks within each board in order, cards within each stack in order.
func TestCards(t *testing.T) {
	cards := testDeck().Cards()
	ids := make([]int, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestOverdueCards(t *testing.T) {
	overdue := testDeck().OverdueCards()
	require.Len(t, overdue, 1)
	assert.Equal(t, "build", overdue[0].Name)
}

// TestOverdueAtBoundary pins the strict comparison: a card due exactly
// now is not overdue, one second earlier is.
func TestOverdueAtBoundary(t *testing.T) {
	now := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	justBefore := now.Add(-time.Second)
	d := Deck{Boards: []Board{{Name: "B", Stacks: []Stack{{Cards: []Card{
		{ID: 1, Name: "exact", DueDate: &now},
		{ID: 2, Name: "late", DueDate: &justBefore},
		{ID: 3, Name: "none"},
	}}}}}}

	overdue := d.overdueAt(now)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Name)
}

func TestUsersWithCards(t *testing.T) {
	buckets, err := UsersWithCards(testDeck())
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	aliceBucket := buckets[0]
	assert.Equal(t, alice, aliceBucket.User)
	require.Len(t, aliceBucket.BacklogCards, 1)
	assert.Equal(t, "plan", aliceBucket.BacklogCards[0].Name)
	require.Len(t, aliceBucket.ProgressCards, 1)
	assert.Equal(t, "build", aliceBucket.ProgressCards[0].Name)
	require.Len(t, aliceBucket.DoneCards, 1)
	assert.Equal(t, "ship", aliceBucket.DoneCards[0].Name)
	assert.Empty(t, aliceBucket.OtherCards)

	bobBucket := buckets[1]
	assert.Equal(t, bob, bobBucket.User)
	// The shared backlog card appears in both buckets independently.
	require.Len(t, bobBucket.BacklogCards, 1)
	assert.Equal(t, "plan", bobBucket.BacklogCards[0].Name)
	// Unclassified state lands in the other bucket.
	require.Len(t, bobBucket.OtherCards, 1)
	assert.Equal(t, "someday", bobBucket.OtherCards[0].Name)
	assert.Empty(t, bobBucket.ProgressCards)
	assert.Empty(t, bobBucket.DoneCards)
}

// TestUsersWithCardsUnknownAssignee treats an assignee missing from the
// deck user set as a data-integrity error instead of dropping the card.
func TestUsersWithCardsUnknownAssignee(t *testing.T) {
	d := Deck{
		Users: []User{alice},
		Boards: []Board{{Name: "B", Stacks: []Stack{{Cards: []Card{
			{ID: 9, Name: "orphan", AssignedUsers: []User{{Username: "ghost", FullName: "G."}}},
		}}}}},
	}
	_, err := UsersWithCards(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestGroupByBoard(t *testing.T) {
	cards := []Card{
		{ID: 1, BoardName: "A"},
		{ID: 2, BoardName: "B"},
		{ID: 3, BoardName: "A"},
	}
	groups := GroupByBoard(cards)
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].BoardName)
	assert.Len(t, groups[0].Cards, 2)
	assert.Equal(t, "B", groups[1].BoardName)
	assert.Len(t, groups[1].Cards, 1)
}

// TestEndToEnd runs the worked example: one board with the three
// standard stacks, an overdue in-progress card assigned to alice.
func TestEndToEnd(t *testing.T) {
	yesterday := api.DueDate{Time: time.Now().UTC().Add(-24 * time.Hour)}
	boards := []api.Board{{
		ID: 1, Title: "Project",
		Stacks: []api.Stack{
			{ID: 10, Title: "Backlog", Cards: []api.Card{}},
			{ID: 11, Title: "In Progress", Cards: []api.Card{{
				ID: 100, Title: "Fix bug", DueDate: yesterday,
				AssignedUsers: []api.AssignedUser{assignedTo(100, "alice", "Alice A.")},
			}}},
			{ID: 12, Title: "Done", Cards: []api.Card{}},
		},
	}}

	d := Normalize(boards, defaultNames())

	overdue := d.OverdueCards()
	require.Len(t, overdue, 1)
	assert.Equal(t, "Fix bug", overdue[0].Name)

	buckets, err := UsersWithCards(d)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "alice", buckets[0].User.Username)
	require.Len(t, buckets[0].ProgressCards, 1)
	assert.Equal(t, "Fix bug", buckets[0].ProgressCards[0].Name)
	assert.Empty(t, buckets[0].BacklogCards)
	assert.Empty(t, buckets[0].DoneCards)
	assert.Empty(t, buckets[0].OtherCards)
}
