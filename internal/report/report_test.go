package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robby/deckctl/internal/deck"
)

func testDeck(t *testing.T) deck.Deck {
	t.Helper()
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	alice := deck.User{Username: "alice", FullName: "Alice A."}
	return deck.Deck{
		Users: []deck.User{alice},
		Boards: []deck.Board{{
			ID: 1, Name: "Project",
			Stacks: []deck.Stack{{
				ID: 11, Name: "In Progress",
				Cards: []deck.Card{{
					ID: 100, Name: "Fix bug", State: deck.StateInProgress,
					BoardName: "Project", StackName: "In Progress",
					DueDate: &yesterday, AssignedUsers: []deck.User{alice},
				}},
			}},
		}},
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	data, err := Build(testDeck(t), Options{Overdue: true, Users: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "", data))
	out := buf.String()

	assert.Contains(t, out, "# Task Report")
	assert.Contains(t, out, "## Overdue Cards")
	assert.Contains(t, out, "### Project")
	assert.Contains(t, out, "Fix bug")
	assert.Contains(t, out, "## Tasks per User")
	assert.Contains(t, out, "Alice A. (alice)")
}

func TestRenderSectionsAreOptional(t *testing.T) {
	data, err := Build(testDeck(t), Options{Overdue: false, Users: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "", data))
	assert.NotContains(t, buf.String(), "## Overdue Cards")
	assert.Contains(t, buf.String(), "## Tasks per User")
}

func TestRenderCustomTemplate(t *testing.T) {
	data, err := Build(testDeck(t), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "generated {{ date .GeneratedAt }}", data))
	assert.Contains(t, buf.String(), "generated ")
}

func TestRenderBadTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "{{ .Nope", Data{})
	assert.Error(t, err)
}

// TestBuildSurfacesIntegrityErrors propagates the unknown-assignee
// failure from the aggregation layer.
func TestBuildSurfacesIntegrityErrors(t *testing.T) {
	d := testDeck(t)
	d.Users = nil
	_, err := Build(d, Options{})
	assert.Error(t, err)
}

func TestWrapFunc(t *testing.T) {
	var buf bytes.Buffer
	data := Data{GeneratedAt: time.Now()}
	require.NoError(t, Render(&buf, `{{ wrap 10 "one two three four" }}`, data))
	assert.Contains(t, buf.String(), "\n")
}
