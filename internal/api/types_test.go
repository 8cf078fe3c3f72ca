package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTimestampSentinel verifies that zero and negative raw values
// decode to an absent timestamp, never to the epoch.
func TestTimestampSentinel(t *testing.T) {
	for _, raw := range []string{"0", "-1", "-86400"} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts))
		assert.True(t, ts.IsZero(), "raw %s should decode as absent", raw)
	}
}

func TestTimestampDecodesUTC(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte("1609459200"), &ts))
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), ts.Time)
	assert.Equal(t, time.UTC, ts.Location())
}

// TestTimestampMonotonic checks that larger raw values decode to later
// instants.
func TestTimestampMonotonic(t *testing.T) {
	values := []string{"1", "1000", "1609459200", "1893456000"}
	var previous time.Time
	for _, raw := range values {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts))
		assert.True(t, ts.After(previous), "decoded %s should be after %v", raw, previous)
		previous = ts.Time
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC))
	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original.Time, decoded.Time)

	unset, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "0", string(unset))
}

func TestTimestampRejectsNonInteger(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestDueDate(t *testing.T) {
	var due DueDate
	require.NoError(t, json.Unmarshal([]byte("null"), &due))
	assert.True(t, due.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &due))
	assert.True(t, due.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"2023-06-15T12:00:00+02:00"`), &due))
	assert.Equal(t, time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC), due.Time)

	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &due))
}

// TestOwnerUnion verifies both wire forms of the owner field and that
// each one round-trips unchanged.
func TestOwnerUnion(t *testing.T) {
	var bare Owner
	require.NoError(t, json.Unmarshal([]byte(`"alice"`), &bare))
	assert.Equal(t, "alice", bare.UID)
	assert.Nil(t, bare.User)

	raw, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `"alice"`, string(raw))

	full := []byte(`{"primaryKey":"alice","uid":"alice","displayname":"Alice A.","type":0}`)
	var object Owner
	require.NoError(t, json.Unmarshal(full, &object))
	require.NotNil(t, object.User)
	assert.Equal(t, "alice", object.UID)
	assert.Equal(t, "Alice A.", object.User.DisplayName)

	raw, err = json.Marshal(object)
	require.NoError(t, err)
	assert.JSONEq(t, string(full), string(raw))
}

func TestDecodeBoardsErrorEnvelope(t *testing.T) {
	_, err := DecodeBoards([]byte(`{"status":403,"message":"Permission denied"}`))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "Permission denied", apiErr.Message)
}

func TestDecodeBoardsMalformed(t *testing.T) {
	_, err := DecodeBoards([]byte(`{"title":`))
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

// TestDecodeStacksIgnoresUnknownFields ensures schema additions on the
// service side do not break decoding.
func TestDecodeStacksIgnoresUnknownFields(t *testing.T) {
	payload := `[{"id":1,"title":"Backlog","boardId":2,"order":0,"cards":null,
		"lastModified":0,"deletedAt":0,"ETag":"abc","someFutureField":{"x":1}}]`
	stacks, err := DecodeStacks([]byte(payload))
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, "Backlog", stacks[0].Title)
	assert.Nil(t, stacks[0].Cards)
	assert.True(t, stacks[0].LastModified.IsZero())
}

func TestDecodeBoard(t *testing.T) {
	payload := `{
		"id": 3, "title": "Project", "color": "ff0000", "archived": false,
		"owner": {"primaryKey": "bob", "uid": "bob", "displayname": "Bob", "type": 0},
		"labels": [], "acl": [],
		"permissions": {"PERMISSION_READ": true, "PERMISSION_EDIT": true,
			"PERMISSION_MANAGE": false, "PERMISSION_SHARE": false},
		"users": [{"primaryKey": "bob", "uid": "bob", "displayname": "Bob", "type": 0}],
		"settings": {"notify-due": "off", "calendar": true},
		"lastModified": 1609459200, "deletedAt": 0, "shared": 0, "ETag": "etag"
	}`
	board, err := DecodeBoard([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 3, board.ID)
	assert.Equal(t, "Project", board.Title)
	assert.True(t, board.Permissions.Read)
	assert.False(t, board.Permissions.Manage)
	assert.Len(t, board.Users, 1)
	assert.False(t, board.LastModified.IsZero())
	assert.True(t, board.DeletedAt.IsZero())
}
