// Package api provides a client for the Nextcloud Deck REST API.
// It implements a deep module interface - simple methods hiding the wire
// format of the Deck app and the legacy OCS endpoints.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is a Unix-seconds timestamp as returned by the Deck API.
// The service encodes "unset" as 0 (for example deletedAt on an element
// that was never deleted), so any raw value <= 0 decodes to the zero
// Timestamp instead of the epoch. Positive values decode as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a Timestamp for the given instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// UnmarshalJSON decodes a raw Unix-seconds value, applying the zero
// sentinel rule.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp %q is not an integer: %w", string(data), err)
	}
	if raw <= 0 {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.Unix(raw, 0).UTC()
	return nil
}

// MarshalJSON emits the Unix-seconds value, with 0 for an unset timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// DueDate is an optional ISO-8601 due date. Unlike the Unix-seconds
// fields the Deck API transmits due dates as RFC 3339 strings, with
// null or the empty string meaning "no due date".
type DueDate struct {
	time.Time
}

// UnmarshalJSON decodes an RFC 3339 string or null.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due date is not a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("due date %q is not RFC 3339: %w", s, err)
	}
	d.Time = parsed.UTC()
	return nil
}

// MarshalJSON emits an RFC 3339 string, or null when unset.
func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// User is a Nextcloud user as embedded in Deck responses.
type User struct {
	PrimaryKey  string `json:"primaryKey"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayname"`
	Type        int    `json:"type"`
}

// AssignedUser links a participant user to a card.
type AssignedUser struct {
	ID          int  `json:"id"`
	Participant User `json:"participant"`
	CardID      int  `json:"cardId"`
	Type        int  `json:"type"`
}

// Label tags a card or a board.
type Label struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Color        string    `json:"color"`
	BoardID      int       `json:"boardId"`
	CardID       *int      `json:"cardId"`
	LastModified Timestamp `json:"lastModified"`
	ETag         string    `json:"ETag"`
}

// Owner is the owner field of a card. The API returns either a bare
// user id string or a full user object depending on the endpoint; both
// forms are preserved for round-tripping. The normalizer never inspects
// this field.
type Owner struct {
	UID  string
	User *User
}

// UnmarshalJSON accepts either form of the union.
func (o *Owner) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		o.User = nil
		return json.Unmarshal(data, &o.UID)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("owner is neither a uid string nor a user object: %w", err)
	}
	o.User = &u
	o.UID = u.UID
	return nil
}

// MarshalJSON re-emits the form that was decoded.
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.User != nil {
		return json.Marshal(o.User)
	}
	return json.Marshal(o.UID)
}

// Card is a single Deck card, typically representing a task.
//
// The server-side Overdue flag is decoded for fidelity but never
// consulted; due-date comparisons are recomputed locally so reports do
// not depend on server clocks or stale flags.
type Card struct {
	ID              int            `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Type            string         `json:"type"`
	StackID         int            `json:"stackId"`
	CreatedAt       Timestamp      `json:"createdAt"`
	LastModified    Timestamp      `json:"lastModified"`
	DeletedAt       Timestamp      `json:"deletedAt"`
	DueDate         DueDate        `json:"duedate"`
	Archived        bool           `json:"archived"`
	Order           int            `json:"order"`
	Labels          []Label        `json:"labels"`
	AssignedUsers   []AssignedUser `json:"assignedUsers"`
	Owner           Owner          `json:"owner"`
	CommentsUnread  int            `json:"commentsUnread"`
	AttachmentCount *int           `json:"attachmentCount"`
	Overdue         int            `json:"overdue"`
	ETag            string         `json:"ETag"`
}

// Stack is a column of a board. Cards is nil when the endpoint did not
// include card data, which is distinct from an empty stack.
type Stack struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	BoardID      int       `json:"boardId"`
	Order        int       `json:"order"`
	Cards        []Card    `json:"cards"`
	LastModified Timestamp `json:"lastModified"`
	DeletedAt    Timestamp `json:"deletedAt"`
	ETag         string    `json:"ETag"`
}

// SharedEntity is an acl entry of a board.
type SharedEntity struct {
	ID               int  `json:"id"`
	Participant      User `json:"participant"`
	Type             int  `json:"type"`
	BoardID          int  `json:"boardId"`
	PermissionEdit   bool `json:"permissionEdit"`
	PermissionShare  bool `json:"permissionShare"`
	PermissionManage bool `json:"permissionManage"`
	Owner            bool `json:"owner"`
}

// Permissions describes what the requesting user may do with a board.
type Permissions struct {
	Read   bool `json:"PERMISSION_READ"`
	Edit   bool `json:"PERMISSION_EDIT"`
	Manage bool `json:"PERMISSION_MANAGE"`
	Share  bool `json:"PERMISSION_SHARE"`
}

// BoardSettings holds the per-board settings blob.
type BoardSettings struct {
	NotifyDue string `json:"notify-due"`
	Calendar  bool   `json:"calendar"`
}

// Board is a Deck board. Users is populated only by the single-board
// endpoint and Stacks only when stacks were explicitly fetched.
type Board struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Owner        User           `json:"owner"`
	Color        string         `json:"color"`
	Archived     bool           `json:"archived"`
	Labels       []Label        `json:"labels"`
	ACL          []SharedEntity `json:"acl"`
	Permissions  Permissions    `json:"permissions"`
	Users        []User         `json:"users"`
	Shared       int            `json:"shared"`
	Stacks       []Stack        `json:"stacks"`
	Settings     BoardSettings  `json:"settings"`
	LastModified Timestamp      `json:"lastModified"`
	DeletedAt    Timestamp      `json:"deletedAt"`
	ETag         string         `json:"ETag"`
}

// CardRequest is the body of a create-card call.
type CardRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Order       int     `json:"order"`
	Description string  `json:"description,omitempty"`
	DueDate     DueDate `json:"duedate,omitzero"`
}

// AssignUserRequest is the body of an assign-user call.
type AssignUserRequest struct {
	UserID string `json:"userId"`
}
