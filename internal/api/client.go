package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const deckAPIPath = "index.php/apps/deck/api/v1.0"

// Error is an API-level error envelope returned by the Deck service,
// for example an authorization or validation failure. It is never
// retried; callers decide how to present it.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("deck service error (status %d): %s", e.Status, e.Message)
}

// DecodeError indicates a payload that matches neither the expected
// shape for its endpoint nor the service error envelope.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProgressFunc is invoked before each individual stack fetch of a bulk
// operation, with the zero-based index of the current step, the total
// step count, and a short description.
type ProgressFunc func(current, total int, message string)

// Client talks to the Deck app of a Nextcloud instance using basic
// auth. All fetches are blocking and sequential; timeouts are the
// responsibility of the supplied http.Client.
type Client struct {
	baseURL    string
	user       string
	password   string
	http       *http.Client
	onProgress ProgressFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProgress installs a callback reporting bulk-fetch progress.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) { c.onProgress = fn }
}

// New creates a client for the Nextcloud instance at baseURL.
func New(baseURL, user, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     user,
		password: password,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Boards returns all boards visible to the authenticated user. Stacks
// are not populated by this endpoint.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	body, err := c.get(ctx, "boards")
	if err != nil {
		return nil, err
	}
	var boards []Board
	if err := decode(body, "boards", &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Board returns a single board by id, including its user list.
func (c *Client) Board(ctx context.Context, boardID int) (*Board, error) {
	endpoint := fmt.Sprintf("boards/%d", boardID)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var board Board
	if err := decode(body, endpoint, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// Stacks returns all stacks of a board, with their cards populated.
func (c *Client) Stacks(ctx context.Context, boardID int) ([]Stack, error) {
	endpoint := fmt.Sprintf("boards/%d/stacks", boardID)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var stacks []Stack
	if err := decode(body, endpoint, &stacks); err != nil {
		return nil, err
	}
	return stacks, nil
}

// BoardsWithStacks enumerates all boards and fetches the stacks of each
// one in sequence. The progress callback, if set, runs before every
// stack fetch. A failure on any single fetch aborts the whole operation
// with no boards returned.
func (c *Client) BoardsWithStacks(ctx context.Context) ([]Board, error) {
	boards, err := c.Boards(ctx)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		if c.onProgress != nil {
			c.onProgress(i, len(boards), fmt.Sprintf("fetching stacks of board %q", boards[i].Title))
		}
		stacks, err := c.Stacks(ctx, boards[i].ID)
		if err != nil {
			return nil, err
		}
		boards[i].Stacks = stacks
	}
	return boards, nil
}

// ErrTitleTooLong is returned by CreateCard for titles over 255 runes.
// The limit is enforced on input creation only, never on read.
var ErrTitleTooLong = fmt.Errorf("card title exceeds 255 characters")

// CreateCard adds a new card to the given stack.
func (c *Client) CreateCard(ctx context.Context, boardID, stackID int, card CardRequest) (*Card, error) {
	if len([]rune(card.Title)) > 255 {
		return nil, ErrTitleTooLong
	}
	if card.Type == "" {
		card.Type = "plain"
	}
	if card.Order == 0 {
		card.Order = 999
	}
	endpoint := fmt.Sprintf("boards/%d/stacks/%d/cards", boardID, stackID)
	body, err := c.send(ctx, http.MethodPost, endpoint, card)
	if err != nil {
		return nil, err
	}
	var created Card
	if err := decode(body, endpoint, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AssignUser assigns a user to an existing card.
func (c *Client) AssignUser(ctx context.Context, boardID, stackID, cardID int, uid string) error {
	endpoint := fmt.Sprintf("boards/%d/stacks/%d/cards/%d/assignUser", boardID, stackID, cardID)
	_, err := c.send(ctx, http.MethodPut, endpoint, AssignUserRequest{UserID: uid})
	return err
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", endpoint, err)
	}
	return c.do(ctx, method, endpoint, body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, deckAPIPath, endpoint)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("OCS-APIRequest", "true")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	if apiErr := errorEnvelope(raw); apiErr != nil {
		return nil, apiErr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return raw, nil
}

// errorEnvelope detects the {status, message} failure shape the service
// returns in place of the expected payload.
func errorEnvelope(raw []byte) *Error {
	var envelope struct {
		Status  *int   `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	if envelope.Status != nil && *envelope.Status >= 400 {
		return &Error{Status: *envelope.Status, Message: envelope.Message}
	}
	return nil
}

// decode parses a payload into the expected shape for an endpoint,
// wrapping failures in a DecodeError. Unknown fields are ignored since
// the service schema evolves independently of this client.
func decode(raw []byte, endpoint string, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
