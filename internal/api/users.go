package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const ocsUsersPath = "ocs/v1.php/cloud/users"

// ocsUsersResponse is the XML envelope of the legacy OCS user-listing
// endpoint. This is the one endpoint that does not speak JSON.
type ocsUsersResponse struct {
	XMLName xml.Name `xml:"ocs"`
	Meta    struct {
		Status     string `xml:"status"`
		StatusCode int    `xml:"statuscode"`
		Message    string `xml:"message"`
	} `xml:"meta"`
	Data struct {
		Users []string `xml:"users>element"`
	} `xml:"data"`
}

// UserIDs returns the ids of all users of the Nextcloud instance via
// the OCS provisioning API. The Deck API itself only exposes users that
// already appear on a board, so this is the only way to enumerate
// assignable users.
func (c *Client) UserIDs(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, ocsUsersPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("OCS-APIRequest", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting user list: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading user list response: %w", err)
	}

	var envelope ocsUsersResponse
	if err := xml.Unmarshal(raw, &envelope); err != nil {
		return nil, &DecodeError{Endpoint: "users", Err: err}
	}
	if envelope.Meta.StatusCode >= 400 || envelope.Meta.Status == "failure" {
		return nil, &Error{Status: envelope.Meta.StatusCode, Message: envelope.Meta.Message}
	}
	return envelope.Data.Users, nil
}
