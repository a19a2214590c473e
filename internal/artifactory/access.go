package artifactory

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenRequest is the payload for creating a short-lived access token.
// https://jfrog.com/help/r/jfrog-rest-apis/create-token
type TokenRequest struct {
	Username              string `json:"username,omitempty"`
	Scope                 string `json:"scope,omitempty"`
	ExpiresIn             int64  `json:"expires_in,omitempty"`
	Description           string `json:"description,omitempty"`
	IncludeReferenceToken bool   `json:"include_reference_token,omitempty"`
	ForceRevokable        bool   `json:"force_revokable,omitempty"`
}

// Token is the response of the token creation API.
type Token struct {
	TokenID        string `json:"token_id"`
	AccessToken    string `json:"access_token"`
	ReferenceToken string `json:"reference_token,omitempty"`
	ExpiresIn      int64  `json:"expires_in"`
	Scope          string `json:"scope"`
	TokenType      string `json:"token_type"`
}

// User is a user summary from the Access API.
type User struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type userList struct {
	Users []User `json:"users"`
}

type userDetails struct {
	Username     string `json:"username"`
	LastLoggedIn string `json:"last_logged_in"`
}

// neverLoggedIn is the epoch sentinel the Access API reports for users that
// have never logged in.
const neverLoggedIn = "1970-01-01T00:00:00.000Z"

// CreateToken creates an access token.
func (c *Client) CreateToken(ctx context.Context, request TokenRequest) (*Token, error) {
	logrus.WithField("username", request.Username).Debug("creating access token")
	var token Token
	if err := c.do(ctx, "POST", "/access/api/v1/tokens", request, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken revokes an access token by its token id.
func (c *Client) RevokeToken(ctx context.Context, tokenID string) error {
	logrus.WithField("token_id", tokenID).Debug("revoking access token")
	return c.do(ctx, "DELETE", "/access/api/v1/tokens/"+tokenID, nil, nil)
}

// ListUsers fetches the user list from the Access API.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var list userList
	if err := c.do(ctx, "GET", "/access/api/v2/users", nil, &list); err != nil {
		return nil, err
	}
	return list.Users, nil
}

// GetLastLoggedIn fetches the last login time of a user. Returns nil for
// users that have never logged in.
func (c *Client) GetLastLoggedIn(ctx context.Context, username string) (*time.Time, error) {
	var details userDetails
	if err := c.do(ctx, "GET", "/access/api/v2/users/"+username, nil, &details); err != nil {
		return nil, err
	}
	if details.LastLoggedIn == "" || details.LastLoggedIn == neverLoggedIn {
		return nil, nil
	}
	lastLoggedIn, err := time.Parse(time.RFC3339, details.LastLoggedIn)
	if err != nil {
		return nil, err
	}
	return &lastLoggedIn, nil
}
