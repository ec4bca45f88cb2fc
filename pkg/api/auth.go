package api

import (
	"context"

	"github.com/inventaworks/inventa/pkg/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and installs its token on the
// client.
func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	var session model.Session
	err := c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &session)
	if err != nil {
		return model.Session{}, err
	}
	c.SetToken(session.Token)
	return session, nil
}

// Me returns the signed-in user, including the role that gates BOM edits.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.get(ctx, "/auth/me", nil, &user)
	return user, err
}

// Logout invalidates the session server-side and drops the local token
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	c.ClearToken()
	return err
}
