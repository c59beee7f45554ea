package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clouddrive/internal/client/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	var s models.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &s, false)
	return s, err
}

// Login authenticates and returns the session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var s models.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &s, false)
	return s, err
}
