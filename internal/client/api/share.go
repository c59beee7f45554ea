package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/models"
)

type shareUserRequest struct {
	FileID          string `json:"fileId"`
	SharedWithEmail string `json:"sharedWithEmail"`
}

type linkLookupRequest struct {
	FileID string `json:"fileId"`
}

type linkCreateRequest struct {
	FileID    string     `json:"fileId"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ShareWithUser grants the account behind email access to the file; the
// backend notifies the recipient.
func (c *Client) ShareWithUser(ctx context.Context, fileID, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/share/user", shareUserRequest{FileID: fileID, SharedWithEmail: email}, nil, true)
}

// LookupLink asks for the file's existing share link. A file without one is
// reported as common.ErrNotFound by backends that distinguish the case.
func (c *Client) LookupLink(ctx context.Context, fileID string) (models.ShareLink, error) {
	var l models.ShareLink
	err := c.doJSON(ctx, http.MethodPost, "/share/link", linkLookupRequest{FileID: fileID}, &l, true)
	return l, err
}

// CreateLink generates a share link, optionally expiring at expiresAt
// (sent as null when nil).
func (c *Client) CreateLink(ctx context.Context, fileID string, expiresAt *time.Time) (models.ShareLink, error) {
	var l models.ShareLink
	err := c.doJSON(ctx, http.MethodPost, "/share/link", linkCreateRequest{FileID: fileID, ExpiresAt: expiresAt}, &l, true)
	return l, err
}

// AccessShare resolves a share token to file metadata without a session.
func (c *Client) AccessShare(ctx context.Context, token string) (models.SharedFile, error) {
	var s models.SharedFile
	err := c.doJSON(ctx, http.MethodGet, "/share/access/"+url.PathEscape(token), nil, &s, false)
	return s, err
}
