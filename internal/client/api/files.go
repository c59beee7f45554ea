package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/netx"
)

// ListFiles returns the current user's library.
func (c *Client) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var out struct {
		Files []models.FileRecord `json:"files"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/files/my", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Upload submits files as one multipart request, one "files" part each.
// File contents are streamed from disk.
func (c *Client) Upload(ctx context.Context, files []models.PendingFile) error {
	parts := make([]netx.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, netx.FilePart{Field: "files", Name: f.Name, Path: f.Path})
	}

	body, contentType := netx.MultipartBody(parts)
	defer body.Close()

	req, err := c.newRequest(ctx, http.MethodPost, "/files/upload", body, true)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// Download opens the binary content of one of the user's files. The caller
// must close the returned reader.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return c.download(ctx, "/files/download/"+url.PathEscape(fileID), true)
}

// DownloadShared opens a file through a share token instead of a session.
func (c *Client) DownloadShared(ctx context.Context, fileID, token string) (io.ReadCloser, error) {
	return c.download(ctx, sharedDownloadPath(fileID, token), false)
}

// SharedDownloadURL is the absolute URL DownloadShared fetches.
func (c *Client) SharedDownloadURL(fileID, token string) string {
	return c.baseURL + sharedDownloadPath(fileID, token)
}

func sharedDownloadPath(fileID, token string) string {
	return "/files/download/" + url.PathEscape(fileID) + "?" + url.Values{"token": {token}}.Encode()
}

func (c *Client) download(ctx context.Context, path string, authenticated bool) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, authenticated)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
