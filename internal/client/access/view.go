// Package access resolves a share token without a session and downloads
// the file it grants.
package access

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/clouddrive/internal/client/api"
	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/filex"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
)

const (
	MsgLoadFailed = "Failed to load file"
	LoginHint     = "Log in to access files shared with your account."
)

// Backend is the anonymous part of the API.
type Backend interface {
	AccessShare(ctx context.Context, token string) (models.SharedFile, error)
	DownloadShared(ctx context.Context, fileID, token string) (io.ReadCloser, error)
	SharedDownloadURL(fileID, token string) string
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateDenied
)

type View struct {
	backend Backend
	log     logging.Logger

	mu     sync.Mutex
	state  State
	token  string
	shared models.SharedFile
	denied string
}

func New(backend Backend, log logging.Logger) *View {
	if log == nil {
		log = logging.Discard()
	}
	return &View{backend: backend, log: log.With("component", "access")}
}

// ParseToken accepts a bare token or a share link ending in /share/<token>.
func ParseToken(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: share token is required", common.ErrValidation)
	}
	if !strings.Contains(s, "/") {
		return s, nil
	}

	path := s
	if u, err := url.Parse(s); err == nil && u.Path != "" {
		path = u.Path
	}
	_, token, ok := strings.Cut(path, "/share/")
	token = strings.Trim(token, "/")
	if !ok || token == "" || strings.Contains(token, "/") {
		return "", fmt.Errorf("%w: %q is not a share link", common.ErrValidation, s)
	}
	return token, nil
}

// Resolve looks the token up. Any rejection leaves the view denied with the
// backend's message; the error is returned as well.
func (v *View) Resolve(ctx context.Context, token string) error {
	v.mu.Lock()
	v.state = StateLoading
	v.token = token
	v.shared = models.SharedFile{}
	v.denied = ""
	v.mu.Unlock()

	shared, err := v.backend.AccessShare(ctx, token)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = StateDenied
		v.denied = api.MessageOr(err, MsgLoadFailed)
		v.log.Info(ctx, "share token rejected", "error", err)
		return err
	}
	v.state = StateReady
	v.shared = shared
	return nil
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// File is the resolved file; ok is false unless the view is ready.
func (v *View) File() (models.SharedFile, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shared, v.state == StateReady
}

// Denied is the access-denied message, or "".
func (v *View) Denied() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.denied
}

// DownloadURL is the token-qualified download address of the resolved file.
func (v *View) DownloadURL() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateReady {
		return "", common.ErrNotResolved
	}
	return v.backend.SharedDownloadURL(v.shared.File.ID, v.token), nil
}

// Download saves the resolved file under dir. Nothing is requested unless
// Resolve succeeded.
func (v *View) Download(ctx context.Context, dir string) (string, error) {
	v.mu.Lock()
	if v.state != StateReady {
		v.mu.Unlock()
		return "", common.ErrNotResolved
	}
	file, token := v.shared.File, v.token
	v.mu.Unlock()

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	body, err := v.backend.DownloadShared(ctx, file.ID, token)
	if err != nil {
		return "", fmt.Errorf("download shared file: %w", err)
	}
	defer body.Close()

	path, err := filex.SaveStream(body, abs, file.OriginalName)
	if err != nil {
		return "", fmt.Errorf("download shared file: %w", err)
	}
	v.log.Info(ctx, "shared file downloaded", "file", file.ID, "path", path)
	return path, nil
}
