// Package library is the signed-in user's file dashboard: the fetched list,
// local search over it, downloads, and the upload panel and share dialog it
// hosts. Both children refresh the list when they complete.
package library

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/client/share"
	"github.com/dmitrijs2005/clouddrive/internal/client/upload"
	"github.com/dmitrijs2005/clouddrive/internal/filex"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
)

const (
	MsgLoadFailed     = "Failed to load files"
	MsgDownloadFailed = "Failed to download file"
	MsgNoFiles        = "No files yet"
	MsgNoMatches      = "No files found"
)

type Backend interface {
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
	upload.Sender
	share.Backend
}

type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

// Options configure the children the view opens.
type Options struct {
	WebOrigin  string
	CloseDelay time.Duration
	Clipboard  share.Clipboard
	Log        logging.Logger
}

type View struct {
	backend Backend
	opts    Options
	log     logging.Logger

	mu       sync.Mutex
	state    State
	errMsg   string
	files    []models.FileRecord
	query    string
	uploader *upload.Uploader
	dialog   *share.Dialog
}

func New(backend Backend, opts Options) *View {
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	return &View{
		backend: backend,
		opts:    opts,
		log:     opts.Log.With("component", "library"),
		state:   StateLoading,
	}
}

// Load fetches the full list. The previous list is only replaced on
// success.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = StateLoading
	v.errMsg = ""
	v.mu.Unlock()

	files, err := v.backend.ListFiles(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = StateFailed
		v.errMsg = MsgLoadFailed
		v.log.Warn(ctx, "list files failed", "error", err)
		return err
	}
	v.files = files
	v.state = StateReady
	return nil
}

func (v *View) refresh(ctx context.Context) {
	_ = v.Load(ctx)
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err is the load error message shown in place of the list.
func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Files returns every fetched file, ignoring the search query.
func (v *View) Files() []models.FileRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.files)
}

func (v *View) SetQuery(q string) {
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()
}

func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Visible is the fetched list narrowed by the current query.
func (v *View) Visible() []models.FileRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.files, v.query)
}

// EmptyMessage is what to show instead of an empty list, or "" if the list
// is not empty or not loaded.
func (v *View) EmptyMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateReady || len(Filter(v.files, v.query)) > 0 {
		return ""
	}
	if v.query != "" {
		return MsgNoMatches
	}
	return MsgNoFiles
}

// Filter keeps files whose name contains query, ignoring case.
func Filter(files []models.FileRecord, query string) []models.FileRecord {
	if query == "" {
		return slices.Clone(files)
	}
	q := strings.ToLower(query)
	out := make([]models.FileRecord, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.OriginalName), q) {
			out = append(out, f)
		}
	}
	return out
}

// Find returns the file with the given id among the fetched ones.
func (v *View) Find(id string) (models.FileRecord, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := slices.IndexFunc(v.files, func(f models.FileRecord) bool { return f.ID == id })
	if i < 0 {
		return models.FileRecord{}, false
	}
	return v.files[i], true
}

// Download saves file under dir with its original name and returns the
// path written.
func (v *View) Download(ctx context.Context, file models.FileRecord, dir string) (string, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	body, err := v.backend.Download(ctx, file.ID)
	if err != nil {
		v.log.Warn(ctx, "download failed", "file", file.ID, "error", err)
		return "", fmt.Errorf("%s: %w", MsgDownloadFailed, err)
	}
	defer body.Close()

	path, err := filex.SaveStream(body, abs, file.OriginalName)
	if err != nil {
		v.log.Warn(ctx, "saving download failed", "file", file.ID, "error", err)
		return "", fmt.Errorf("%s: %w", MsgDownloadFailed, err)
	}
	v.log.Info(ctx, "file downloaded", "file", file.ID, "path", path)
	return path, nil
}

// ToggleUpload opens the upload panel, or closes and discards it if it is
// already open. It returns the panel, nil when closed.
func (v *View) ToggleUpload() *upload.Uploader {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.uploader != nil {
		v.uploader.Reset()
		v.uploader = nil
		return nil
	}
	v.uploader = upload.New(v.backend, v.refresh, v.opts.Log)
	return v.uploader
}

// Uploader is the open upload panel, or nil.
func (v *View) Uploader() *upload.Uploader {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.uploader
}

// OpenShare opens the share dialog for file, replacing any dialog already
// open.
func (v *View) OpenShare(file models.FileRecord) *share.Dialog {
	d := share.Open(v.backend, file, share.Options{
		WebOrigin:  v.opts.WebOrigin,
		CloseDelay: v.opts.CloseDelay,
		OnShared:   v.refresh,
		Clipboard:  v.opts.Clipboard,
		Log:        v.opts.Log,
	})

	v.mu.Lock()
	prev := v.dialog
	v.dialog = d
	v.mu.Unlock()

	d.OnClose(func() {
		v.mu.Lock()
		if v.dialog == d {
			v.dialog = nil
		}
		v.mu.Unlock()
	})
	if prev != nil {
		prev.Close()
	}
	return d
}

// Share is the open share dialog, or nil.
func (v *View) Share() *share.Dialog {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dialog
}
