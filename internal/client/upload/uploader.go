// Package upload holds the pending-upload batch of the library view: files
// picked or dropped, listed, removed and finally submitted as one multipart
// request.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dmitrijs2005/clouddrive/internal/client/api"
	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
)

const (
	msgEmptyBatch = "Please select at least one file"
	msgFailed     = "Upload failed. Please try again."
)

// Sender submits a batch to the backend.
type Sender interface {
	Upload(ctx context.Context, files []models.PendingFile) error
}

// Uploader is the state of one upload panel. It is safe to call from
// several goroutines, but only one Submit runs at a time.
type Uploader struct {
	sender    Sender
	onSuccess func(ctx context.Context)
	log       logging.Logger

	mu         sync.Mutex
	pending    []models.PendingFile
	dropActive bool
	uploading  bool
	errMsg     string
}

// New returns an empty panel. onSuccess runs once after every successful
// Submit, outside any lock.
func New(sender Sender, onSuccess func(ctx context.Context), log logging.Logger) *Uploader {
	if log == nil {
		log = logging.Discard()
	}
	return &Uploader{sender: sender, onSuccess: onSuccess, log: log.With("component", "upload")}
}

// Select replaces the batch with paths. If any path cannot be used the
// previous batch is kept and the error is returned.
func (u *Uploader) Select(paths []string) error {
	files, err := stat(paths)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = files
	u.errMsg = ""
	return nil
}

func stat(paths []string) ([]models.PendingFile, error) {
	files := make([]models.PendingFile, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", p, err)
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("select %s: %w: is a directory", p, common.ErrValidation)
		}
		files = append(files, models.PendingFile{Name: filepath.Base(p), Path: p, Size: fi.Size()})
	}
	return files, nil
}

func (u *Uploader) DragEnter() { u.setDropActive(true) }
func (u *Uploader) DragOver()  { u.setDropActive(true) }
func (u *Uploader) DragLeave() { u.setDropActive(false) }

func (u *Uploader) setDropActive(v bool) {
	u.mu.Lock()
	u.dropActive = v
	u.mu.Unlock()
}

// Drop ends a drag and selects the dropped paths. An empty drop leaves the
// batch alone.
func (u *Uploader) Drop(paths []string) error {
	u.setDropActive(false)
	if len(paths) == 0 {
		return nil
	}
	return u.Select(paths)
}

// Remove drops the i-th pending file, keeping the order of the rest.
func (u *Uploader) Remove(i int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if i < 0 || i >= len(u.pending) {
		return fmt.Errorf("remove %d: %w: no such pending file", i, common.ErrValidation)
	}
	u.pending = slices.Delete(u.pending, i, i+1)
	return nil
}

// Pending returns a copy of the batch.
func (u *Uploader) Pending() []models.PendingFile {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.pending)
}

func (u *Uploader) DropActive() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dropActive
}

func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// Err returns the message of the last failed Submit, or "".
func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.errMsg
}

// SubmitLabel is the caption of the submit action for the current batch.
func (u *Uploader) SubmitLabel() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.uploading {
		return "Uploading..."
	}
	if len(u.pending) == 1 {
		return "Upload 1 file"
	}
	return fmt.Sprintf("Upload %d files", len(u.pending))
}

// Reset discards the batch and any error, as closing the panel does.
func (u *Uploader) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	u.errMsg = ""
	u.dropActive = false
}

// Submit uploads the batch. A second call while one is in flight returns
// common.ErrBusy without sending anything.
func (u *Uploader) Submit(ctx context.Context) error {
	u.mu.Lock()
	if u.uploading {
		u.mu.Unlock()
		return common.ErrBusy
	}
	if len(u.pending) == 0 {
		u.errMsg = msgEmptyBatch
		u.mu.Unlock()
		return fmt.Errorf("%w: %s", common.ErrValidation, msgEmptyBatch)
	}
	batch := slices.Clone(u.pending)
	u.uploading = true
	u.errMsg = ""
	u.mu.Unlock()

	err := u.sender.Upload(ctx, batch)

	u.mu.Lock()
	u.uploading = false
	if err != nil {
		u.errMsg = api.MessageOr(err, msgFailed)
		u.mu.Unlock()
		u.log.Warn(ctx, "upload failed", "files", len(batch), "error", err)
		return err
	}
	u.pending = nil
	u.mu.Unlock()

	u.log.Info(ctx, "upload complete", "files", len(batch))
	if u.onSuccess != nil {
		u.onSuccess(ctx)
	}
	return nil
}

// IsEmptyBatch reports whether err came from submitting nothing.
func IsEmptyBatch(err error) bool {
	return errors.Is(err, common.ErrValidation)
}
