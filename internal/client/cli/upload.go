package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/clouddrive/internal/client/upload"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/filex"
)

func (a *App) uploader() *upload.Uploader {
	if u := a.library.Uploader(); u != nil {
		return u
	}
	return a.library.ToggleUpload()
}

// Select opens the upload panel if needed and replaces its batch.
func (a *App) Select(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: give one or more file paths", common.ErrValidation)
	}
	if err := a.uploader().Select(paths); err != nil {
		return err
	}
	return a.Pending(ctx)
}

// Drop behaves like a drag that ends over the panel.
func (a *App) Drop(ctx context.Context, paths []string) error {
	u := a.uploader()
	u.DragEnter()
	if err := u.Drop(paths); err != nil {
		return err
	}
	return a.Pending(ctx)
}

// Pending prints the batch waiting to be uploaded.
func (a *App) Pending(_ context.Context) error {
	u := a.library.Uploader()
	if u == nil {
		printlnFn("Upload panel is closed (use select or drop)")
		return nil
	}
	files := u.Pending()
	if len(files) == 0 {
		printlnFn("No files selected")
	}
	for i, f := range files {
		printlnFn(fmt.Sprintf("%3d. %-32s %10s", i+1, f.Name, filex.FormatSize(f.Size)))
	}
	if msg := u.Err(); msg != "" {
		printlnFn(msg)
	}
	printlnFn(fmt.Sprintf("Type 'upload' to %s", u.SubmitLabel()))
	return nil
}

// Remove drops entry n (1-based) from the batch.
func (a *App) Remove(ctx context.Context, n string) error {
	u := a.library.Uploader()
	if u == nil {
		return fmt.Errorf("%w: nothing selected", common.ErrValidation)
	}
	i, err := strconv.Atoi(n)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", common.ErrValidation, n)
	}
	if err := u.Remove(i - 1); err != nil {
		return err
	}
	return a.Pending(ctx)
}

// Upload submits the batch; on success the library is re-fetched and shown.
func (a *App) Upload(ctx context.Context) error {
	u := a.uploader()
	count := len(u.Pending())
	if err := u.Submit(ctx); err != nil {
		if errors.Is(err, common.ErrBusy) {
			printlnFn("Upload already in progress")
			return nil
		}
		printlnFn(u.Err())
		return nil
	}
	printlnFn(fmt.Sprintf("Uploaded %d file(s)", count))
	a.printFiles()
	return nil
}

// CancelUpload closes the panel and discards its batch.
func (a *App) CancelUpload(_ context.Context) error {
	if a.library.Uploader() == nil {
		return nil
	}
	a.library.ToggleUpload()
	printlnFn("Upload cancelled")
	return nil
}
