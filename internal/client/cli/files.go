package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/clouddrive/internal/client/library"
	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/filex"
)

// List re-fetches the library and prints it filtered by query.
func (a *App) List(ctx context.Context, query string) error {
	a.library.SetQuery(query)
	_ = a.library.Load(ctx)
	a.printFiles()
	return nil
}

// Search filters the already fetched list without asking the backend.
func (a *App) Search(ctx context.Context, query string) error {
	if a.library.State() != library.StateReady {
		_ = a.library.Load(ctx)
	}
	a.library.SetQuery(query)
	a.printFiles()
	return nil
}

func (a *App) printFiles() {
	if msg := a.library.Err(); msg != "" {
		printlnFn(msg)
		return
	}
	if msg := a.library.EmptyMessage(); msg != "" {
		printlnFn(msg)
		return
	}
	for i, f := range a.library.Visible() {
		printlnFn(fmt.Sprintf("%3d. %-32s %-5s %10s  %s  [%s]",
			i+1, f.OriginalName, library.Kind(f.MimeType), filex.FormatSize(f.Size), library.FormatDate(f.UploadDate), f.ID))
	}
}

// resolveFile maps a list number (as last printed) or a file id to a file.
func (a *App) resolveFile(ctx context.Context, ref string) (models.FileRecord, error) {
	if ref == "" {
		return models.FileRecord{}, fmt.Errorf("%w: give a list number or file id", common.ErrValidation)
	}
	if a.library.State() != library.StateReady {
		if err := a.library.Load(ctx); err != nil {
			return models.FileRecord{}, errors.New(library.MsgLoadFailed)
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		visible := a.library.Visible()
		if n >= 1 && n <= len(visible) {
			return visible[n-1], nil
		}
	}
	if f, ok := a.library.Find(ref); ok {
		return f, nil
	}
	return models.FileRecord{}, fmt.Errorf("%w: no file %q", common.ErrNotFound, ref)
}

// Download saves a library file into the download directory.
func (a *App) Download(ctx context.Context, ref string) error {
	f, err := a.resolveFile(ctx, ref)
	if err != nil {
		return err
	}
	path, err := a.library.Download(ctx, f, a.config.DownloadDir)
	if err != nil {
		printlnFn(library.MsgDownloadFailed)
		return nil
	}
	printlnFn("Saved to", path)
	return nil
}
