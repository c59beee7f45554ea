package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clouddrive/internal/client/access"
	"github.com/dmitrijs2005/clouddrive/internal/client/library"
	"github.com/dmitrijs2005/clouddrive/internal/filex"
)

// Open resolves a share token or link without using the session and offers
// to download the file.
func (a *App) Open(ctx context.Context, ref string) error {
	token, err := access.ParseToken(ref)
	if err != nil {
		return err
	}

	v := access.New(a.anon, a.log)
	if err := v.Resolve(ctx, token); err != nil {
		printlnFn("Access Denied:", v.Denied())
		printlnFn(access.LoginHint)
		return nil
	}

	shared, _ := v.File()
	printlnFn(fmt.Sprintf("File shared with you: %s (%s)", shared.File.OriginalName, filex.FormatSize(shared.File.Size)))
	if shared.ExpiresAt != nil {
		printlnFn("Link " + library.FormatExpiry(shared.ExpiresAt))
	}
	if url, err := v.DownloadURL(); err == nil {
		printlnFn("Download URL:", url)
	}

	answer, err := getSimpleText(a.reader, "Download now? [y/N]", a.out)
	if err != nil || !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		return nil
	}
	path, err := v.Download(ctx, a.config.DownloadDir)
	if err != nil {
		printlnFn(library.MsgDownloadFailed)
		return nil
	}
	printlnFn("Saved to", path)
	return nil
}
