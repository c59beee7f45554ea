// Package netx holds HTTP body helpers that are independent of the backend API.
package netx

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// FilePart is one file of a multipart/form-data body.
type FilePart struct {
	Field string
	Name  string
	Path  string
}

// MultipartBody streams parts from disk as a multipart/form-data body. It
// returns the body and its Content-Type. Files are opened lazily while the
// body is read; an open or read failure surfaces as a read error on the body.
// The caller must close the body.
func MultipartBody(parts []FilePart) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		for _, p := range parts {
			if err := writePart(mw, p); err != nil {
				_ = pw.CloseWithError(err)
				return
			}
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}

func writePart(mw *multipart.Writer, p FilePart) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.Path, err)
	}
	defer f.Close()

	name := p.Name
	if name == "" {
		name = filepath.Base(p.Path)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.Field), escapeQuotes(name)))
	h.Set("Content-Type", ContentTypeOf(name))

	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("read %s: %w", p.Path, err)
	}
	return nil
}

// Types the backend accepts that are missing from Go's built-in table on
// hosts without a mime.types file.
var fallbackTypes = map[string]string{
	".txt": "text/plain",
	".csv": "text/csv",
}

// ContentTypeOf guesses a MIME type from the file extension.
func ContentTypeOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := fallbackTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
