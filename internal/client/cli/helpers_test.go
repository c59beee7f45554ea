package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/config"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func fmtAny(v any) string { return fmt.Sprint(v) }

// fakeDrive is an in-memory backend: one account (alice/secret, token
// "tok"), a fixed library and one valid share token ("good").
type fakeDrive struct {
	mu        sync.Mutex
	uploads   []string
	sharedTo  []string
	downloads int
	sent      map[string]any
}

func (f *fakeDrive) withLock(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func writeEnvelope(w http.ResponseWriter, status int, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": status < 300, "message": msg, "data": data})
}

var aliceJSON = map[string]any{"id": "u1", "name": "Alice", "email": "alice@example.org"}

func (f *fakeDrive) routes() http.Handler {
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				writeEnvelope(w, http.StatusUnauthorized, nil, "Not authorized")
				return
			}
			next(w, r)
		}
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["email"] != "alice@example.org" || in["password"] != "secret" {
				writeEnvelope(w, http.StatusUnauthorized, nil, "Invalid credentials")
				return
			}
			writeEnvelope(w, http.StatusOK, map[string]any{"user": aliceJSON, "token": "tok"}, "")
		})
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["email"] == "taken@example.org" {
				writeEnvelope(w, http.StatusBadRequest, nil, "User already exists")
				return
			}
			writeEnvelope(w, http.StatusCreated, map[string]any{"user": aliceJSON, "token": "tok"}, "")
		})
		r.Get("/files/my", authed(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, map[string]any{"files": []map[string]any{
				{"_id": "f1", "originalName": "report.pdf", "mimeType": "application/pdf", "size": 2048, "uploadDate": "2024-03-01T10:00:00Z"},
				{"_id": "f2", "originalName": "holiday.png", "mimeType": "image/png", "size": 1536, "uploadDate": "2024-03-02T10:00:00Z"},
			}}, "")
		}))
		r.Post("/files/upload", authed(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.withLock(func() {
				for _, fh := range r.MultipartForm.File["files"] {
					f.uploads = append(f.uploads, fh.Filename)
				}
			})
			writeEnvelope(w, http.StatusCreated, nil, "")
		}))
		r.Get("/files/download/{id}", func(w http.ResponseWriter, r *http.Request) {
			f.withLock(func() { f.downloads++ })
			bearer := r.Header.Get("Authorization") == "Bearer tok"
			token := r.URL.Query().Get("token") == "good"
			if !bearer && !token {
				writeEnvelope(w, http.StatusUnauthorized, nil, "Not authorized")
				return
			}
			_, _ = io.WriteString(w, "content of "+chi.URLParam(r, "id"))
		})
		r.Post("/share/user", authed(func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			f.withLock(func() { f.sharedTo = append(f.sharedTo, in["fileId"]+":"+in["sharedWithEmail"]) })
			writeEnvelope(w, http.StatusOK, nil, "")
		}))
		r.Post("/share/link", authed(func(w http.ResponseWriter, r *http.Request) {
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			if _, create := in["expiresAt"]; !create {
				writeEnvelope(w, http.StatusNotFound, nil, "No link")
				return
			}
			f.withLock(func() { f.sent = in })
			writeEnvelope(w, http.StatusOK, map[string]any{"shareToken": "good"}, "")
		}))
		r.Get("/share/access/{token}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "token") != "good" {
				writeEnvelope(w, http.StatusForbidden, nil, "Invalid or expired share link")
				return
			}
			writeEnvelope(w, http.StatusOK, map[string]any{
				"file": map[string]any{"id": "f1", "originalName": "report.pdf", "mimeType": "application/pdf", "size": 2048},
			}, "")
		})
	})
	return r
}

type harness struct {
	drive *fakeDrive
	cfg   *config.Config
	out   *[]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	drive := &fakeDrive{}
	srv := httptest.NewServer(drive.routes())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = srv.URL + "/api"
	cfg.WebOrigin = "http://web.test"
	cfg.DatabasePath = filepath.Join(dir, "clouddrive.db")
	cfg.DownloadDir = filepath.Join(dir, "downloads")
	cfg.CloseDelay = 10 * time.Millisecond

	return &harness{drive: drive, cfg: cfg, out: stubPrint(t)}
}

// app builds an App whose prompts read the given lines.
func (h *harness) app(t *testing.T, lines ...string) *App {
	t.Helper()
	in := strings.Join(lines, "\n")
	if len(lines) > 0 {
		in += "\n"
	}
	a, err := NewApp(context.Background(), h.cfg, logging.Discard(), strings.NewReader(in))
	require.NoError(t, err)
	a.out = io.Discard
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func (h *harness) printed() string {
	return strings.Join(*h.out, "\n")
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
