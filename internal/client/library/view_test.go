package library

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeBackend struct {
	files     []models.FileRecord
	listErr   error
	listCalls int

	content     map[string]string
	downloadErr error

	uploadErr error
	shareErr  error
}

func (f *fakeBackend) ListFiles(context.Context) ([]models.FileRecord, error) {
	f.listCalls++
	return f.files, f.listErr
}

func (f *fakeBackend) Download(_ context.Context, id string) (io.ReadCloser, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return io.NopCloser(strings.NewReader(f.content[id])), nil
}

func (f *fakeBackend) Upload(context.Context, []models.PendingFile) error { return f.uploadErr }

func (f *fakeBackend) ShareWithUser(context.Context, string, string) error { return f.shareErr }

func (f *fakeBackend) LookupLink(context.Context, string) (models.ShareLink, error) {
	return models.ShareLink{}, errors.New("none")
}

func (f *fakeBackend) CreateLink(context.Context, string, *time.Time) (models.ShareLink, error) {
	return models.ShareLink{ShareToken: "t"}, nil
}

var sample = []models.FileRecord{
	{ID: "1", OriginalName: "Report.PDF", MimeType: "application/pdf"},
	{ID: "2", OriginalName: "holiday.png", MimeType: "image/png"},
	{ID: "3", OriginalName: "data-report.csv", MimeType: "text/csv"},
}

// ---- tests ----

func TestLoad_States(t *testing.T) {
	b := &fakeBackend{files: sample}
	v := New(b, Options{})
	assert.Equal(t, StateLoading, v.State())

	require.NoError(t, v.Load(context.Background()))
	assert.Equal(t, StateReady, v.State())
	assert.Empty(t, v.Err())
	assert.Len(t, v.Files(), 3)

	b.listErr = errors.New("503")
	require.Error(t, v.Load(context.Background()))
	assert.Equal(t, StateFailed, v.State())
	assert.Equal(t, "Failed to load files", v.Err())
	assert.Empty(t, v.EmptyMessage())
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"report", []string{"1", "3"}},
		{"REPORT", []string{"1", "3"}},
		{".png", []string{"2"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := []string{}
			for _, f := range Filter(sample, tt.query) {
				got = append(got, f.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestVisibleAndEmptyMessage(t *testing.T) {
	b := &fakeBackend{}
	v := New(b, Options{})
	require.NoError(t, v.Load(context.Background()))
	assert.Equal(t, "No files yet", v.EmptyMessage())

	b.files = sample
	require.NoError(t, v.Load(context.Background()))
	assert.Empty(t, v.EmptyMessage())

	v.SetQuery("nothing-matches")
	assert.Empty(t, v.Visible())
	assert.Equal(t, "No files found", v.EmptyMessage())
	assert.Len(t, v.Files(), 3, "query does not touch the fetched list")

	v.SetQuery("holiday")
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "2", v.Visible()[0].ID)
}

func TestFind(t *testing.T) {
	v := New(&fakeBackend{files: sample}, Options{})
	require.NoError(t, v.Load(context.Background()))

	f, ok := v.Find("2")
	require.True(t, ok)
	assert.Equal(t, "holiday.png", f.OriginalName)
	_, ok = v.Find("nope")
	assert.False(t, ok)
}

func TestDownload_WritesOriginalName(t *testing.T) {
	v := New(&fakeBackend{content: map[string]string{"1": "%PDF-1.4"}}, Options{})
	dir := filepath.Join(t.TempDir(), "downloads")

	path, err := v.Download(context.Background(), sample[0], dir)
	require.NoError(t, err)
	assert.Equal(t, "Report.PDF", filepath.Base(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestDownload_FailureLeavesNothing(t *testing.T) {
	v := New(&fakeBackend{downloadErr: errors.New("404")}, Options{})
	dir := t.TempDir()

	_, err := v.Download(context.Background(), sample[0], dir)
	require.ErrorContains(t, err, "Failed to download file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestToggleUpload_SuccessRefreshes(t *testing.T) {
	b := &fakeBackend{files: sample}
	v := New(b, Options{})
	require.NoError(t, v.Load(context.Background()))

	u := v.ToggleUpload()
	require.NotNil(t, u)
	assert.Same(t, u, v.Uploader())

	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hi"), 0o600))
	require.NoError(t, u.Select([]string{p}))
	require.NoError(t, u.Submit(context.Background()))
	assert.Equal(t, 2, b.listCalls)

	assert.Nil(t, v.ToggleUpload())
	assert.Nil(t, v.Uploader())
	assert.Empty(t, u.Pending())
}

func TestToggleUpload_DiscardsPendingBatch(t *testing.T) {
	v := New(&fakeBackend{}, Options{})
	u := v.ToggleUpload()
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hi"), 0o600))
	require.NoError(t, u.Select([]string{p}))

	v.ToggleUpload()
	assert.Empty(t, u.Pending())

	again := v.ToggleUpload()
	assert.NotSame(t, u, again)
	assert.Empty(t, again.Pending())
}

func TestOpenShare_SuccessRefreshesAndCloseDetaches(t *testing.T) {
	b := &fakeBackend{files: sample}
	v := New(b, Options{WebOrigin: "http://web", CloseDelay: time.Hour})
	require.NoError(t, v.Load(context.Background()))

	d := v.OpenShare(sample[1])
	assert.Same(t, d, v.Share())
	assert.Equal(t, "2", d.File().ID)

	d.SetEmail("bob@example.org")
	require.NoError(t, d.ShareWithUser(context.Background()))
	assert.Equal(t, 2, b.listCalls)

	d.Close()
	assert.Nil(t, v.Share())
}

func TestOpenShare_ReplacesOpenDialog(t *testing.T) {
	v := New(&fakeBackend{}, Options{})
	first := v.OpenShare(sample[0])
	second := v.OpenShare(sample[1])

	assert.False(t, first.IsOpen())
	assert.True(t, second.IsOpen())
	assert.Same(t, second, v.Share())
}
