package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/dirnav/internal/listing"
)

type stubDrives struct {
	drives []listing.Drive
	err    error
}

func (s stubDrives) ListDrives(context.Context) ([]listing.Drive, error) {
	return s.drives, s.err
}

func newTestServer(t *testing.T, drives listing.DriveLister) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "photos", "2024"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, imaging.Save(imaging.New(300, 150, color.NRGBA{R: 200, A: 255}), filepath.Join(root, "photos", "wide.png")))

	srv := httptest.NewServer(New(listing.NewLocalService(root, false), drives, 100).Handler())
	t.Cleanup(srv.Close)
	return srv, root
}

func postList(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+listing.RouteListDirectory, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListDirectory(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := postList(t, srv, `{"path":"/photos/"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got listing.DirectoryContents
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "/photos", got.CurrentPath)
	require.NotNil(t, got.ParentPath)
	assert.Equal(t, "/", *got.ParentPath)
	assert.Equal(t, []listing.Directory{{Name: "2024", Path: "/photos/2024"}}, got.Directories)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "notes.txt", got.Files[0].Name)
	assert.Equal(t, "wide.png", got.Files[1].Name)
}

func TestListDirectory_Invalid(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing directory", `{"path":"/nope"}`, msgInvalidPath},
		{"file instead of directory", `{"path":"/photos/notes.txt"}`, msgInvalidPath},
		{"empty path", `{"path":""}`, msgInvalidPath},
		{"malformed body", `{"path":`, msgBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postList(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got listing.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.want, got.Error)
		})
	}
}

func TestListDirectory_WrongMethod(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + listing.RouteListDirectory)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestListDrives(t *testing.T) {
	srv, _ := newTestServer(t, stubDrives{drives: []listing.Drive{{Path: "/", Device: "/dev/sda1", Fstype: "ext4"}}})

	resp, err := http.Get(srv.URL + listing.RouteListDrives)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []listing.Drive
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []listing.Drive{{Path: "/", Device: "/dev/sda1", Fstype: "ext4"}}, got)
}

func TestListDrives_NoListerAndFailure(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + listing.RouteListDrives)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []listing.Drive
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got)
	assert.NotNil(t, got)

	failing, _ := newTestServer(t, stubDrives{err: errors.New("boom")})
	resp2, err := http.Get(failing.URL + listing.RouteListDrives)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp2.StatusCode)
}

func TestThumbnail(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + listing.RouteThumbnail + "?path=/photos/wide.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestThumbnail_Errors(t *testing.T) {
	srv, root := newTestServer(t, nil)
	png, err := os.ReadFile(filepath.Join(root, "photos", "wide.png"))
	require.NoError(t, err)
	// decodable bytes behind a non-image extension
	require.NoError(t, os.WriteFile(filepath.Join(root, "wide.bin"), png, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.png"), []byte("not a png"), 0644))

	tests := []struct {
		name  string
		query string
		code  int
	}{
		{"no path", "", http.StatusBadRequest},
		{"missing file", "?path=/photos/none.png", http.StatusNotFound},
		{"directory", "?path=/photos", http.StatusNotFound},
		{"not an image", "?path=/photos/notes.txt", http.StatusUnsupportedMediaType},
		{"image bytes without image extension", "?path=/wide.bin", http.StatusUnsupportedMediaType},
		{"undecodable image", "?path=/broken.png", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + listing.RouteThumbnail + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestHTTPServiceAgainstServer(t *testing.T) {
	srv, _ := newTestServer(t, stubDrives{drives: []listing.Drive{{Path: "/"}}})
	client := listing.NewHTTPService(srv.URL, listing.HTTPOptions{})

	got, err := client.ListDirectory(context.Background(), "/photos/2024")
	require.NoError(t, err)
	assert.Equal(t, "/photos/2024", got.CurrentPath)
	assert.Empty(t, got.Files)

	_, err = client.ListDirectory(context.Background(), "/missing")
	assert.ErrorIs(t, err, listing.ErrNotFound)

	drives, err := client.ListDrives(context.Background())
	require.NoError(t, err)
	assert.Len(t, drives, 1)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := New(listing.NewLocalService(t.TempDir(), false), nil, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
