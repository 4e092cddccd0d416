// Package server exposes a local directory tree over the dirnav HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/pathutil"
	"github.com/HaiFongPan/dirnav/internal/utils"
)

const (
	msgInvalidPath = "Invalid directory path"
	msgInvalidFile = "Invalid file path"
	msgBadRequest  = "Invalid request body"

	// DefaultThumbnailSize is the bounding square of generated thumbnails.
	DefaultThumbnailSize = 100
)

// Backend lists directories and maps navigator paths to files on disk.
type Backend interface {
	listing.Service
	Resolve(p string) string
}

// Server serves the listing API.
type Server struct {
	backend       Backend
	drives        listing.DriveLister
	thumbnailSize int
}

// New creates a server. drives may be nil, in which case list-drives
// returns an empty list.
func New(backend Backend, drives listing.DriveLister, thumbnailSize int) *Server {
	if thumbnailSize <= 0 {
		thumbnailSize = DefaultThumbnailSize
	}
	return &Server{
		backend:       backend,
		drives:        drives,
		thumbnailSize: thumbnailSize,
	}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+listing.RouteListDirectory, s.handleListDirectory)
	mux.HandleFunc("GET "+listing.RouteListDrives, s.handleListDrives)
	mux.HandleFunc("GET "+listing.RouteThumbnail, s.handleThumbnail)
	return logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("server: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logrus.Info("server: shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleListDirectory(w http.ResponseWriter, r *http.Request) {
	var req listing.ListDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, msgInvalidPath)
		return
	}

	contents, err := s.backend.ListDirectory(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) || errors.Is(err, listing.ErrNotDirectory) {
			writeError(w, http.StatusBadRequest, msgInvalidPath)
			return
		}
		logrus.WithError(err).WithField("path", req.Path).Error("server: list directory failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

func (s *Server) handleListDrives(w http.ResponseWriter, r *http.Request) {
	drives := []listing.Drive{}
	if s.drives != nil {
		found, err := s.drives.ListDrives(r.Context())
		if err != nil {
			logrus.WithError(err).Error("server: list drives failed")
			writeError(w, http.StatusInternalServerError, "Failed to list drives")
			return
		}
		drives = append(drives, found...)
	}
	writeJSON(w, http.StatusOK, drives)
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	if strings.TrimSpace(p) == "" {
		writeError(w, http.StatusBadRequest, msgInvalidFile)
		return
	}

	osPath := s.backend.Resolve(pathutil.Normalize(p))
	info, err := os.Stat(osPath)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, msgInvalidFile)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !utils.IsImage(osPath) {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("Not an image: %s", pathutil.Base(p)))
		return
	}

	img, err := imaging.Open(osPath, imaging.AutoOrientation(true))
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("Not an image: %s", pathutil.Base(p)))
		return
	}

	thumb := imaging.Fit(img, s.thumbnailSize, s.thumbnailSize, imaging.Lanczos)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "max-age=300")
	if err := imaging.Encode(w, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		logrus.WithError(err).WithField("path", p).Warn("server: thumbnail encode failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("server: failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, listing.ErrorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("server: request")
	})
}
