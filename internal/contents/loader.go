// Package contents loads directory listings for the navigator and discards
// results that arrive after the user has already moved on.
package contents

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// DefaultTimeout bounds a single listing call.
const DefaultTimeout = 30 * time.Second

// Request identifies one load. Generation grows with every Begin call, so
// only the most recent request is current.
type Request struct {
	Path       string
	Generation uint64
}

// Result is the outcome of a load.
type Result struct {
	Request
	Contents *listing.DirectoryContents
	Err      error
}

// Stale reports whether a newer request was started after this one.
func (r Result) Stale(l *Loader) bool {
	return !l.IsCurrent(r.Request)
}

// Loader fetches listings through a listing.Service. Concurrent fetches of
// the same path share one backend call.
type Loader struct {
	service listing.Service
	timeout time.Duration

	group      singleflight.Group
	generation *atomic.Uint64
	fetches    *atomic.Int64
	shared     *atomic.Int64
}

// NewLoader creates a loader. A zero timeout means DefaultTimeout.
func NewLoader(service listing.Service, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		service:    service,
		timeout:    timeout,
		generation: atomic.NewUint64(0),
		fetches:    atomic.NewInt64(0),
		shared:     atomic.NewInt64(0),
	}
}

// Begin starts a new request for path and makes it the current one.
func (l *Loader) Begin(path string) Request {
	return Request{
		Path:       pathutil.Normalize(path),
		Generation: l.generation.Inc(),
	}
}

// IsCurrent reports whether req is the latest request.
func (l *Loader) IsCurrent(req Request) bool {
	return req.Generation == l.generation.Load()
}

// Fetch runs the listing for req. Callers check IsCurrent on the result
// before applying it.
func (l *Loader) Fetch(ctx context.Context, req Request) Result {
	if l.service == nil {
		return Result{Request: req, Err: fmt.Errorf("no listing service configured")}
	}

	v, err, shared := l.group.Do(req.Path, func() (interface{}, error) {
		l.fetches.Inc()
		// the flight outlives any single caller's cancellation
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		return l.service.ListDirectory(fctx, req.Path)
	})
	if shared {
		l.shared.Inc()
	}

	res := Result{Request: req, Err: err}
	if err == nil {
		res.Contents, _ = v.(*listing.DirectoryContents)
	}

	logrus.WithFields(logrus.Fields{
		"path":       req.Path,
		"generation": req.Generation,
		"shared":     shared,
		"current":    l.IsCurrent(req),
	}).Debug("contents: fetch finished")
	return res
}

// Load is Begin followed by Fetch.
func (l *Loader) Load(ctx context.Context, path string) Result {
	return l.Fetch(ctx, l.Begin(path))
}

// Stats returns the number of backend calls made and the number of fetches
// that reused an in-flight call.
func (l *Loader) Stats() (fetches, shared int64) {
	return l.fetches.Load(), l.shared.Load()
}
