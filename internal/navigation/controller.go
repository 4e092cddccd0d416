// Package navigation owns the navigator's location and history. It resolves
// target paths, advances or rewinds the history, writes the result through to
// the persisted store and tells the data layer which listing went stale.
package navigation

import (
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/history"
	"github.com/HaiFongPan/dirnav/internal/pathutil"
	"github.com/HaiFongPan/dirnav/internal/state"
)

// Invalidator receives a notification after every completed transition.
type Invalidator interface {
	Invalidate(path string)
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func(path string)

// Invalidate calls f(path).
func (f InvalidatorFunc) Invalidate(path string) { f(path) }

// Controller is the navigator state machine. It is not safe for concurrent
// use; callers drive it from a single goroutine.
type Controller struct {
	home        string
	hist        history.History
	store       state.Store
	invalidator Invalidator
}

// NewController restores the navigation state from store, falling back to a
// fresh session at home. store and inv may be nil.
func NewController(store state.Store, home string, inv Invalidator) *Controller {
	home = pathutil.Normalize(home)
	ns := state.LoadNavigation(store, home)

	hist, err := history.Restore(ns.History, ns.Cursor)
	if err != nil {
		logrus.Warnf("navigation: discarding restored history: %v", err)
		hist = history.New(home)
	}

	c := &Controller{
		home:        home,
		hist:        hist,
		store:       store,
		invalidator: inv,
	}
	logrus.Debugf("navigation: starting at %s (history %d, cursor %d)", c.CurrentPath(), hist.Len(), hist.Cursor())
	return c
}

// Resolve computes the path NavigateToPath would move to without moving.
func (c *Controller) Resolve(input string) string {
	if pathutil.IsAbsolute(input) {
		return pathutil.Normalize(input)
	}
	return pathutil.Join(c.CurrentPath(), input)
}

// NavigateToPath moves to input, which is either absolute or relative to the
// current path, and returns the new current path.
//
// Moving to the path that is already current does not add a history entry;
// the forward branch is still dropped and the listing is still invalidated.
func (c *Controller) NavigateToPath(input string) string {
	target := c.Resolve(input)

	if target == c.CurrentPath() {
		c.hist = c.hist.TruncateForward()
	} else {
		c.hist = c.hist.Push(target)
	}

	logrus.WithFields(logrus.Fields{
		"input":  input,
		"target": target,
		"cursor": c.hist.Cursor(),
	}).Debug("navigation: navigate")

	c.commit()
	return target
}

// NavigateUp moves to the parent of the current path. At the root it stays
// at the root.
func (c *Controller) NavigateUp() string {
	return c.NavigateToPath(pathutil.Normalize(c.CurrentPath() + "/.."))
}

// NavigateBack moves to the previous history entry. It reports false and
// changes nothing at the oldest entry.
func (c *Controller) NavigateBack() bool {
	next, ok := c.hist.Back()
	if !ok {
		logrus.Debug("navigation: back ignored, at oldest entry")
		return false
	}
	c.hist = next
	c.commit()
	return true
}

// NavigateForward moves to the next history entry. It reports false and
// changes nothing at the newest entry.
func (c *Controller) NavigateForward() bool {
	next, ok := c.hist.Forward()
	if !ok {
		logrus.Debug("navigation: forward ignored, at newest entry")
		return false
	}
	c.hist = next
	c.commit()
	return true
}

// NavigateHome moves to the home path.
func (c *Controller) NavigateHome() string {
	return c.NavigateToPath(c.home)
}

// NavigateToBreadcrumb moves to the path made of the first i+1 segments of
// PathParts. It reports false when i is out of range.
func (c *Controller) NavigateToBreadcrumb(i int) bool {
	p, ok := c.BreadcrumbPath(i)
	if !ok {
		return false
	}
	c.NavigateToPath(p)
	return true
}

// BreadcrumbPath returns "/" joined with the first i+1 segments of PathParts.
func (c *Controller) BreadcrumbPath(i int) (string, bool) {
	parts := c.PathParts()
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return pathutil.FromParts(parts[:i+1]), true
}

// CurrentPath returns the current location.
func (c *Controller) CurrentPath() string {
	return c.hist.Current()
}

// PathParts returns the segments of the current path; empty at the root.
func (c *Controller) PathParts() []string {
	return pathutil.Parts(c.CurrentPath())
}

// CanNavigateBack reports whether NavigateBack would move.
func (c *Controller) CanNavigateBack() bool {
	return c.hist.CanBack()
}

// CanNavigateForward reports whether NavigateForward would move.
func (c *Controller) CanNavigateForward() bool {
	return c.hist.CanForward()
}

// Home returns the home path.
func (c *Controller) Home() string {
	return c.home
}

// History returns a copy of the visited paths, oldest first.
func (c *Controller) History() []string {
	return c.hist.Entries()
}

// Cursor returns the index of the current path in History.
func (c *Controller) Cursor() int {
	return c.hist.Cursor()
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() state.NavigationState {
	return state.NavigationState{
		CurrentPath: c.hist.Current(),
		History:     c.hist.Entries(),
		Cursor:      c.hist.Cursor(),
	}
}

// commit persists the new state and emits the invalidation. A failed write
// is logged and otherwise ignored; the in-memory state stays authoritative.
func (c *Controller) commit() {
	if err := state.SaveNavigation(c.store, c.State()); err != nil {
		logrus.Warnf("navigation: failed to persist state: %v", err)
	}
	if c.invalidator != nil {
		c.invalidator.Invalidate(c.CurrentPath())
	}
}
