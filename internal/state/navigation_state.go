package state

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/history"
	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// Keys under which the navigation state is persisted.
const (
	KeyCurrentPath  = "currentPath"
	KeyPathHistory  = "pathHistory"
	KeyHistoryIndex = "historyIndex"
)

// NavigationState is the persisted form of the navigator's location.
type NavigationState struct {
	CurrentPath string
	History     []string
	Cursor      int
}

// DefaultNavigation returns the state of a fresh session rooted at home.
func DefaultNavigation(home string) NavigationState {
	home = pathutil.Normalize(home)
	return NavigationState{
		CurrentPath: home,
		History:     []string{home},
		Cursor:      0,
	}
}

// Validate checks the invariants a restored state must satisfy.
func (ns NavigationState) Validate() error {
	if err := history.Validate(ns.History, ns.Cursor); err != nil {
		return err
	}
	if ns.History[ns.Cursor] != ns.CurrentPath {
		return fmt.Errorf("current path %q does not match history entry %q", ns.CurrentPath, ns.History[ns.Cursor])
	}
	return nil
}

// LoadNavigation reads the three navigation keys from store. When any key is
// missing or the values are inconsistent, the whole state falls back to
// DefaultNavigation(home).
func LoadNavigation(store Store, home string) NavigationState {
	ns, err := readNavigation(store)
	if err != nil {
		logrus.Debugf("Resetting navigation state to %s: %v", pathutil.Normalize(home), err)
		return DefaultNavigation(home)
	}
	return ns
}

func readNavigation(store Store) (NavigationState, error) {
	var ns NavigationState
	if store == nil {
		return ns, fmt.Errorf("no store")
	}

	if err := readKey(store, KeyCurrentPath, &ns.CurrentPath); err != nil {
		return ns, err
	}
	if err := readKey(store, KeyPathHistory, &ns.History); err != nil {
		return ns, err
	}
	if err := readKey(store, KeyHistoryIndex, &ns.Cursor); err != nil {
		return ns, err
	}

	if err := ns.Validate(); err != nil {
		return ns, err
	}
	return ns, nil
}

func readKey(store Store, key string, dst interface{}) error {
	raw, ok := store.Get(key)
	if !ok {
		return fmt.Errorf("key %s is missing", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("key %s is corrupt: %w", key, err)
	}
	return nil
}

// SaveNavigation writes all three keys. Every key is attempted even if an
// earlier one fails; the first error is returned.
func SaveNavigation(store Store, ns NavigationState) error {
	if store == nil {
		return nil
	}

	values := []struct {
		key   string
		value interface{}
	}{
		{KeyCurrentPath, ns.CurrentPath},
		{KeyPathHistory, ns.History},
		{KeyHistoryIndex, ns.Cursor},
	}

	var firstErr error
	for _, kv := range values {
		data, err := json.Marshal(kv.value)
		if err == nil {
			err = store.Set(kv.key, data)
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to persist %s: %w", kv.key, err)
		}
	}
	return firstErr
}
