package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New("/Users/alice/")

	assert.Equal(t, "/Users/alice", h.Current())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanBack())
	assert.False(t, h.CanForward())
}

func TestPush_AppendsAndMovesCursor(t *testing.T) {
	h := New("/a").Push("/b").Push("/c")

	assert.Equal(t, []string{"/a", "/b", "/c"}, h.Entries())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, "/c", h.Current())
}

func TestPush_TruncatesForwardBranch(t *testing.T) {
	h := New("/a").Push("/b").Push("/c")

	h, ok := h.Back()
	require.True(t, ok)
	h, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, "/a", h.Current())

	h = h.Push("/x")
	assert.Equal(t, []string{"/a", "/x"}, h.Entries())
	assert.Equal(t, 1, h.Cursor())
	assert.False(t, h.CanForward())
}

func TestPush_DoesNotModifyReceiver(t *testing.T) {
	base := New("/a").Push("/b").Push("/c")
	back, ok := base.Back()
	require.True(t, ok)

	branched := back.Push("/x")

	assert.Equal(t, []string{"/a", "/b", "/c"}, base.Entries())
	assert.Equal(t, []string{"/a", "/b", "/c"}, back.Entries())
	assert.Equal(t, []string{"/a", "/b", "/x"}, branched.Entries())
}

func TestBackForward_Bounds(t *testing.T) {
	h := New("/a")

	same, ok := h.Back()
	assert.False(t, ok)
	assert.Equal(t, h, same)

	same, ok = h.Forward()
	assert.False(t, ok)
	assert.Equal(t, h, same)
}

func TestBackThenForward_RestoresCurrent(t *testing.T) {
	h := New("/a").Push("/b")
	before := h.Current()

	h, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "/a", h.Current())
	assert.True(t, h.CanForward())

	h, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, before, h.Current())
}

func TestTruncateForward(t *testing.T) {
	h := New("/a").Push("/b").Push("/c")
	h, _ = h.Back()

	cut := h.TruncateForward()
	assert.Equal(t, []string{"/a", "/b"}, cut.Entries())
	assert.Equal(t, "/b", cut.Current())
	assert.False(t, cut.CanForward())

	// receiver untouched
	assert.Equal(t, 3, h.Len())

	// no-op at the newest entry
	assert.Equal(t, cut, cut.TruncateForward())
}

func TestRestore(t *testing.T) {
	h, err := Restore([]string{"/a", "/b"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "/b", h.Current())
	assert.True(t, h.CanBack())

	_, err = Restore(nil, 0)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Restore([]string{"/a"}, 1)
	assert.Error(t, err)

	_, err = Restore([]string{"/a"}, -1)
	assert.Error(t, err)

	_, err = Restore([]string{"/a", "b/../c"}, 0)
	assert.Error(t, err)
}

func TestRestore_CopiesInput(t *testing.T) {
	entries := []string{"/a", "/b"}
	h, err := Restore(entries, 0)
	require.NoError(t, err)

	entries[0] = "/mutated"
	assert.Equal(t, "/a", h.Current())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		cursor  int
		wantErr bool
	}{
		{"single", []string{"/"}, 0, false},
		{"cursor at end", []string{"/a", "/a/b"}, 1, false},
		{"empty", nil, 0, true},
		{"cursor past end", []string{"/a"}, 1, true},
		{"negative cursor", []string{"/a"}, -1, true},
		{"trailing slash", []string{"/a/"}, 0, true},
		{"relative entry", []string{"a"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries, tt.cursor)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
