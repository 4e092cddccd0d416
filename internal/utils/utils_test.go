package utils

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
)

func TestFileCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.JPG", CategoryImage},
		{"clip.mov", CategoryVideo},
		{"song.flac", CategoryAudio},
		{"README.md", CategoryText},
		{"report.pdf", CategoryDocument},
		{"budget.xlsx", CategorySpreadsheet},
		{"backup.tar", CategoryArchive},
		{"main.go", CategoryCode},
		{"config.toml", CategoryData},
		{"font.woff2", CategoryFont},
		{"Makefile", CategoryOther},
		{"blob.unknownext", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileCategory(tt.name))
		})
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("/photos/a.jpeg"))
	assert.False(t, IsImage("/photos/a.svg"))
	assert.False(t, IsImage("notes.txt"))
}

func TestCopyToClipboard(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available")
	}

	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	var got string
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	assert.NoError(t, CopyToClipboard("/Users/alice"))
	assert.Equal(t, "/Users/alice", got)

	clipboardWrite = func(string) error { return errors.New("denied") }
	assert.ErrorContains(t, CopyToClipboard("x"), "denied")
}
