// Package listing fetches the children of a directory from a backend: the
// local filesystem, the dirnav HTTP API or an S3/R2 bucket.
package listing

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

var (
	// ErrNotFound means the requested path does not exist.
	ErrNotFound = errors.New("path not found")
	// ErrNotDirectory means the requested path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Directory is a child directory.
type Directory struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FileInfo is a child file.
type FileInfo struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	IsDirectory  bool      `json:"isDirectory"`
}

// DirectoryContents is the listing of one directory.
type DirectoryContents struct {
	CurrentPath string      `json:"currentPath"`
	ParentPath  *string     `json:"parentPath"`
	Directories []Directory `json:"directories"`
	Files       []FileInfo  `json:"files"`
}

// Drive is a mounted volume.
type Drive struct {
	Path   string `json:"path"`
	Device string `json:"device"`
	Fstype string `json:"fstype"`
}

// Service lists directories.
type Service interface {
	ListDirectory(ctx context.Context, path string) (*DirectoryContents, error)
}

// DriveLister lists mounted volumes.
type DriveLister interface {
	ListDrives(ctx context.Context) ([]Drive, error)
}

// newContents creates an empty listing for path with its parent filled in.
func newContents(path string) *DirectoryContents {
	c := &DirectoryContents{
		CurrentPath: path,
		Directories: []Directory{},
		Files:       []FileInfo{},
	}
	if !pathutil.IsRoot(path) {
		parent := pathutil.Parent(path)
		c.ParentPath = &parent
	}
	return c
}

// Sort orders directories and files by name.
func (c *DirectoryContents) Sort() {
	sort.Slice(c.Directories, func(i, j int) bool {
		return c.Directories[i].Name < c.Directories[j].Name
	})
	sort.Slice(c.Files, func(i, j int) bool {
		return c.Files[i].Name < c.Files[j].Name
	})
}

// Len returns the number of entries.
func (c *DirectoryContents) Len() int {
	return len(c.Directories) + len(c.Files)
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
