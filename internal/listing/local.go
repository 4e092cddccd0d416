package listing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// LocalService lists directories of the local filesystem. Navigator paths
// are resolved below Root, so "/" maps to Root itself.
type LocalService struct {
	Root       string
	ShowHidden bool
}

// NewLocalService creates a LocalService rooted at root.
func NewLocalService(root string, showHidden bool) *LocalService {
	if root == "" {
		root = string(filepath.Separator)
	}
	return &LocalService{Root: filepath.Clean(root), ShowHidden: showHidden}
}

// Resolve maps a navigator path to an OS path below Root.
func (s *LocalService) Resolve(p string) string {
	rel := filepath.FromSlash(pathutil.Normalize(p))
	return filepath.Join(s.Root, rel)
}

// ListDirectory reads the directory at p.
func (s *LocalService) ListDirectory(ctx context.Context, p string) (*DirectoryContents, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p = pathutil.Normalize(p)
	osPath := s.Resolve(p)

	info, err := os.Stat(osPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, ErrNotDirectory)
	}

	entries, err := os.ReadDir(osPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
	}

	contents := newContents(p)
	for _, e := range entries {
		name := norm.NFC.String(e.Name())
		if !s.ShowHidden && isHidden(name) {
			continue
		}

		childPath := pathutil.Join(p, name)
		fullPath := filepath.Join(osPath, e.Name())

		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		if isDir {
			contents.Directories = append(contents.Directories, Directory{Name: name, Path: childPath})
			continue
		}

		fi, err := e.Info()
		if err != nil {
			logrus.Debugf("listing: skipping %s: %v", fullPath, err)
			continue
		}
		contents.Files = append(contents.Files, FileInfo{
			Name:         name,
			Path:         childPath,
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		})
	}

	contents.Sort()
	logrus.Debugf("listing: %s has %d directories and %d files", p, len(contents.Directories), len(contents.Files))
	return contents, nil
}
