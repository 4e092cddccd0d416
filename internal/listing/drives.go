package listing

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/shirou/gopsutil/v3/disk"
)

// partitionsFunc is disk.PartitionsWithContext, replaced in tests.
type partitionsFunc func(ctx context.Context, all bool) ([]disk.PartitionStat, error)

// LocalDrives lists the mounted partitions of this machine.
type LocalDrives struct {
	// All includes pseudo filesystems such as proc and tmpfs.
	All bool

	partitions partitionsFunc
}

// NewLocalDrives creates a LocalDrives backed by gopsutil.
func NewLocalDrives(all bool) *LocalDrives {
	return &LocalDrives{All: all, partitions: disk.PartitionsWithContext}
}

// ListDrives returns one Drive per mount point, sorted by path.
func (d *LocalDrives) ListDrives(ctx context.Context) ([]Drive, error) {
	parts, err := d.partitions(ctx, d.All)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	seen := make(map[string]bool, len(parts))
	drives := make([]Drive, 0, len(parts))
	for _, p := range parts {
		mount := filepath.ToSlash(p.Mountpoint)
		if mount == "" || seen[mount] {
			continue
		}
		seen[mount] = true
		drives = append(drives, Drive{
			Path:   mount,
			Device: p.Device,
			Fstype: p.Fstype,
		})
	}

	sort.Slice(drives, func(i, j int) bool { return drives[i].Path < drives[j].Path })
	return drives, nil
}
