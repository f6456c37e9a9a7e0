// Package minfree triggers eviction when the filesystem holding the
// cache runs low on available space, regardless of how much of that
// space the cache itself occupies.
package minfree

import (
	"fmt"
	"log/slog"
	"syscall"
)

type Policy struct {
	Path         string
	MinFreeBytes int64
}

func (p *Policy) BytesToFree(currentSize int64) (int64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(p.Path, &stat); err != nil {
		return 0, fmt.Errorf("failed to check disk space: %w", err)
	}

	// Available blocks * block size
	freeSpace := int64(stat.Bavail) * int64(stat.Bsize)

	slog.Debug("Disk space check", "path", p.Path, "free_bytes", freeSpace, "min_required", p.MinFreeBytes)

	if freeSpace < p.MinFreeBytes {
		return p.MinFreeBytes - freeSpace, nil
	}
	return 0, nil
}
