package sweep

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"
)

// Scanner walks a directory subtree and produces access-time-ordered
// snapshots of its regular files.
type Scanner struct {
	filter Filter
}

// NewScanner returns a Scanner that omits files matched by filter.
// A nil filter scans everything.
func NewScanner(filter Filter) *Scanner {
	return &Scanner{filter: filter}
}

// Scan enumerates all regular files under root and returns them sorted
// ascending by last access time, ties broken by path. Symlinks and
// other non-regular entries are skipped. Files that vanish mid-scan are
// silently dropped; unreadable subdirectories are logged and skipped
// without aborting the scan.
//
// The access times come straight from the filesystem. Mount options
// like relatime or noatime make them coarse or frozen; the scanner
// reports whatever the kernel reports and does not try to compensate.
func (s *Scanner) Scan(ctx context.Context, root string) (*Snapshot, error) {
	snap := &Snapshot{Root: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if s.filter != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && s.filter.Excluded(rel) {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			// Vanished between enumeration and stat.
			if os.IsNotExist(err) {
				return nil
			}
			slog.Warn("Failed to stat file", "path", path, "error", err)
			return nil
		}

		snap.Files = append(snap.Files, FileRecord{
			Path:       path,
			Size:       info.Size(),
			AccessTime: accessTime(info),
		})
		snap.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(snap.Files, func(i, j int) bool {
		a, b := snap.Files[i], snap.Files[j]
		if !a.AccessTime.Equal(b.AccessTime) {
			return a.AccessTime.Before(b.AccessTime)
		}
		return a.Path < b.Path
	})

	return snap, nil
}

// accessTime extracts the last access time from a stat result, falling
// back to the modification time when the platform data is unavailable.
func accessTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}
