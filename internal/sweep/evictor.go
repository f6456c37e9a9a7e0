package sweep

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lucasew/cacheclean/internal/errutil"
)

// Evictor deletes files from a snapshot, oldest access first, until the
// running total drops to a target size or the snapshot is exhausted.
type Evictor struct {
	// DryRun reports what would be deleted without touching the disk.
	DryRun bool

	// KeepEmptyDirs leaves directories emptied by eviction in place.
	KeepEmptyDirs bool
}

// Evict walks snap.Files in order, attempting deletions while the
// running size exceeds target. A file that is already gone counts as
// freed space but not as a deletion; any other removal failure is
// recorded and eviction moves on to the next file. A file is never
// attempted before every older-accessed file in the snapshot has been
// attempted.
func (e *Evictor) Evict(ctx context.Context, snap *Snapshot, target int64) Report {
	var report Report
	currentSize := snap.TotalSize

	for _, f := range snap.Files {
		if ctx.Err() != nil {
			break
		}
		if currentSize <= target {
			break
		}

		if e.DryRun {
			slog.Info("Would delete", "path", f.Path, "size", humanize.Bytes(uint64(f.Size)))
			report.Deleted = append(report.Deleted, Deletion{Path: f.Path, Size: f.Size})
			report.FreedBytes += f.Size
			currentSize -= f.Size
			continue
		}

		err := os.Remove(f.Path)
		switch {
		case err == nil:
			slog.Info("Deleted", "path", f.Path, "size", humanize.Bytes(uint64(f.Size)))
			report.Deleted = append(report.Deleted, Deletion{Path: f.Path, Size: f.Size})
			report.FreedBytes += f.Size
			currentSize -= f.Size
			if !e.KeepEmptyDirs {
				e.pruneEmptyParents(snap.Root, f.Path)
			}
		case os.IsNotExist(err):
			// Raced with another process; the space is gone either way.
			slog.Debug("File already gone", "path", f.Path)
			report.Deleted = append(report.Deleted, Deletion{Path: f.Path, Size: f.Size, AlreadyGone: true})
			currentSize -= f.Size
		default:
			errutil.LogMsg(err, "Failed to delete file", "path", f.Path)
			report.Failed = append(report.Failed, Failure{Path: f.Path, Err: err})
		}
	}

	report.RemainingSize = currentSize
	return report
}

// pruneEmptyParents removes directories left empty by a deletion,
// walking upward until a non-empty directory or the scan root.
func (e *Evictor) pruneEmptyParents(root, path string) {
	root = filepath.Clean(root)
	dir := filepath.Dir(path)
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		if err := os.Remove(dir); err != nil {
			// Not empty, or somebody else owns it now. Either way, stop.
			return
		}
		slog.Debug("Pruned empty directory", "path", dir)
		dir = filepath.Dir(dir)
	}
}
