package sweep

import "time"

// FileRecord describes one regular file found during a scan.
// Records are created fresh on every scan and never mutated.
type FileRecord struct {
	Path       string
	Size       int64
	AccessTime time.Time
}

// Snapshot is a point-in-time view of a directory subtree. Files are
// sorted ascending by access time, ties broken by path, so eviction
// order is reproducible across runs.
type Snapshot struct {
	Root      string
	TotalSize int64
	Files     []FileRecord
}

// Deletion records one file removed (or found already gone) during eviction.
type Deletion struct {
	Path string
	Size int64

	// AlreadyGone is set when the file vanished between scan and delete.
	// Its size still stops counting against the directory, but no bytes
	// were freed by us.
	AlreadyGone bool
}

// Failure records one file that could not be removed.
type Failure struct {
	Path string
	Err  error
}

// Report collects the per-file outcomes of one eviction pass.
type Report struct {
	Deleted       []Deletion
	Failed        []Failure
	FreedBytes    int64
	RemainingSize int64
}

// DeletedCount returns the number of files actually removed by this pass.
func (r Report) DeletedCount() int {
	n := 0
	for _, d := range r.Deleted {
		if !d.AlreadyGone {
			n++
		}
	}
	return n
}
