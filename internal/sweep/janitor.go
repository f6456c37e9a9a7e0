package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"github.com/lucasew/cacheclean/internal/sweep/policy"
)

// Janitor drives the repeating scan-decide-evict cycle over a cache
// directory. Cycles never overlap: each one runs to completion before
// the next starts, and a sweep triggered from outside the loop is
// collapsed into any cycle already in flight.
type Janitor struct {
	root     string
	scanner  *Scanner
	evictor  *Evictor
	policies []policy.Policy
	interval time.Duration

	g singleflight.Group
}

// NewJanitor creates a Janitor over root using the given scanner,
// evictor, and capacity policies.
func NewJanitor(root string, scanner *Scanner, evictor *Evictor, policies []policy.Policy, interval time.Duration) *Janitor {
	return &Janitor{
		root:     root,
		scanner:  scanner,
		evictor:  evictor,
		policies: policies,
		interval: interval,
	}
}

// Run performs an immediate sweep and then one per interval until ctx
// is cancelled. The loop has no natural termination; cancellation
// between cycles is the only clean exit.
func (j *Janitor) Run(ctx context.Context) {
	j.Sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Janitor stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs a single scan-decide-evict cycle and returns its report.
// Concurrent callers share one cycle. A failed scan aborts the cycle
// with an empty report; the caller's loop keeps running.
func (j *Janitor) Sweep(ctx context.Context) (Report, error) {
	v, err, _ := j.g.Do("sweep", func() (interface{}, error) {
		return j.sweep(ctx)
	})
	if err != nil {
		return Report{}, err
	}
	return v.(Report), nil
}

func (j *Janitor) sweep(ctx context.Context) (Report, error) {
	start := time.Now()

	snap, err := j.scanner.Scan(ctx, j.root)
	if err != nil {
		slog.Error("Scan failed, skipping cycle", "dir", j.root, "error", err)
		return Report{}, err
	}

	var maxToFree int64
	for _, p := range j.policies {
		toFree, err := p.BytesToFree(snap.TotalSize)
		if err != nil {
			slog.Error("Failed to check capacity policy", "error", err)
			continue
		}
		if toFree > maxToFree {
			maxToFree = toFree
		}
	}

	if maxToFree <= 0 {
		slog.Info("Directory size is within the limit, no action needed",
			"dir", j.root,
			"size", humanize.Bytes(uint64(snap.TotalSize)),
			"files", len(snap.Files))
		return Report{RemainingSize: snap.TotalSize}, nil
	}

	target := snap.TotalSize - maxToFree
	if target < 0 {
		target = 0
	}

	slog.Info("Evicting files",
		"dir", j.root,
		"size", humanize.Bytes(uint64(snap.TotalSize)),
		"target", humanize.Bytes(uint64(target)))

	report := j.evictor.Evict(ctx, snap, target)

	slog.Info("Sweep finished",
		"deleted", report.DeletedCount(),
		"failed", len(report.Failed),
		"freed", humanize.Bytes(uint64(report.FreedBytes)),
		"remaining", humanize.Bytes(uint64(report.RemainingSize)),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return report, nil
}
