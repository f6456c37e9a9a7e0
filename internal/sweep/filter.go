package sweep

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides whether a file should be left out of a snapshot.
type Filter interface {
	// Excluded returns true if the file at the given path, relative to
	// the scan root, should be skipped.
	Excluded(relativePath string) bool
}

// GlobFilter implements Filter using doublestar glob patterns.
// A file is excluded when any pattern matches its relative path.
type GlobFilter struct {
	patterns []string
}

// NewGlobFilter validates the given patterns and returns a filter over
// them. An empty pattern list excludes nothing.
func NewGlobFilter(patterns []string) (*GlobFilter, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &GlobFilter{patterns: patterns}, nil
}

func (f *GlobFilter) Excluded(relativePath string) bool {
	rel := filepath.ToSlash(relativePath)
	for _, p := range f.patterns {
		// Patterns were validated in NewGlobFilter.
		if matched, _ := doublestar.Match(p, rel); matched {
			return true
		}
	}
	return false
}
