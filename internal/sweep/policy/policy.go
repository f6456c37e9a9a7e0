package policy

// Policy decides how many bytes a sweep cycle must free.
type Policy interface {
	// BytesToFree returns the number of bytes that should be evicted
	// given the current directory usage. Returns 0 if no eviction is
	// needed.
	BytesToFree(currentSize int64) (int64, error)
}
