package sourcefile

import (
	"fmt"
	"os"
)

// DefaultMaxSize bounds files read for indexing; larger files are usually
// generated bundles.
const DefaultMaxSize = 2 << 20

// Reader implements domain.SourceReader with a size cap.
type Reader struct {
	maxSize int64
}

// New creates a Reader. maxSize <= 0 selects DefaultMaxSize.
func New(maxSize int64) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Reader{maxSize: maxSize}
}

// ReadFile returns the file's contents, or an error when it exceeds the cap.
func (r *Reader) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > r.maxSize {
		return nil, fmt.Errorf("%s: %d bytes exceeds limit of %d", path, info.Size(), r.maxSize)
	}
	return os.ReadFile(path)
}
