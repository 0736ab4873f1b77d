package rewrite

import (
	"errors"
	"fmt"
	"os"

	"blockpatch/pkg/block"
)

// IOError reports a failure reading or writing the patched file. It wraps
// the underlying os error and matches block.ErrIO.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool {
	return target == block.ErrIO
}

// Load reads the whole file at path into memory.
func Load(path string) (block.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return block.Document(data), nil
}

// IsIOError reports whether err came from the Loader or the Writer.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
