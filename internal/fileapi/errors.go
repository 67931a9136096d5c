package fileapi

import (
	"errors"
	"fmt"
)

var (
	// ErrReplyDirMissing means configure never ran for the build directory.
	ErrReplyDirMissing = errors.New("CMake File API reply directory not found")

	// ErrIndexNotFound means the reply directory exists but holds no index-*.json.
	ErrIndexNotFound = errors.New("CMake File API index file not found")

	// ErrReferenceNotFound means an expected reply object is not referenced.
	ErrReferenceNotFound = errors.New("reference not found in CMake File API reply")
)

// ParseError reports a reply file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
