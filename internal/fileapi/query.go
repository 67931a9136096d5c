// Package fileapi writes CMake File API queries and reads their replies.
//
// A query is an empty marker file under <build>/.cmake/api/v1/query. The next
// configure run answers it with JSON files under <build>/.cmake/api/v1/reply,
// reachable through the newest index-*.json.
package fileapi

import (
	"fmt"
	"os"
	"path/filepath"
)

// CodeModelKind is the query and reply key for the code model object.
const CodeModelKind = "codemodel-v2"

// QueryDir returns <buildRoot>/.cmake/api/v1/query.
func QueryDir(buildRoot string) string {
	return filepath.Join(buildRoot, ".cmake", "api", "v1", "query")
}

// ReplyDir returns <buildRoot>/.cmake/api/v1/reply.
func ReplyDir(buildRoot string) string {
	return filepath.Join(buildRoot, ".cmake", "api", "v1", "reply")
}

// WriteQuery requests the code model from the next configure run.
// Calling it again overwrites the empty marker with empty content.
func WriteQuery(buildRoot string) error {
	dir := QueryDir(buildRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating query directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, CodeModelKind)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return fmt.Errorf("writing query file %s: %w", path, err)
	}
	return nil
}
