package fileapi

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const descriptorCacheSize = 1024

// Reader reads CMake File API replies.
//
// Parsed target descriptors are memoized by the SHA-256 of their bytes.
// Every read still loads each file, so a rewritten or corrupted descriptor
// is never answered from the cache; only the decode is skipped.
type Reader struct {
	descriptors *lru.Cache[[sha256.Size]byte, TargetDescriptor]
}

// NewReader creates a Reader with an empty descriptor cache.
func NewReader() *Reader {
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[[sha256.Size]byte, TargetDescriptor](descriptorCacheSize)
	return &Reader{descriptors: c}
}

// ReadArtifacts reads the reply under buildRoot and returns its linkable artifacts.
func ReadArtifacts(buildRoot string) ([]BuildArtifact, error) {
	reply, err := NewReader().Read(buildRoot)
	if err != nil {
		return nil, err
	}
	return reply.Artifacts, nil
}

// Read locates the newest reply index under buildRoot, follows it to the
// code model and every target descriptor, and flattens the result.
// An empty artifact list is a valid result.
func (r *Reader) Read(buildRoot string) (*Reply, error) {
	replyDir := ReplyDir(buildRoot)

	// Stat before listing so "never configured" is not reported as "empty".
	if _, err := os.Stat(replyDir); err != nil {
		return nil, fmt.Errorf("%w: %s (run cmake configure first)", ErrReplyDirMissing, replyDir)
	}

	indexPath, err := LatestIndex(replyDir)
	if err != nil {
		return nil, err
	}

	var index ReplyIndex
	if err := readJSON(indexPath, &index); err != nil {
		return nil, err
	}

	ref, ok := index.Reply[CodeModelKind]
	if ok && ref.Error != "" {
		return nil, fmt.Errorf("%w: cmake could not answer the %s query in %s: %s", ErrReferenceNotFound, CodeModelKind, indexPath, ref.Error)
	}
	if !ok || ref.JSONFile == "" {
		return nil, fmt.Errorf("%w: %s not found in %s", ErrReferenceNotFound, CodeModelKind, indexPath)
	}

	var model CodeModel
	if err := readJSON(filepath.Join(replyDir, ref.JSONFile), &model); err != nil {
		return nil, err
	}

	reply := &Reply{
		IndexPath: indexPath,
		Paths:     model.Paths,
		Artifacts: []BuildArtifact{},
	}

	for _, cfg := range model.Configurations {
		for _, tref := range cfg.Targets {
			target, err := r.descriptor(filepath.Join(replyDir, tref.JSONFile))
			if err != nil {
				return nil, err
			}
			reply.Artifacts = append(reply.Artifacts, flatten(model.Paths.Build, target)...)
		}
	}

	return reply, nil
}

// LatestIndex returns the path of the lexicographically greatest
// index-*.json file directly inside replyDir. CMake embeds a sortable
// timestamp in the name, so string order is creation order.
func LatestIndex(replyDir string) (string, error) {
	entries, err := os.ReadDir(replyDir)
	if err != nil {
		return "", fmt.Errorf("listing reply directory %s: %w", replyDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "index-") && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s (run cmake configure first)", ErrIndexNotFound, replyDir)
	}

	sort.Strings(names)
	return filepath.Join(replyDir, names[len(names)-1]), nil
}

func (r *Reader) descriptor(path string) (TargetDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TargetDescriptor{}, fmt.Errorf("reading %s: %w", path, err)
	}

	key := sha256.Sum256(data)
	if td, ok := r.descriptors.Get(key); ok {
		return td, nil
	}

	var td TargetDescriptor
	if err := decodeJSON(path, data, &td); err != nil {
		return TargetDescriptor{}, err
	}
	r.descriptors.Add(key, td)
	return td, nil
}

// flatten projects a descriptor onto zero or more artifacts.
func flatten(buildRoot string, td TargetDescriptor) []BuildArtifact {
	if !td.Type.IsLinkable() || len(td.Artifacts) == 0 {
		return nil
	}

	out := make([]BuildArtifact, 0, len(td.Artifacts))
	for _, a := range td.Artifacts {
		out = append(out, BuildArtifact{
			Name: td.Name,
			Kind: td.Type,
			Path: ArtifactPath(buildRoot, a.Path),
		})
	}
	return out
}

// ArtifactPath joins a reply artifact path onto the build root. Backslashes
// are converted before joining and the result is cleaned, so the output
// always uses forward slashes.
func ArtifactPath(buildRoot, rel string) string {
	return path.Join(buildRoot, strings.ReplaceAll(rel, `\`, "/"))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeJSON(path, data, v)
}

func decodeJSON(path string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
