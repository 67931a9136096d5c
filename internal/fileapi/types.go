package fileapi

// Version is a major/minor object version as written by CMake.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// ReplyIndex is the index-*.json manifest CMake writes into the reply directory.
type ReplyIndex struct {
	CMake struct {
		Version struct {
			String string `json:"string"`
			Major  int    `json:"major"`
			Minor  int    `json:"minor"`
			Patch  int    `json:"patch"`
		} `json:"version"`
	} `json:"cmake"`
	Objects []ReplyReference          `json:"objects"`
	Reply   map[string]ReplyReference `json:"reply"`
}

// ReplyReference points at a reply object file relative to the reply
// directory. When CMake cannot answer a query it sets Error instead.
type ReplyReference struct {
	Kind     string  `json:"kind"`
	Version  Version `json:"version"`
	JSONFile string  `json:"jsonFile"`
	Error    string  `json:"error,omitempty"`
}

// CodeModel is the "codemodel" v2 reply object.
type CodeModel struct {
	Version        Version         `json:"version"`
	Paths          CodeModelPaths  `json:"paths"`
	Configurations []Configuration `json:"configurations"`
}

// CodeModelPaths holds the top-level source and build directories.
type CodeModelPaths struct {
	Source string `json:"source"`
	Build  string `json:"build"`
}

// Configuration groups the targets of one build configuration (e.g. "Debug").
type Configuration struct {
	Name    string            `json:"name"`
	Targets []TargetReference `json:"targets"`
}

// TargetReference names a target and the reply file describing it.
type TargetReference struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Type     string `json:"type,omitempty"`
	JSONFile string `json:"jsonFile"`
}

// TargetDescriptor is the per-target reply object, one per target per configuration.
type TargetDescriptor struct {
	Name         string         `json:"name"`
	ID           string         `json:"id,omitempty"`
	Type         TargetKind     `json:"type"`
	NameOnDisk   string         `json:"nameOnDisk,omitempty"`
	Artifacts    []PathEntry    `json:"artifacts,omitempty"`
	Sources      []PathEntry    `json:"sources,omitempty"`
	Dependencies []TargetDepend `json:"dependencies,omitempty"`
}

// PathEntry is a single path record in a target descriptor.
type PathEntry struct {
	Path string `json:"path"`
}

// TargetDepend references another target by id.
type TargetDepend struct {
	ID string `json:"id"`
}

// TargetKind is the CMake target type.
type TargetKind string

const (
	KindExecutable       TargetKind = "EXECUTABLE"
	KindStaticLibrary    TargetKind = "STATIC_LIBRARY"
	KindSharedLibrary    TargetKind = "SHARED_LIBRARY"
	KindModuleLibrary    TargetKind = "MODULE_LIBRARY"
	KindObjectLibrary    TargetKind = "OBJECT_LIBRARY"
	KindInterfaceLibrary TargetKind = "INTERFACE_LIBRARY"
	KindUtility          TargetKind = "UTILITY"
)

// IsLinkable reports whether artifacts of this kind are reported to callers.
// Module and object libraries are excluded even when they list artifacts.
func (k TargetKind) IsLinkable() bool {
	switch k {
	case KindExecutable, KindStaticLibrary, KindSharedLibrary:
		return true
	}
	return false
}

// BuildArtifact is one produced file of a linkable target.
type BuildArtifact struct {
	Name string     `json:"name" yaml:"name"`
	Kind TargetKind `json:"kind" yaml:"kind"`
	Path string     `json:"path" yaml:"path"` // absolute, forward slashes
}

// Reply is the result of reading a reply directory.
type Reply struct {
	IndexPath string
	Paths     CodeModelPaths
	Artifacts []BuildArtifact
}
