package apw

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileReference is a single file entry of a workspace.
type FileReference struct {
	// Type is the category of the file.
	Type FileType

	// ID is the identifier the descriptor gives the file.  It is used to
	// match directives found inside source files.
	ID string

	// Path is the file path exactly as declared.  It is usually relative to
	// the directory containing the workspace file.
	Path string

	// Exists indicates whether the file was found when the workspace loaded.
	Exists bool

	// Implicit is true for references discovered by scanning source files
	// rather than declared by the descriptor.
	Implicit bool
}

// sortFileReferences sorts references by path.  The sort is stable so
// references sharing a path keep their descriptor order.
func sortFileReferences(refs []FileReference) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Path < refs[j].Path
	})
}

// uniqueFileReferences collapses path-sorted references so that each path
// appears once.  Where paths collide the later reference replaces the
// earlier one but keeps its position.
func uniqueFileReferences(sorted []FileReference) []FileReference {
	positions := make(map[string]int, len(sorted))
	unique := make([]FileReference, 0, len(sorted))

	for _, ref := range sorted {
		if ndx, ok := positions[ref.Path]; ok {
			unique[ndx] = ref
			continue
		}

		positions[ref.Path] = len(unique)
		unique = append(unique, ref)
	}

	return unique
}

// resolveReferencePath converts a declared path into an absolute path rooted
// at dir.  Descriptors are authored on Windows so backslash separators are
// accepted on every platform.
func resolveReferencePath(dir, declared string) string {
	native := filepath.FromSlash(strings.ReplaceAll(declared, `\`, "/"))
	if filepath.IsAbs(native) {
		return filepath.Clean(native)
	}

	return filepath.Join(dir, native)
}

// filterByType returns the references whose type is one of types.
func filterByType(refs []FileReference, types ...FileType) []FileReference {
	var out []FileReference
	for _, ref := range refs {
		for _, ft := range types {
			if ref.Type == ft {
				out = append(out, ref)
				break
			}
		}
	}

	return out
}
