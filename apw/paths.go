package apw

import "path/filepath"

// IncludePath returns the directories containing the workspace's include
// files.
func (w *Workspace) IncludePath() []string {
	return w.fileDirectories(w.FilesOfType(FileTypeInclude))
}

// ModulePath returns the directories containing the workspace's modules,
// Duet modules and device drivers.
func (w *Workspace) ModulePath() []string {
	return w.fileDirectories(w.FilesOfType(FileTypeModule, FileTypeDuet, FileTypeXDD))
}

// MasterSrcPath returns the directories containing the workspace's master
// source files.
func (w *Workspace) MasterSrcPath() []string {
	return w.fileDirectories(w.MasterSrcFiles())
}

// fileDirectories returns the absolute parent directory of each reference
// without duplicates, in the order first seen.
func (w *Workspace) fileDirectories(refs []FileReference) []string {
	seen := make(map[string]struct{}, len(refs))

	var dirs []string
	for _, ref := range refs {
		dir := filepath.Dir(w.ResolvePath(ref))
		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}
