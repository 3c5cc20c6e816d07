package apw

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pending is a workspace that has been located but not yet loaded.  It has no
// derived views: call Load to obtain a Workspace.
type Pending struct {
	filePath string
}

// New creates a pending workspace for the descriptor at path.  Relative paths
// are resolved against the working directory immediately.
func New(path string) (*Pending, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	return &Pending{filePath: absPath}, nil
}

// FilePath returns the absolute path to the workspace descriptor.
func (p *Pending) FilePath() string {
	return p.filePath
}

// Load reads and parses the descriptor and probes every declared file.  All
// failures are returned as a *LoadError.
func (p *Pending) Load(ctx context.Context) (*Workspace, error) {
	text, err := readDescriptor(p.filePath)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	rawID, err := parseID(text)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	ws := &Workspace{
		filePath: p.filePath,
		dir:      filepath.Dir(p.filePath),
		rawID:    rawID,
	}

	refs := parseFileReferences(text)
	if err := ws.probe(ctx, refs); err != nil {
		return nil, &LoadError{Err: err}
	}

	sortFileReferences(refs)
	ws.fileReferences = refs
	ws.uniqueFileReferences = uniqueFileReferences(refs)

	return ws, nil
}

// Load is a convenience for New followed by Pending.Load.
func Load(ctx context.Context, path string) (*Workspace, error) {
	p, err := New(path)
	if err != nil {
		return nil, err
	}

	return p.Load(ctx)
}

// -----------------------------------------------------------------------------

// Workspace is a loaded NetLinx workspace.  It is immutable: every accessor
// returns a fresh copy of the underlying data.
type Workspace struct {
	filePath string
	dir      string
	rawID    string

	// fileReferences is every declared reference sorted by path.
	fileReferences []FileReference

	// uniqueFileReferences is fileReferences with duplicate paths collapsed.
	uniqueFileReferences []FileReference
}

// probe checks each reference for existence concurrently.  Each goroutine
// writes only to its own element.
func (w *Workspace) probe(ctx context.Context, refs []FileReference) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range refs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			refs[i].Exists = pathExists(w.ResolvePath(refs[i]))
			return nil
		})
	}

	return g.Wait()
}

// pathExists reports whether path can be stat'd.  Any error, including a
// permission error on a parent directory, counts as missing.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ID returns the workspace identifier with whitespace replaced by dashes.
func (w *Workspace) ID() string {
	return normalizeID(w.rawID)
}

// RawID returns the workspace identifier as declared.
func (w *Workspace) RawID() string {
	return w.rawID
}

// FilePath returns the absolute path to the workspace descriptor.
func (w *Workspace) FilePath() string {
	return w.filePath
}

// Dir returns the directory containing the workspace descriptor.  Declared
// paths are relative to this directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// ResolvePath returns the absolute path of a reference.
func (w *Workspace) ResolvePath(ref FileReference) string {
	return resolveReferencePath(w.dir, ref.Path)
}

// TotalFileCount is the number of file records declared by the descriptor.
func (w *Workspace) TotalFileCount() int {
	return len(w.fileReferences)
}

// UniqueFileCount is the number of distinct declared paths.  It is lower than
// TotalFileCount when the descriptor declares a file more than once.
func (w *Workspace) UniqueFileCount() int {
	return len(w.uniqueFileReferences)
}

// FileReferences returns every declared reference sorted by path.
func (w *Workspace) FileReferences() []FileReference {
	return append([]FileReference(nil), w.fileReferences...)
}

// UniqueFileReferences returns the declared references with duplicate paths
// collapsed, sorted by path.
func (w *Workspace) UniqueFileReferences() []FileReference {
	return append([]FileReference(nil), w.uniqueFileReferences...)
}

// MissingFiles returns the unique references that do not exist on disk.
func (w *Workspace) MissingFiles() []FileReference {
	var missing []FileReference
	for _, ref := range w.uniqueFileReferences {
		if !ref.Exists {
			missing = append(missing, ref)
		}
	}

	return missing
}

// FilesOfType returns the unique references of the given types.
func (w *Workspace) FilesOfType(types ...FileType) []FileReference {
	return filterByType(w.uniqueFileReferences, types...)
}

// ModuleFiles returns the unique module references.
func (w *Workspace) ModuleFiles() []FileReference {
	return w.FilesOfType(FileTypeModule)
}

// MasterSrcFiles returns the unique master source references.
func (w *Workspace) MasterSrcFiles() []FileReference {
	return w.FilesOfType(FileTypeMasterSrc)
}

// AllFiles returns the unique references followed by a record for the
// workspace descriptor itself.
func (w *Workspace) AllFiles() []FileReference {
	all := make([]FileReference, 0, len(w.uniqueFileReferences)+1)
	all = append(all, w.uniqueFileReferences...)

	return append(all, FileReference{
		Type:   FileTypeWorkspace,
		ID:     w.rawID,
		Path:   w.filePath,
		Exists: true,
	})
}
