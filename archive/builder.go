package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/apw"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// externalDir holds files that live outside the workspace directory.
const externalDir = "_external"

// Options configures an archive build.
type Options struct {
	// OutputPath is the archive to create.  It defaults to `<id>.zip` in the
	// workspace directory.
	OutputPath string

	// IncludeCompiled adds the compiled output of modules and sources when it
	// exists next to them.
	IncludeCompiled bool

	// Exclude lists lower-case file extensions, with their dots, that are
	// left out of the archive.
	Exclude []string

	// Compression is one of "deflate", "zstd" or "store".  Empty means
	// deflate.
	Compression string
}

// Entry is a single file placed in the archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string

	// SourcePath is the absolute path of the file on disk.
	SourcePath string

	Type apw.FileType
}

// Builder assembles the files of a workspace into a zip archive.
type Builder struct {
	ws      *apw.Workspace
	opts    Options
	entries []Entry
	names   map[string]struct{}
}

// NewBuilder creates a builder and collects the archive entries for ws.
// Missing files are skipped with a warning.
func NewBuilder(ws *apw.Workspace, opts Options) *Builder {
	if opts.OutputPath == "" {
		opts.OutputPath = filepath.Join(ws.Dir(), ws.ID()+".zip")
	}

	b := &Builder{ws: ws, opts: opts, names: make(map[string]struct{})}
	b.collect()

	return b
}

// OutputPath returns the path of the archive that Build will write.
func (b *Builder) OutputPath() string {
	return b.opts.OutputPath
}

// Entries returns the files that will be placed in the archive.
func (b *Builder) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Build writes the archive and returns its manifest.  A partially written
// archive is removed if the build fails.
func (b *Builder) Build(ctx context.Context) (*Manifest, error) {
	method, err := compressionMethod(b.opts.Compression)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(b.opts.OutputPath), 0o755); err != nil {
		return nil, fmt.Errorf("archive: create output dir: %w", err)
	}

	f, err := os.Create(b.opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("archive: create %s: %w", b.opts.OutputPath, err)
	}

	manifest, err := b.write(ctx, f, method)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("archive: close %s: %w", b.opts.OutputPath, closeErr)
	}

	if err != nil {
		os.Remove(b.opts.OutputPath)
		return nil, err
	}

	return manifest, nil
}

// -----------------------------------------------------------------------------

// collect determines the archive entries from the workspace files.
func (b *Builder) collect() {
	for _, ref := range b.ws.AllFiles() {
		if !ref.Exists {
			logging.LogWarning("Archive", fmt.Sprintf("skipping missing file `%s`", ref.Path))
			continue
		}

		src := b.ws.ResolvePath(ref)
		b.add(src, ref.Type)

		if !b.opts.IncludeCompiled {
			continue
		}

		if ext, ok := ref.Type.CompiledExtension(); ok {
			compiled := strings.TrimSuffix(src, filepath.Ext(src)) + ext
			if info, err := os.Stat(compiled); err == nil && !info.IsDir() {
				ft, _ := apw.FileTypeFromExtension(compiled)
				b.add(compiled, ft)
			}
		}
	}
}

// add appends an entry unless its extension is excluded or its archive name
// is already taken.
func (b *Builder) add(src string, ft apw.FileType) {
	if b.excluded(src) {
		return
	}

	name := b.entryName(src)
	if _, ok := b.names[name]; ok {
		logging.LogWarning("Archive", fmt.Sprintf("skipping `%s`: `%s` is already archived", src, name))
		return
	}

	b.names[name] = struct{}{}
	b.entries = append(b.entries, Entry{Name: name, SourcePath: src, Type: ft})
}

func (b *Builder) excluded(src string) bool {
	ext := strings.ToLower(filepath.Ext(src))
	for _, excl := range b.opts.Exclude {
		if ext == excl {
			return true
		}
	}

	return false
}

// entryName returns the archive path of src: relative to the workspace
// directory, or under the external directory if it lies outside of it.
func (b *Builder) entryName(src string) string {
	rel, err := filepath.Rel(b.ws.Dir(), src)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path.Join(externalDir, filepath.Base(src))
	}

	return filepath.ToSlash(rel)
}

// write streams every entry followed by the manifest into w.
func (b *Builder) write(ctx context.Context, w io.Writer, method uint16) (*Manifest, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	manifest := &Manifest{
		Workspace:   b.ws.ID(),
		Compression: compressionName(b.opts.Compression),
	}

	for _, entry := range b.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		me, err := writeEntry(zw, entry, method)
		if err != nil {
			return nil, err
		}

		manifest.Files = append(manifest.Files, me)
	}

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: ManifestName, Method: method})
	if err != nil {
		return nil, fmt.Errorf("archive: add manifest: %w", err)
	}

	if err := manifest.encode(mw); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: finish archive: %w", err)
	}

	return manifest, nil
}

// writeEntry copies a single file into the archive while hashing it.
func writeEntry(zw *zip.Writer, entry Entry, method uint16) (ManifestEntry, error) {
	f, err := os.Open(entry.SourcePath)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("archive: open %s: %w", entry.SourcePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("archive: stat %s: %w", entry.SourcePath, err)
	}

	header := &zip.FileHeader{Name: entry.Name, Method: method}
	header.Modified = info.ModTime()

	ew, err := zw.CreateHeader(header)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("archive: add %s: %w", entry.Name, err)
	}

	hasher := blake3.New()
	size, err := io.Copy(io.MultiWriter(ew, hasher), f)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("archive: write %s: %w", entry.Name, err)
	}

	return ManifestEntry{
		Path:   entry.Name,
		Type:   string(entry.Type),
		Size:   size,
		BLAKE3: fmt.Sprintf("%x", hasher.Sum(nil)),
	}, nil
}

func compressionName(name string) string {
	if name == "" {
		return "deflate"
	}

	return name
}

func compressionMethod(name string) (uint16, error) {
	switch compressionName(name) {
	case "deflate":
		return zip.Deflate, nil
	case "zstd":
		return zstd.ZipMethodWinZip, nil
	case "store":
		return zip.Store, nil
	default:
		return 0, fmt.Errorf("archive: unknown compression `%s`", name)
	}
}
