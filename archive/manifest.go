package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ManifestName is the name of the manifest entry in every archive.
const ManifestName = "manifest.yaml"

var (
	// ErrNoManifest is returned when an archive has no manifest entry.
	ErrNoManifest = errors.New("archive has no manifest")

	errEntryNotFound = errors.New("no such entry")
)

// Manifest describes the contents of an archive.
type Manifest struct {
	Workspace   string          `yaml:"workspace"`
	Compression string          `yaml:"compression"`
	Files       []ManifestEntry `yaml:"files"`
}

// ManifestEntry describes a single archived file.
type ManifestEntry struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
	Size int64  `yaml:"size"`

	// BLAKE3 is the hex encoded BLAKE3-256 digest of the file contents.
	BLAKE3 string `yaml:"blake3"`
}

func (m *Manifest) encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("archive: encode manifest: %w", err)
	}

	return enc.Close()
}

// ReadManifest reads the manifest of the archive at path.
func ReadManifest(path string) (*Manifest, error) {
	rc, err := openArchive(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return readManifest(&rc.Reader, path)
}

// Verify checks every file listed in the manifest of the archive at path
// against its recorded size and checksum.
func Verify(path string) error {
	rc, err := openArchive(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	manifest, err := readManifest(&rc.Reader, path)
	if err != nil {
		return err
	}

	for _, entry := range manifest.Files {
		f, err := openEntry(&rc.Reader, entry.Path)
		if err != nil {
			return fmt.Errorf("archive: %s: open %s: %w", path, entry.Path, err)
		}

		hasher := blake3.New()
		size, err := io.Copy(hasher, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("archive: %s: read %s: %w", path, entry.Path, err)
		}

		if size != entry.Size {
			return fmt.Errorf("archive: %s: %s is %d bytes, manifest says %d", path, entry.Path, size, entry.Size)
		}

		if sum := fmt.Sprintf("%x", hasher.Sum(nil)); sum != entry.BLAKE3 {
			return fmt.Errorf("archive: %s: checksum mismatch for %s", path, entry.Path)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func openArchive(path string) (*zip.ReadCloser, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}

	rc.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return rc, nil
}

func readManifest(r *zip.Reader, path string) (*Manifest, error) {
	f, err := openEntry(r, ManifestName)
	if errors.Is(err, errEntryNotFound) {
		return nil, fmt.Errorf("archive: %s: %w", path, ErrNoManifest)
	} else if err != nil {
		return nil, fmt.Errorf("archive: %s: open manifest: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("archive: %s: read manifest: %w", path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("archive: %s: decode manifest: %w", path, err)
	}

	return &manifest, nil
}

func openEntry(r *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range r.File {
		if f.Name == name {
			return f.Open()
		}
	}

	return nil, fmt.Errorf("%s: %w", name, errEntryNotFound)
}
