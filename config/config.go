package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/common"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
	"github.com/pelletier/go-toml"
)

// DefaultNLRCPath is where NetLinx Studio installs the compiler.
const DefaultNLRCPath = `C:\Program Files (x86)\Common Files\AMXShare\COM\NLRC.exe`

// AppConfig represents a genlinx config file as it is encoded in TOML.  The
// global and local config files share this layout.
type AppConfig struct {
	Build   BuildConfig   `toml:"build"`
	Archive ArchiveConfig `toml:"archive"`
	Log     LogConfig     `toml:"log"`
}

// BuildConfig configures how the NetLinx compiler is invoked.
type BuildConfig struct {
	// NLRCPath is the path to the compiler executable.
	NLRCPath string `toml:"nlrc-path,omitempty"`

	// IncludePath, ModulePath and LibraryPath are searched by the compiler in
	// addition to the directories derived from the workspace.
	IncludePath []string `toml:"include-path,omitempty"`
	ModulePath  []string `toml:"module-path,omitempty"`
	LibraryPath []string `toml:"library-path,omitempty"`

	// The compiler option prefixes.
	CfgOption     string `toml:"cfg-option,omitempty"`
	IncludeOption string `toml:"include-option,omitempty"`
	ModuleOption  string `toml:"module-option,omitempty"`
	LibraryOption string `toml:"library-option,omitempty"`
}

// ArchiveConfig configures how workspace archives are assembled.
type ArchiveConfig struct {
	// Output is the path of the archive to create.
	Output string `toml:"output,omitempty"`

	// IncludeCompiled adds compiled modules and sources to the archive.
	IncludeCompiled bool `toml:"include-compiled,omitempty"`

	// Exclude lists file extensions that are left out of the archive.
	Exclude []string `toml:"exclude,omitempty"`

	// Compression is one of "deflate", "zstd" or "store".
	Compression string `toml:"compression,omitempty"`
}

// LogConfig configures console output.
type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

// Defaults returns the built-in configuration used when nothing else is set.
func Defaults() AppConfig {
	return AppConfig{
		Build: BuildConfig{
			NLRCPath:      DefaultNLRCPath,
			CfgOption:     "-CFG",
			IncludeOption: "-I",
			ModuleOption:  "-M",
			LibraryOption: "-L",
		},
		Archive: ArchiveConfig{
			Compression: "deflate",
		},
		Log: LogConfig{
			Level: "verbose",
		},
	}
}

// GlobalConfigPath returns the path to the user's global config file.
func GlobalConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}

	return filepath.Join(dir, common.AppName, common.GlobalConfigFileName), nil
}

// LocalConfigPath returns the path to the config file for the workspace in
// workspaceDir.
func LocalConfigPath(workspaceDir string) string {
	return filepath.Join(workspaceDir, common.LocalConfigFileName)
}

// LoadFile loads and validates the config file at path.  A missing file yields
// an empty config.  Relative search paths and the archive output are resolved
// against the directory containing the file.
func LoadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, nil
		}

		return AppConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.normalize(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return AppConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Load loads the global config and the local config of the workspace in
// workspaceDir and merges them beneath cli.  Defaults fill anything left unset.
func Load(workspaceDir string, cli AppConfig) (AppConfig, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		return AppConfig{}, err
	}

	global, err := LoadFile(globalPath)
	if err != nil {
		return AppConfig{}, err
	}

	local, err := LoadFile(LocalConfigPath(workspaceDir))
	if err != nil {
		return AppConfig{}, err
	}

	return Merge(cli, local, global, Defaults()), nil
}

// Merge combines config layers in decreasing precedence.  For scalar values
// the first non-empty value wins.  Search paths and exclusions accumulate
// across all layers in precedence order without duplicates.
func Merge(layers ...AppConfig) AppConfig {
	var out AppConfig
	var includePaths, modulePaths, libraryPaths, excludes [][]string

	for _, l := range layers {
		out.Build.NLRCPath = firstNonEmpty(out.Build.NLRCPath, l.Build.NLRCPath)
		out.Build.CfgOption = firstNonEmpty(out.Build.CfgOption, l.Build.CfgOption)
		out.Build.IncludeOption = firstNonEmpty(out.Build.IncludeOption, l.Build.IncludeOption)
		out.Build.ModuleOption = firstNonEmpty(out.Build.ModuleOption, l.Build.ModuleOption)
		out.Build.LibraryOption = firstNonEmpty(out.Build.LibraryOption, l.Build.LibraryOption)
		out.Archive.Output = firstNonEmpty(out.Archive.Output, l.Archive.Output)
		out.Archive.Compression = firstNonEmpty(out.Archive.Compression, l.Archive.Compression)
		out.Log.Level = firstNonEmpty(out.Log.Level, l.Log.Level)

		out.Archive.IncludeCompiled = out.Archive.IncludeCompiled || l.Archive.IncludeCompiled

		includePaths = append(includePaths, l.Build.IncludePath)
		modulePaths = append(modulePaths, l.Build.ModulePath)
		libraryPaths = append(libraryPaths, l.Build.LibraryPath)
		excludes = append(excludes, l.Archive.Exclude)
	}

	out.Build.IncludePath = common.UniqueStrings(includePaths...)
	out.Build.ModulePath = common.UniqueStrings(modulePaths...)
	out.Build.LibraryPath = common.UniqueStrings(libraryPaths...)
	out.Archive.Exclude = common.UniqueStrings(excludes...)

	return out
}

// InitConfig writes the default config to path.  An existing file is only
// replaced if force is set.
func InitConfig(path string, force bool) error {
	_, err := os.Stat(path)
	if err == nil && !force {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: ensure config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer f.Close()

	cfg := Defaults()
	if err := toml.NewEncoder(f).Encode(&cfg); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (c *AppConfig) normalize(base string) {
	c.Build.NLRCPath = strings.TrimSpace(c.Build.NLRCPath)
	c.Build.IncludePath = resolvePaths(base, c.Build.IncludePath)
	c.Build.ModulePath = resolvePaths(base, c.Build.ModulePath)
	c.Build.LibraryPath = resolvePaths(base, c.Build.LibraryPath)
	if out := resolvePaths(base, []string{c.Archive.Output}); len(out) > 0 {
		c.Archive.Output = out[0]
	}

	c.Archive.Compression = strings.ToLower(strings.TrimSpace(c.Archive.Compression))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	for i, ext := range c.Archive.Exclude {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		c.Archive.Exclude[i] = ext
	}
}

func (c *AppConfig) validate() error {
	switch c.Archive.Compression {
	case "", "deflate", "zstd", "store":
	default:
		return fmt.Errorf("archive.compression must be one of deflate, zstd or store")
	}

	if c.Log.Level != "" {
		if _, err := logging.ParseLogLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}

	return candidate
}

func resolvePaths(base string, paths []string) []string {
	var out []string
	for _, p := range paths {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}

		if filepath.IsAbs(trimmed) {
			out = append(out, filepath.Clean(trimmed))
		} else {
			out = append(out, filepath.Clean(filepath.Join(base, trimmed)))
		}
	}

	return out
}
