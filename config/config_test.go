package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingIsEmpty(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".genlinx.toml"))
	require.NoError(t, err)
	assert.Equal(t, AppConfig{}, cfg)
}

func TestLoadFileParsesToml(t *testing.T) {
	dir := t.TempDir()
	configTOML := strings.TrimSpace(`
[build]
nlrc-path = "/opt/amx/NLRC.exe"
include-path = ["includes", "/abs/includes"]
module-path = ["modules"]

[archive]
output = "dist/room.zip"
include-compiled = true
exclude = ["tp4", ".TKN"]
compression = "ZSTD"

[log]
level = "warn"
`)
	path := filepath.Join(dir, ".genlinx.toml")
	require.NoError(t, os.WriteFile(path, []byte(configTOML), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/amx/NLRC.exe", cfg.Build.NLRCPath)
	assert.Equal(t, []string{filepath.Join(dir, "includes"), filepath.Clean("/abs/includes")}, cfg.Build.IncludePath)
	assert.Equal(t, []string{filepath.Join(dir, "modules")}, cfg.Build.ModulePath)
	assert.Equal(t, filepath.Join(dir, "dist", "room.zip"), cfg.Archive.Output)
	assert.True(t, cfg.Archive.IncludeCompiled)
	assert.Equal(t, []string{".tp4", ".tkn"}, cfg.Archive.Exclude)
	assert.Equal(t, "zstd", cfg.Archive.Compression)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFileValidation(t *testing.T) {
	dir := t.TempDir()

	badCompression := filepath.Join(dir, "compression.toml")
	require.NoError(t, os.WriteFile(badCompression, []byte("[archive]\ncompression = \"rar\"\n"), 0o644))
	_, err := LoadFile(badCompression)
	assert.Error(t, err)

	badLevel := filepath.Join(dir, "level.toml")
	require.NoError(t, os.WriteFile(badLevel, []byte("[log]\nlevel = \"loud\"\n"), 0o644))
	_, err = LoadFile(badLevel)
	assert.Error(t, err)

	badSyntax := filepath.Join(dir, "syntax.toml")
	require.NoError(t, os.WriteFile(badSyntax, []byte("[build\n"), 0o644))
	_, err = LoadFile(badSyntax)
	assert.Error(t, err)
}

func TestMergePrecedence(t *testing.T) {
	cli := AppConfig{
		Build:   BuildConfig{IncludePath: []string{"/cli/inc"}},
		Archive: ArchiveConfig{Output: "/cli/out.zip"},
	}
	local := AppConfig{
		Build:   BuildConfig{NLRCPath: "/local/NLRC.exe", IncludePath: []string{"/local/inc", "/cli/inc"}},
		Archive: ArchiveConfig{Output: "/local/out.zip", IncludeCompiled: true},
		Log:     LogConfig{Level: "error"},
	}
	global := AppConfig{
		Build: BuildConfig{NLRCPath: "/global/NLRC.exe", LibraryPath: []string{"/global/lib"}},
		Log:   LogConfig{Level: "silent"},
	}

	cfg := Merge(cli, local, global, Defaults())

	assert.Equal(t, "/local/NLRC.exe", cfg.Build.NLRCPath)
	assert.Equal(t, []string{"/cli/inc", "/local/inc"}, cfg.Build.IncludePath)
	assert.Equal(t, []string{"/global/lib"}, cfg.Build.LibraryPath)
	assert.Empty(t, cfg.Build.ModulePath)
	assert.Equal(t, "/cli/out.zip", cfg.Archive.Output)
	assert.True(t, cfg.Archive.IncludeCompiled)
	assert.Equal(t, "deflate", cfg.Archive.Compression)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "-I", cfg.Build.IncludeOption)
	assert.Equal(t, "-CFG", cfg.Build.CfgOption)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genlinx", "config.toml")

	require.NoError(t, InitConfig(path, false))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultNLRCPath, cfg.Build.NLRCPath)
	assert.Equal(t, "-M", cfg.Build.ModuleOption)
	assert.Equal(t, "deflate", cfg.Archive.Compression)

	assert.Error(t, InitConfig(path, false))
	assert.NoError(t, InitConfig(path, true))
}
