package nlrc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := OptionsFromConfig(config.Defaults().Build)
	opts.Path = "/opt/amx/NLRC.exe"
	return opts
}

func TestCfgBuildCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build.cfg")

	cmd, err := CfgBuildCommand(file, testOptions())
	require.NoError(t, err)

	assert.Equal(t, `"/opt/amx/NLRC.exe" -CFG"`+file+`"`, cmd.String())
	assert.Equal(t, []string{"-CFG" + file}, cmd.Argv())
}

func TestSourceBuildCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.axs")
	opts := testOptions()
	opts.IncludePath = []string{"/ws/include", "/ws/lib"}
	opts.ModulePath = []string{"/ws/module"}

	cmd, err := SourceBuildCommand(file, opts)
	require.NoError(t, err)

	assert.Equal(t,
		`"/opt/amx/NLRC.exe" "`+file+`" -I"/ws/include;/ws/lib" -M"/ws/module"`,
		cmd.String(),
	)
	assert.Equal(t, []string{file, "-I/ws/include;/ws/lib", "-M/ws/module"}, cmd.Argv())
}

func TestSourceBuildCommandResolvesRelativeFile(t *testing.T) {
	cmd, err := SourceBuildCommand("main.axs", testOptions())
	require.NoError(t, err)

	require.Len(t, cmd.Args, 1)
	assert.True(t, filepath.IsAbs(cmd.Args[0].Value))
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "NLRC.exe")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))

	path, err := Locate(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, path)

	t.Setenv("PATH", "")
	_, err = Locate(dir)
	assert.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestParseSummary(t *testing.T) {
	output := "Compiling main.axs\nNLRC: 1 error(s), 0 warning(s)\nCompiling alt.axs\nNLRC: 2 error(s), 3 warning(s)\n"

	result := parseSummary(output)
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 3, result.Warnings)
	assert.Equal(t, output, result.Output)

	result = parseSummary("no totals here")
	assert.Zero(t, result.Errors)
	assert.Zero(t, result.Warnings)
}

// fakeCompiler writes a shell script that prints output and exits with code.
func fakeCompiler(t *testing.T, output string, code int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake compiler is a shell script")
	}

	path := filepath.Join(t.TempDir(), "nlrc")
	script := "#!/bin/sh\nprintf '" + output + "'\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}

func TestRunnerSuccess(t *testing.T) {
	var echoed bytes.Buffer
	runner := &Runner{Output: &echoed}

	cmd := &Command{Path: fakeCompiler(t, `0 error(s), 1 warning(s)\n`, 0)}
	result, err := runner.Run(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Warnings)
	assert.Equal(t, "0 error(s), 1 warning(s)\n", echoed.String())
}

func TestRunnerReportsCompileErrors(t *testing.T) {
	runner := &Runner{}

	cmd := &Command{Path: fakeCompiler(t, `2 error(s), 0 warning(s)\n`, 0)}
	result, err := runner.Run(context.Background(), cmd)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, result.Errors)
	assert.Contains(t, err.Error(), "2 error(s)")

	cmd = &Command{Path: fakeCompiler(t, `crashed\n`, 3)}
	_, err = runner.Run(context.Background(), cmd)
	require.ErrorAs(t, err, &ce)
	assert.Zero(t, ce.Result.Errors)
}

func TestRunnerMissingExecutable(t *testing.T) {
	runner := &Runner{}

	_, err := runner.Run(context.Background(), &Command{Path: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)

	var ce *CompileError
	assert.False(t, errors.As(err, &ce))
}
