package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/apw"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/nlrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildDescriptor = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE Workspace [
]>

<Workspace CompileType="Netlinx">
<Identifier>Room</Identifier>
<File CompileType="Netlinx" Type="MasterSrc">
<Identifier>main</Identifier>
<FilePathName>src\main.axs</FilePathName>
<Comments></Comments>
</File>
<File CompileType="Netlinx" Type="Include">
<Identifier>lib</Identifier>
<FilePathName>include\lib.axi</FilePathName>
<Comments></Comments>
</File>
</Workspace>
`

func TestWorkspaceBuildCommands(t *testing.T) {
	logging.Initialize("silent")
	t.Cleanup(func() { logging.Initialize("verbose") })

	dir := t.TempDir()
	for _, rel := range []string{"src/main.axs", "include/lib.axi"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	wsPath := filepath.Join(dir, "room.apw")
	require.NoError(t, os.WriteFile(wsPath, []byte(buildDescriptor), 0o644))

	ws, err := apw.Load(context.Background(), wsPath)
	require.NoError(t, err)

	opts := nlrc.OptionsFromConfig(config.Defaults().Build)
	opts.Path = "nlrc"
	opts.IncludePath = []string{"/shared/include"}

	cmds := workspaceBuildCommands(ws, opts)
	require.Len(t, cmds, 1)

	assert.Equal(t, []string{
		filepath.Join(dir, "src", "main.axs"),
		"-I" + filepath.Join(dir, "include") + ";/shared/include",
	}, cmds[0].Argv())
	assert.True(t, logging.ShouldProceed())
}
