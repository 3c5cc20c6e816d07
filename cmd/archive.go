package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/archive"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/common"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"

	"github.com/ComedicChimera/olive"
)

// execArchiveCommand executes the archive subcommand and handles all errors
func execArchiveCommand(result *olive.ArgParseResult, loglevel string) {
	wsPath, _ := result.PrimaryArg()
	target := absPath(wsPath)

	cli := config.AppConfig{
		Archive: config.ArchiveConfig{IncludeCompiled: result.HasFlag("compiled")},
		Log:     config.LogConfig{Level: loglevel},
	}

	if output := stringArg(result, "output"); output != "" {
		cli.Archive.Output = absPath(output)
	}

	cfg := loadConfig(filepath.Dir(target), cli)
	logging.LogHeader(common.GenlinxVersion, target)

	ctx, cancel := interruptContext()
	defer cancel()

	ws := loadWorkspace(ctx, target)

	logging.BeginPhase("Archiving")
	b := archive.NewBuilder(ws, archive.Options{
		OutputPath:      cfg.Archive.Output,
		IncludeCompiled: cfg.Archive.IncludeCompiled,
		Exclude:         cfg.Archive.Exclude,
		Compression:     cfg.Archive.Compression,
	})

	manifest, err := b.Build(ctx)
	if err != nil {
		logging.LogFatal("Archive", err)
	}

	logging.EndPhase(true)
	logging.LogInfo("Archive", fmt.Sprintf("wrote %d file(s) to `%s`", len(manifest.Files), b.OutputPath()))

	exitOnErrors()
}
