package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/apw"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/common"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/nlrc"

	"github.com/ComedicChimera/olive"
)

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	filePath, _ := result.PrimaryArg()
	target := absPath(filePath)

	cfg := loadConfig(filepath.Dir(target), config.AppConfig{
		Build: config.BuildConfig{NLRCPath: stringArg(result, "nlrc")},
		Log:   config.LogConfig{Level: loglevel},
	})

	logging.LogHeader(common.GenlinxVersion, target)

	ctx, cancel := interruptContext()
	defer cancel()

	compilerPath, err := nlrc.Locate(cfg.Build.NLRCPath)
	if err != nil {
		logging.LogFatal("Compiler", err)
	}

	opts := nlrc.OptionsFromConfig(cfg.Build)
	opts.Path = compilerPath

	var cmds []*nlrc.Command
	switch ext := strings.ToLower(filepath.Ext(target)); ext {
	case common.WorkspaceFileExt:
		cmds = workspaceBuildCommands(loadWorkspace(ctx, target), opts)
	case common.CfgFileExt:
		cmds = append(cmds, mustCommand(nlrc.CfgBuildCommand(target, opts)))
	case common.SourceFileExt:
		cmds = append(cmds, mustCommand(nlrc.SourceBuildCommand(target, opts)))
	default:
		logging.LogFatal("Build", fmt.Errorf("unable to build `%s` files", ext))
	}

	if logging.ShouldProceed() {
		compile(ctx, cmds)
	}

	exitOnErrors()
}

// workspaceBuildCommands creates a compiler command for every master source
// file in the workspace.  Missing files are logged as errors since the
// compiler would fail on them anyway.
func workspaceBuildCommands(ws *apw.Workspace, opts nlrc.Options) []*nlrc.Command {
	for _, ref := range ws.MissingFiles() {
		logging.LogError("Workspace", fmt.Errorf("missing %s file `%s`", ref.Type, ref.Path))
	}

	if !logging.ShouldProceed() {
		return nil
	}

	masterSrcs := ws.MasterSrcFiles()
	if len(masterSrcs) == 0 {
		logging.LogFatal("Workspace", errors.New("workspace declares no master source files"))
	}

	opts.IncludePath = common.UniqueStrings(ws.IncludePath(), opts.IncludePath)
	opts.ModulePath = common.UniqueStrings(ws.ModulePath(), opts.ModulePath)

	var cmds []*nlrc.Command
	for _, ref := range masterSrcs {
		cmds = append(cmds, mustCommand(nlrc.SourceBuildCommand(ws.ResolvePath(ref), opts)))
	}

	return cmds
}

// compile runs each command in turn inside the compiling phase.
func compile(ctx context.Context, cmds []*nlrc.Command) {
	logging.BeginPhase("Compiling")
	runner := &nlrc.Runner{}

	for _, cmd := range cmds {
		logging.LogInfo("Compiler", cmd.String())

		res, err := runner.Run(ctx, cmd)
		if err != nil {
			var ce *nlrc.CompileError
			if errors.As(err, &ce) {
				logging.LogError("Compiler", fmt.Errorf("%s\n%s", err, strings.TrimSpace(ce.Result.Output)))
				continue
			}

			logging.LogFatal("Compiler", err)
		}

		if res.Warnings > 0 {
			logging.LogWarning("Compiler", fmt.Sprintf("%s: %d warning(s)", cmd.Args[0].Value, res.Warnings))
		}
	}

	logging.EndPhase(logging.ShouldProceed())
}

// mustCommand unwraps a command constructor result.  Construction only fails
// if the working directory cannot be determined.
func mustCommand(cmd *nlrc.Command, err error) *nlrc.Command {
	if err != nil {
		logging.LogFatal("Build", err)
	}

	return cmd
}
