package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/apw"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/common"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

// execDepsCommand executes the deps subcommand and handles all errors
func execDepsCommand(result *olive.ArgParseResult, loglevel string) {
	wsPath, _ := result.PrimaryArg()
	target := absPath(wsPath)

	loadConfig(filepath.Dir(target), config.AppConfig{Log: config.LogConfig{Level: loglevel}})
	logging.LogHeader(common.GenlinxVersion, target)

	ctx, cancel := interruptContext()
	defer cancel()

	ws := loadWorkspace(ctx, target)

	logging.BeginPhase("Scanning")
	implicit, err := ws.ImplicitReferences(ctx)
	if err != nil {
		logging.LogError("Scanner", err)
	} else {
		logging.EndPhase(true)
	}

	displayWorkspace(ws, implicit)

	for _, ref := range ws.MissingFiles() {
		logging.LogWarning("Workspace", fmt.Sprintf("missing %s file `%s`", ref.Type, ref.Path))
	}

	for _, id := range implicit {
		logging.LogWarning("Workspace", fmt.Sprintf("`%s` is referenced but not declared", id))
	}

	exitOnErrors()
}

// displayWorkspace prints the files and derived paths of a workspace.
func displayWorkspace(ws *apw.Workspace, implicit []string) {
	fmt.Println()
	logging.PrintInfoMessage("Workspace", ws.ID())
	logging.PrintInfoMessage("Files", fmt.Sprintf("%d declared, %d unique, %d missing",
		ws.TotalFileCount(), ws.UniqueFileCount(), len(ws.MissingFiles())))

	if ws.UniqueFileCount() > 0 {
		data := pterm.TableData{{"Type", "Identifier", "Path", "Exists"}}
		for _, ref := range ws.UniqueFileReferences() {
			data = append(data, []string{string(ref.Type), ref.ID, ref.Path, strconv.FormatBool(ref.Exists)})
		}

		fmt.Println()
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	displayPaths("Include Path", ws.IncludePath())
	displayPaths("Module Path", ws.ModulePath())
	displayPaths("Master Source Path", ws.MasterSrcPath())
	displayPaths("Implicit", implicit)
}

func displayPaths(title string, paths []string) {
	if len(paths) == 0 {
		return
	}

	fmt.Println()
	logging.PrintInfoMessage(title, "")
	for _, p := range paths {
		fmt.Println("  " + p)
	}
}
