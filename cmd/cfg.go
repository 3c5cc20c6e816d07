package cmd

import (
	"os"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"

	"github.com/ComedicChimera/olive"
)

// execCfgCommand executes the `cfg` subcommand and its subcommands.  It handles
// all errors related to this command
func execCfgCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	switch subcmdName {
	case "init":
		var path string
		if subResult.HasFlag("global") {
			globalPath, err := config.GlobalConfigPath()
			if err != nil {
				logging.PrintErrorMessage("Config Init Error", err)
				os.Exit(1)
			}

			path = globalPath
		} else {
			workDir, err := os.Getwd()
			if err != nil {
				logging.PrintErrorMessage("Path Error", err)
				os.Exit(1)
			}

			path = config.LocalConfigPath(workDir)
		}

		if err := config.InitConfig(path, subResult.HasFlag("force")); err != nil {
			logging.PrintErrorMessage("Config Init Error", err)
			os.Exit(1)
		}

		logging.PrintInfoMessage("Config", "wrote "+path)
	}
}
