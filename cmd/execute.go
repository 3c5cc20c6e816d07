package cmd

import (
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/common"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
	"os"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `genlinx` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI(common.AppName, "genlinx is a tool for building and packaging NetLinx workspaces", true)
	cli.AddSelectorArg("loglevel", "ll", "the console log level (overrides the configured level)", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a workspace, build configuration or source file", true)
	buildCmd.AddPrimaryArg("file-path", "the path to the .apw, .cfg or .axs file to build", true)
	buildCmd.AddStringArg("nlrc", "n", "the path to the NetLinx compiler", false)

	archiveCmd := cli.AddSubcommand("archive", "package the files of a workspace into a zip archive", true)
	archiveCmd.AddPrimaryArg("workspace-path", "the path to the workspace file", true)
	archiveCmd.AddStringArg("output", "o", "the path of the archive to create", false)
	archiveCmd.AddFlag("compiled", "c", "include compiled modules and sources in the archive")

	depsCmd := cli.AddSubcommand("deps", "list the dependencies of a workspace", true)
	depsCmd.AddPrimaryArg("workspace-path", "the path to the workspace file", true)

	cfgCmd := cli.AddSubcommand("cfg", "manage genlinx configuration", true)
	cfgInitCmd := cfgCmd.AddSubcommand("init", "write a default config file", true)
	cfgInitCmd.AddFlag("global", "g", "write the global config rather than the local one")
	cfgInitCmd.AddFlag("force", "f", "overwrite an existing config file")

	cli.AddSubcommand("version", "print the genlinx version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	loglevel := stringArg(result, "loglevel")

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, loglevel)
	case "archive":
		execArchiveCommand(subResult, loglevel)
	case "deps":
		execDepsCommand(subResult, loglevel)
	case "cfg":
		execCfgCommand(subResult)
	case "version":
		logging.PrintInfoMessage("genlinx Version", common.GenlinxVersion)
	}
}

// stringArg returns the value of an optional string argument.
func stringArg(result *olive.ArgParseResult, name string) string {
	value, _ := result.Arguments[name].(string)
	return value
}
