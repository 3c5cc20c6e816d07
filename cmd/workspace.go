package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/apw"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
	"github.com/Norgate-AV-Solutions-Ltd/genlinx/logging"
)

// interruptContext returns a context that is cancelled when the user
// interrupts the program.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// absPath resolves a path given on the command line.  It exits on failure.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		os.Exit(1)
	}

	return abs
}

// loadConfig loads the configuration for the target in dir and initializes
// the logger with the resulting log level.  The CLI values take precedence
// over the config files.
func loadConfig(dir string, cli config.AppConfig) config.AppConfig {
	cfg, err := config.Load(dir, cli)
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		os.Exit(1)
	}

	logging.Initialize(cfg.Log.Level)
	return cfg
}

// loadWorkspace loads the workspace at path inside the loading phase.  Load
// failures are fatal.
func loadWorkspace(ctx context.Context, path string) *apw.Workspace {
	logging.BeginPhase("Loading")

	pending, err := apw.New(path)
	if err != nil {
		logging.LogFatal("Workspace", err)
	}

	ws, err := pending.Load(ctx)
	if err != nil {
		logging.LogFatal("Workspace", err)
	}

	logging.EndPhase(true)
	return ws
}

// exitOnErrors displays the concluding summary and exits with a non-zero
// status if any errors were logged.
func exitOnErrors() {
	logging.LogFinished()

	if !logging.ShouldProceed() {
		os.Exit(1)
	}
}
