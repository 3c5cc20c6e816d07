package nlrc

import (
	"errors"
	"os"
	"os/exec"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
)

// ErrCompilerNotFound is returned when no NetLinx compiler can be found.
var ErrCompilerNotFound = errors.New("unable to locate the NetLinx compiler")

// executableNames are looked up on the PATH when the compiler is not at any
// configured location.
var executableNames = []string{"NLRC.exe", "nlrc"}

// Locate finds the compiler executable.  The configured path is tried first,
// then the default NetLinx Studio install location and finally the PATH.
func Locate(configured string) (string, error) {
	for _, candidate := range []string{configured, config.DefaultNLRCPath} {
		if candidate == "" {
			continue
		}

		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range executableNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrCompilerNotFound
}
