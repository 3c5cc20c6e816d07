package nlrc

import (
	"path/filepath"
	"strings"

	"github.com/Norgate-AV-Solutions-Ltd/genlinx/config"
)

// Options holds everything needed to construct a compiler invocation.
type Options struct {
	// Path is the path to the compiler executable.
	Path string

	// The compiler option prefixes (eg. `-I`).
	CfgOption     string
	IncludeOption string
	ModuleOption  string
	LibraryOption string

	// Directories passed to the compiler.  Empty lists are omitted.
	IncludePath []string
	ModulePath  []string
	LibraryPath []string
}

// OptionsFromConfig creates compiler options from build configuration.
func OptionsFromConfig(cfg config.BuildConfig) Options {
	return Options{
		Path:          cfg.NLRCPath,
		CfgOption:     cfg.CfgOption,
		IncludeOption: cfg.IncludeOption,
		ModuleOption:  cfg.ModuleOption,
		LibraryOption: cfg.LibraryOption,
		IncludePath:   cfg.IncludePath,
		ModulePath:    cfg.ModulePath,
		LibraryPath:   cfg.LibraryPath,
	}
}

// Arg is a single compiler argument: an option prefix followed by a value.
// Positional arguments have no option.
type Arg struct {
	Option string
	Value  string
}

// String renders the argument with its value quoted.
func (a Arg) String() string {
	return a.Option + `"` + a.Value + `"`
}

// Command is a compiler invocation.
type Command struct {
	// Path is the path to the compiler executable.
	Path string

	Args []Arg
}

// Argv returns the arguments as they are passed to the process.
func (c *Command) Argv() []string {
	argv := make([]string, len(c.Args))
	for i, arg := range c.Args {
		argv[i] = arg.Option + arg.Value
	}

	return argv
}

// String renders the command in shell form with the executable and every
// value quoted.
func (c *Command) String() string {
	parts := []string{`"` + c.Path + `"`}
	for _, arg := range c.Args {
		parts = append(parts, arg.String())
	}

	return strings.Join(parts, " ")
}

// CfgBuildCommand creates the command that builds from an NLRC build
// configuration file.
func CfgBuildCommand(file string, opts Options) (*Command, error) {
	filePath, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	return &Command{
		Path: opts.Path,
		Args: []Arg{{Option: opts.CfgOption, Value: filePath}},
	}, nil
}

// SourceBuildCommand creates the command that compiles a single source file
// with the given search paths.
func SourceBuildCommand(file string, opts Options) (*Command, error) {
	filePath, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	args := []Arg{{Value: filePath}}

	if len(opts.IncludePath) > 0 {
		args = append(args, Arg{Option: opts.IncludeOption, Value: strings.Join(opts.IncludePath, ";")})
	}

	if len(opts.ModulePath) > 0 {
		args = append(args, Arg{Option: opts.ModuleOption, Value: strings.Join(opts.ModulePath, ";")})
	}

	if len(opts.LibraryPath) > 0 {
		args = append(args, Arg{Option: opts.LibraryOption, Value: strings.Join(opts.LibraryPath, ";")})
	}

	return &Command{Path: opts.Path, Args: args}, nil
}
