package common

const (
	// GenlinxVersion is the current genlinx version as a string.
	GenlinxVersion = "0.1.0"

	// AppName is used to name the global config directory.
	AppName = "genlinx"

	// WorkspaceFileExt is the extension of NetLinx workspace descriptors.
	WorkspaceFileExt = ".apw"

	// SourceFileExt is the extension of NetLinx source files.
	SourceFileExt = ".axs"

	// CfgFileExt is the extension of NLRC build configuration files.
	CfgFileExt = ".cfg"

	// GlobalConfigFileName is the name of the global config file within the
	// user config directory.
	GlobalConfigFileName = "config.toml"

	// LocalConfigFileName is the name of the config file placed next to a
	// workspace.
	LocalConfigFileName = ".genlinx.toml"
)
