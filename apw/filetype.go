package apw

import (
	"path/filepath"
	"strings"
)

// FileType is the functional role a file plays within a workspace.  The
// values match the `Type` attribute used by workspace descriptors.
type FileType string

// Enumeration of the file types a workspace descriptor may declare.
const (
	FileTypeWorkspace FileType = "Workspace"
	FileTypeModule    FileType = "Module"
	FileTypeMasterSrc FileType = "MasterSrc"
	FileTypeSource    FileType = "Source"
	FileTypeInclude   FileType = "Include"
	FileTypeIR        FileType = "IR"
	FileTypeTP4       FileType = "TP4"
	FileTypeTP5       FileType = "TP5"
	FileTypeTPD       FileType = "TPD"
	FileTypeKPD       FileType = "KPD"
	FileTypeAXB       FileType = "AXB"
	FileTypeTKO       FileType = "TKO"
	FileTypeIRDB      FileType = "IRDB"
	FileTypeIRNDB     FileType = "IRNDB"
	FileTypeDuet      FileType = "Duet"
	FileTypeTOK       FileType = "TOK"
	FileTypeTKN       FileType = "TKN"
	FileTypeKPB       FileType = "KPB"
	FileTypeXDD       FileType = "XDD"
	FileTypeOther     FileType = "Other"
)

// sourceExtensions maps file types to the extension of their source form.
// Types without an entry have no canonical extension.
var sourceExtensions = map[FileType]string{
	FileTypeWorkspace: ".apw",
	FileTypeModule:    ".axs",
	FileTypeMasterSrc: ".axs",
	FileTypeSource:    ".axs",
	FileTypeInclude:   ".axi",
	FileTypeIR:        ".irl",
	FileTypeTP4:       ".tp4",
	FileTypeTP5:       ".tp5",
	FileTypeTPD:       ".tpd",
	FileTypeDuet:      ".jar",
	FileTypeXDD:       ".xdd",
}

// compiledExtensions maps the compileable file types to the extension the
// compiler gives their output.
var compiledExtensions = map[FileType]string{
	FileTypeModule:    ".tko",
	FileTypeMasterSrc: ".tkn",
	FileTypeSource:    ".tkn",
}

// extensionTypes is the reverse lookup used to classify arbitrary paths.
var extensionTypes = map[string]FileType{
	".axs": FileTypeModule,
	".axi": FileTypeInclude,
	".jar": FileTypeDuet,
	".xdd": FileTypeXDD,
	".apw": FileTypeWorkspace,
	".irl": FileTypeIR,
	".tp4": FileTypeTP4,
	".tp5": FileTypeTP5,
	".tpd": FileTypeTPD,
	".tko": FileTypeModule,
	".tkn": FileTypeSource,
}

// Extension returns the source form extension of the file type.
func (ft FileType) Extension() (string, bool) {
	ext, ok := sourceExtensions[ft]
	return ext, ok
}

// CompiledExtension returns the extension of the compiled form of the file
// type.  Only modules and sources have a compiled form.
func (ft FileType) CompiledExtension() (string, bool) {
	ext, ok := compiledExtensions[ft]
	return ext, ok
}

// FileTypeFromExtension classifies a path by its extension.
func FileTypeFromExtension(path string) (FileType, bool) {
	ft, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]
	return ft, ok
}

// FileIsReadable reports whether a path is a NetLinx text file that can
// contain include or module directives.
func FileIsReadable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".axs", ".axi":
		return true
	}

	return false
}
