package apw

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorHeader = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE Workspace [

<!-- Common Elements -->
<!ELEMENT Identifier (#PCDATA)>
<!ELEMENT Comments (#PCDATA)>
<!ELEMENT MasterDirectory (#PCDATA)>
<!ELEMENT CreationDate (#PCDATA)>
]>

`

// fileRecord renders a `<File>` element the way NetLinx Studio writes it.
func fileRecord(ft FileType, id, path string) string {
	return fmt.Sprintf(`<File CompileType="Netlinx" Type="%s">
<Identifier>%s</Identifier>
<FilePathName>%s</FilePathName>
<Comments></Comments>
</File>
`, ft, id, path)
}

// moduleRecordWithDeviceMap renders a module `<File>` element that carries a
// device map block.
func moduleRecordWithDeviceMap(id, path string) string {
	return fmt.Sprintf(`<File CompileType="Netlinx" Type="Module">
<Identifier>%s</Identifier>
<FilePathName>%s</FilePathName>
<Comments></Comments>
<DeviceMap DevAddr="dvTP">
<DevName>dvTP</DevName>
</DeviceMap>
</File>
`, id, path)
}

// descriptorText renders a complete workspace descriptor.
func descriptorText(id string, records ...string) string {
	var sb strings.Builder
	sb.WriteString(descriptorHeader)
	sb.WriteString(`<Workspace CompileType="Netlinx" Include_Path="" Object_Path="" Module_Path="" Library_Path="">
`)
	sb.WriteString("<Identifier>" + id + "</Identifier>\n")
	sb.WriteString(`<CreateVersion>4.0.0.0</CreateVersion>
<Comments></Comments>
<Project>
<Identifier>Project</Identifier>
<Designer></Designer>
<System IsActive="true" Platform="Netlinx" Transport="Serial" TransportEx="TCPIP">
<Identifier>System</Identifier>
<SysID>0</SysID>
`)
	for _, rec := range records {
		sb.WriteString(rec)
	}
	sb.WriteString("</System>\n</Project>\n</Workspace>\n")

	return sb.String()
}

// writeFile writes content to dir/rel, creating parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestReadDescriptorMissingFile(t *testing.T) {
	_, err := readDescriptor(filepath.Join(t.TempDir(), "nope.apw"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestReadDescriptorRejectsOtherDocuments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "other.apw", "<?xml version=\"1.0\"?>\n<Workspace></Workspace>\n")

	_, err := readDescriptor(path)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseID(t *testing.T) {
	id, err := parseID(descriptorText("Test Workspace"))
	require.NoError(t, err)
	assert.Equal(t, "Test Workspace", id)
}

func TestParseIDOnElementLine(t *testing.T) {
	text := descriptorHeader + `<Workspace CompileType="Netlinx"><Identifier>Inline</Identifier>` + "\n</Workspace>\n"

	id, err := parseID(text)
	require.NoError(t, err)
	assert.Equal(t, "Inline", id)
}

func TestParseIDMissing(t *testing.T) {
	text := descriptorHeader + "<Workspace CompileType=\"Netlinx\">\n<Comments></Comments>\n</Workspace>\n"

	_, err := parseID(text)
	require.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestParseFileReferences(t *testing.T) {
	text := descriptorText("WS",
		fileRecord(FileTypeMasterSrc, "main", "main.axs"),
		fileRecord(FileTypeInclude, "lib", `include\lib.axi`),
		moduleRecordWithDeviceMap("panel", "module/panel.axs"),
		fileRecord(FileTypeTP4, "touch", "ui/touch.tp4"),
	)

	refs := parseFileReferences(text)
	require.Len(t, refs, 4)

	assert.Equal(t, FileReference{Type: FileTypeMasterSrc, ID: "main", Path: "main.axs"}, refs[0])
	assert.Equal(t, FileReference{Type: FileTypeInclude, ID: "lib", Path: `include\lib.axi`}, refs[1])
	assert.Equal(t, FileReference{Type: FileTypeModule, ID: "panel", Path: "module/panel.axs"}, refs[2])
	assert.Equal(t, FileReference{Type: FileTypeTP4, ID: "touch", Path: "ui/touch.tp4"}, refs[3])
}

func TestParseFileReferencesCRLF(t *testing.T) {
	text := descriptorText("WS",
		fileRecord(FileTypeMasterSrc, "main", "main.axs"),
		moduleRecordWithDeviceMap("panel", "module/panel.axs"),
	)
	text = strings.ReplaceAll(text, "\n", "\r\n")

	refs := parseFileReferences(text)
	require.Len(t, refs, 2)
	assert.Equal(t, "main.axs", refs[0].Path)
	assert.Equal(t, "main", refs[0].ID)
	assert.Equal(t, "module/panel.axs", refs[1].Path)
	assert.Equal(t, FileTypeModule, refs[1].Type)
}

func TestParseFileReferencesSkipsMalformedRecords(t *testing.T) {
	noIdentifier := `<File CompileType="Netlinx" Type="Include">
<FilePathName>broken.axi</FilePathName>
<Comments></Comments>
</File>
`
	emptyPath := `<File CompileType="Netlinx" Type="Include">
<Identifier>empty</Identifier>
<FilePathName></FilePathName>
<Comments></Comments>
</File>
`

	text := descriptorText("WS",
		fileRecord(FileTypeMasterSrc, "main", "main.axs"),
		noIdentifier,
		emptyPath,
		fileRecord(FileTypeInclude, "lib", "lib.axi"),
	)

	refs := parseFileReferences(text)
	require.Len(t, refs, 2)
	assert.Equal(t, "main", refs[0].ID)
	assert.Equal(t, "lib", refs[1].ID)
}

func TestParseFileReferencesNone(t *testing.T) {
	assert.Empty(t, parseFileReferences(descriptorText("WS")))
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "Test-Workspace", normalizeID("Test Workspace"))
	assert.Equal(t, "A-B-C", normalizeID("A B\tC"))
	assert.Equal(t, "Single", normalizeID("Single"))
}
