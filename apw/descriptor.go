package apw

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// doctypePattern matches the preamble every workspace descriptor carries.
var doctypePattern = regexp.MustCompile(`<!DOCTYPE Workspace \[`)

// idPattern matches the identifier of the first `<Workspace>` element.  The
// identifier may be on the same line as the element or on the next one.
var idPattern = regexp.MustCompile(`<Workspace.+\r?\n?.*?<Identifier>(?P<id>.+)<.+>`)

// filePattern matches a single `<File>` record.  Descriptors are not valid
// XML so the records are matched line by line: the type attribute, the nested
// identifier, the path body, up to two trailing lines and an optional
// `<DeviceMap>` block before the closing tag.  A record that does not fit is
// skipped and matching resumes at the next `<File`.
var filePattern = regexp.MustCompile(
	`<File.+Type="(?P<type>.+)".+\r?\n?.*?` +
		`<Identifier>(?P<id>.+)</Identifier>\r?\n?.*?` +
		`>(?P<path>.+)<.+\r?\n?.*?\r?\n?.*?` +
		`(?:<DeviceMap.+\r?\n?.*?\r?\n?.*?\r?\n?)?.*?</File>`,
)

// readDescriptor loads the entire workspace descriptor at path into memory.
func readDescriptor(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrFileNotFound
		}

		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	if !doctypePattern.MatchString(text) {
		return "", ErrInvalidFormat
	}

	return text, nil
}

// parseID extracts the raw workspace identifier from descriptor text.
func parseID(text string) (string, error) {
	match := idPattern.FindStringSubmatch(text)
	if match == nil {
		return "", ErrMissingIdentifier
	}

	id := strings.TrimSpace(match[idPattern.SubexpIndex("id")])
	if id == "" {
		return "", ErrMissingIdentifier
	}

	return id, nil
}

// parseFileReferences extracts every well-formed `<File>` record from the
// descriptor text in file order.  Existence is not populated here.
func parseFileReferences(text string) []FileReference {
	typeNdx := filePattern.SubexpIndex("type")
	idNdx := filePattern.SubexpIndex("id")
	pathNdx := filePattern.SubexpIndex("path")

	var refs []FileReference
	for _, match := range filePattern.FindAllStringSubmatch(text, -1) {
		refs = append(refs, FileReference{
			Type: FileType(match[typeNdx]),
			ID:   match[idNdx],
			Path: match[pathNdx],
		})
	}

	return refs
}

// normalizeID converts a raw identifier into its dashed form: each run of
// whitespace becomes a single dash.
func normalizeID(raw string) string {
	return strings.Join(strings.Fields(raw), "-")
}
