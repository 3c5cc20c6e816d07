package apw

import (
	"context"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// includePattern matches `#include 'name'` anywhere on a line.
var includePattern = regexp.MustCompile(`(?i)#include\s+['"](?P<id>[^'"\r\n]+)['"]`)

// modulePattern matches `define_module 'name'` at the start of a line.
var modulePattern = regexp.MustCompile(`(?im)^define_module\s+['"](?P<id>[^'"\r\n]+)['"]`)

// ImplicitReferences scans every existing source and include file of the
// workspace for directives naming files the descriptor does not declare.  The
// identifiers are returned sorted and without duplicates.  Files are scanned
// concurrently; the first read failure aborts the scan and is returned as a
// *ScanReadError.
func (w *Workspace) ImplicitReferences(ctx context.Context) ([]string, error) {
	var files []string
	for _, ref := range w.uniqueFileReferences {
		if ref.Exists {
			files = append(files, w.ResolvePath(ref))
		}
	}

	results := make([][]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			ids, err := w.ImplicitReferencesFromFile(ctx, file)
			if err != nil {
				return err
			}

			results[i] = ids
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []string
	for _, ids := range results {
		all = append(all, ids...)
	}

	return dedupe(all), nil
}

// ImplicitReferencesFromFile scans a single file for undeclared include and
// module identifiers.  Files that are not NetLinx source or include files
// yield no identifiers.  Relative paths are resolved against the workspace
// directory.
func (w *Workspace) ImplicitReferencesFromFile(ctx context.Context, path string) ([]string, error) {
	if !FileIsReadable(path) {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath := resolveReferencePath(w.dir, path)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &ScanReadError{Path: absPath, Err: err}
	}

	text := string(data)

	ids := w.undeclared(text, includePattern)
	ids = append(ids, w.undeclared(text, modulePattern)...)

	return dedupe(ids), nil
}

// undeclared returns the identifiers matched by pattern that are not already
// part of the workspace.
func (w *Workspace) undeclared(text string, pattern *regexp.Regexp) []string {
	idNdx := pattern.SubexpIndex("id")

	var ids []string
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		id := match[idNdx]
		if w.isInWorkspace(id) {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}

// isInWorkspace reports whether an identifier refers to a declared file.  The
// match is loose: the identifier may equal a declared identifier or appear
// anywhere within a declared path.
func (w *Workspace) isInWorkspace(id string) bool {
	for _, ref := range w.uniqueFileReferences {
		if ref.ID == id || strings.Contains(ref.Path, id) {
			return true
		}
	}

	return false
}

// dedupe returns the sorted set of the given strings.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)
	return out
}
