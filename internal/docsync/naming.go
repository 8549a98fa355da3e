package docsync

import (
	"fmt"
	"path"
	"strings"
)

// DocPath maps a source path to its documentation path:
// <root>/<command>/<source path without extension><ext>.
// Only the last extension is removed, so a.test.js -> a.test.adoc.
func DocPath(root, command, sourcePath, ext string) string {
	clean := strings.TrimPrefix(path.Clean("/"+sourcePath), "/")
	dir, file := path.Split(clean)
	if e := path.Ext(file); e != "" && e != file {
		file = strings.TrimSuffix(file, e)
	}
	return path.Join(root, command, dir, file) + ext
}

// BranchName is the deterministic docs branch for a source PR.
func BranchName(project string, prNumber int) string {
	return fmt.Sprintf("docs/%s-pr-%d", project, prNumber)
}

// PRTitle is the deterministic docs PR title for a source PR.
func PRTitle(project string, prNumber int) string {
	return fmt.Sprintf("docs: Generate documentation for %s (PR #%d)", project, prNumber)
}

// isDocsBranchFor reports whether ref is the docs branch for the PR, or
// that branch with a timestamp suffix.
func isDocsBranchFor(ref, project string, prNumber int) bool {
	name := BranchName(project, prNumber)
	return ref == name || strings.HasPrefix(ref, name+"-")
}
