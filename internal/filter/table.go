package filter

import (
	"path"
	"strings"
)

// documentableExtensions lists source extensions that get documentation.
var documentableExtensions = []string{
	// web / frontend
	".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".vue", ".svelte", ".html", ".css", ".scss",
	// object-oriented
	".java", ".kt", ".kts", ".scala", ".cs", ".swift", ".m", ".rb", ".php", ".py", ".dart",
	// functional
	".hs", ".ex", ".exs", ".erl", ".clj", ".ml", ".fs", ".elm",
	// native
	".go", ".rs", ".c", ".h", ".cc", ".cpp", ".hpp", ".zig",
	// data / schema
	".sql", ".graphql", ".gql", ".proto", ".prisma", ".yaml", ".yml",
}

// specialFilenames are documented regardless of extension.
var specialFilenames = []string{
	"Dockerfile", "Makefile", "Jenkinsfile", "Rakefile", "Gemfile",
	"Vagrantfile", "Procfile", "CMakeLists.txt",
}

// excludeSubstrings drop a file when found anywhere in its full path.
var excludeSubstrings = []string{
	"node_modules/", "vendor/", "dist/", "build/", ".git/", "__pycache__/",
	"coverage/", ".min.", ".d.ts", "package-lock", "yarn.lock", ".github/",
}

// Table decides which paths are documentable. A Table is immutable once
// built; Extend returns a new one.
type Table struct {
	extensions map[string]bool
	special    map[string]bool
	excludes   []string
}

// DefaultTable returns the built-in documentable table.
func DefaultTable() *Table {
	t := &Table{
		extensions: make(map[string]bool, len(documentableExtensions)),
		special:    make(map[string]bool, len(specialFilenames)),
		excludes:   append([]string(nil), excludeSubstrings...),
	}
	for _, ext := range documentableExtensions {
		t.extensions[ext] = true
	}
	for _, name := range specialFilenames {
		t.special[name] = true
	}
	return t
}

// Extend returns a copy of t with additional extensions and exclude
// substrings, as configured per repository.
func (t *Table) Extend(extensions, excludes []string) *Table {
	out := &Table{
		extensions: make(map[string]bool, len(t.extensions)+len(extensions)),
		special:    t.special,
		excludes:   append(append([]string(nil), t.excludes...), excludes...),
	}
	for ext := range t.extensions {
		out.extensions[ext] = true
	}
	for _, ext := range extensions {
		out.extensions[strings.ToLower(ext)] = true
	}
	return out
}

// Documentable reports whether p passes the unconditional first stage:
// a whitelisted extension or special filename, and no exclude substring.
func (t *Table) Documentable(p string) bool {
	for _, sub := range t.excludes {
		if sub != "" && strings.Contains(p, sub) {
			return false
		}
	}
	base := path.Base(p)
	if t.special[base] {
		return true
	}
	return t.extensions[strings.ToLower(path.Ext(base))]
}
