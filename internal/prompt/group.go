package prompt

import (
	"path"
	"strings"
)

// LanguageGroup buckets source files that share one documentation template.
type LanguageGroup int

const (
	OOPClass LanguageGroup = iota
	Functional
	WebFrontend
	Data
	Native
)

// Groups lists every LanguageGroup. Registry construction walks it, so a
// group without templates fails at startup instead of at lookup.
var Groups = []LanguageGroup{OOPClass, Functional, WebFrontend, Data, Native}

func (g LanguageGroup) String() string {
	switch g {
	case OOPClass:
		return "oop-class"
	case Functional:
		return "functional"
	case WebFrontend:
		return "web-frontend"
	case Data:
		return "data"
	case Native:
		return "native"
	default:
		return "unknown"
	}
}

var extensionGroups = map[string]LanguageGroup{
	".java": OOPClass, ".kt": OOPClass, ".kts": OOPClass, ".scala": OOPClass,
	".cs": OOPClass, ".swift": OOPClass, ".m": OOPClass, ".rb": OOPClass,
	".php": OOPClass, ".py": OOPClass, ".dart": OOPClass,

	".hs": Functional, ".ex": Functional, ".exs": Functional, ".erl": Functional,
	".clj": Functional, ".ml": Functional, ".fs": Functional, ".elm": Functional,

	".js": WebFrontend, ".jsx": WebFrontend, ".mjs": WebFrontend, ".cjs": WebFrontend,
	".ts": WebFrontend, ".tsx": WebFrontend, ".vue": WebFrontend, ".svelte": WebFrontend,
	".html": WebFrontend, ".css": WebFrontend, ".scss": WebFrontend,

	".sql": Data, ".graphql": Data, ".gql": Data, ".proto": Data,
	".prisma": Data, ".yaml": Data, ".yml": Data,

	".go": Native, ".rs": Native, ".c": Native, ".h": Native, ".cc": Native,
	".cpp": Native, ".hpp": Native, ".zig": Native,
}

// GroupFor maps a file to its group. It is total: build files without an
// extension (Dockerfile, Makefile) are Data and anything unknown is OOPClass.
func GroupFor(filename string) LanguageGroup {
	base := path.Base(filename)
	ext := strings.ToLower(path.Ext(base))
	if g, ok := extensionGroups[ext]; ok {
		return g
	}
	if ext == "" || base == "CMakeLists.txt" {
		return Data
	}
	return OOPClass
}

// languageNames gives a human name for the prompt's file description.
var languageNames = map[string]string{
	".java": "Java", ".kt": "Kotlin", ".kts": "Kotlin", ".scala": "Scala", ".cs": "C#",
	".swift": "Swift", ".m": "Objective-C", ".rb": "Ruby", ".php": "PHP", ".py": "Python",
	".dart": "Dart", ".hs": "Haskell", ".ex": "Elixir", ".exs": "Elixir", ".erl": "Erlang",
	".clj": "Clojure", ".ml": "OCaml", ".fs": "F#", ".elm": "Elm",
	".js": "JavaScript", ".jsx": "JavaScript (JSX)", ".mjs": "JavaScript", ".cjs": "JavaScript",
	".ts": "TypeScript", ".tsx": "TypeScript (TSX)", ".vue": "Vue", ".svelte": "Svelte",
	".html": "HTML", ".css": "CSS", ".scss": "SCSS", ".sql": "SQL", ".graphql": "GraphQL",
	".gql": "GraphQL", ".proto": "Protocol Buffers", ".prisma": "Prisma", ".yaml": "YAML",
	".yml": "YAML", ".go": "Go", ".rs": "Rust", ".c": "C", ".h": "C header", ".cc": "C++",
	".cpp": "C++", ".hpp": "C++ header", ".zig": "Zig",
}

// LanguageName describes the file's language for prompts.
func LanguageName(filename string) string {
	base := path.Base(filename)
	if name, ok := languageNames[strings.ToLower(path.Ext(base))]; ok {
		return name
	}
	return base
}
