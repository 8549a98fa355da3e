// Package outline extracts a symbol outline (types and functions with line
// numbers) from source files using tree-sitter. The outline is added to
// generation prompts so the model sees the file's structure up front.
package outline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupported is returned for files without a grammar.
var ErrUnsupported = errors.New("no grammar for file")

// Kind classifies an outline entry.
type Kind string

const (
	KindType     Kind = "type"
	KindFunction Kind = "function"
)

// Symbol is one named declaration.
type Symbol struct {
	Kind Kind
	Name string
	Line int
}

// Outline is the ordered list of declarations in one file.
type Outline struct {
	Language string
	Symbols  []Symbol
}

type grammar struct {
	name      string
	lang      func() *sitter.Language
	typeNodes []string
	funcNodes []string
}

var (
	goGrammar = grammar{"go", golang.GetLanguage,
		[]string{"type_spec"},
		[]string{"function_declaration", "method_declaration"}}
	pythonGrammar = grammar{"python", python.GetLanguage,
		[]string{"class_definition"},
		[]string{"function_definition"}}
	jsGrammar = grammar{"javascript", javascript.GetLanguage,
		[]string{"class_declaration"},
		[]string{"function_declaration", "method_definition"}}
	tsGrammar = grammar{"typescript", typescript.GetLanguage,
		[]string{"class_declaration", "interface_declaration", "type_alias_declaration"},
		[]string{"function_declaration", "method_definition"}}
	tsxGrammar = grammar{"tsx", tsx.GetLanguage,
		[]string{"class_declaration", "interface_declaration", "type_alias_declaration"},
		[]string{"function_declaration", "method_definition"}}
	javaGrammar = grammar{"java", java.GetLanguage,
		[]string{"class_declaration", "interface_declaration", "enum_declaration"},
		[]string{"method_declaration", "constructor_declaration"}}
	rustGrammar = grammar{"rust", rust.GetLanguage,
		[]string{"struct_item", "enum_item", "trait_item"},
		[]string{"function_item"}}
	rubyGrammar = grammar{"ruby", ruby.GetLanguage,
		[]string{"class", "module"},
		[]string{"method", "singleton_method"}}
	cGrammar = grammar{"c", c.GetLanguage,
		[]string{"struct_specifier"},
		[]string{"function_definition"}}
	cppGrammar = grammar{"cpp", cpp.GetLanguage,
		[]string{"class_specifier", "struct_specifier"},
		[]string{"function_definition"}}
)

var grammars = map[string]grammar{
	".go":   goGrammar,
	".py":   pythonGrammar,
	".js":   jsGrammar,
	".jsx":  jsGrammar,
	".mjs":  jsGrammar,
	".cjs":  jsGrammar,
	".ts":   tsGrammar,
	".tsx":  tsxGrammar,
	".java": javaGrammar,
	".rs":   rustGrammar,
	".rb":   rubyGrammar,
	".c":    cGrammar,
	".h":    cGrammar,
	".cc":   cppGrammar,
	".cpp":  cppGrammar,
	".hpp":  cppGrammar,
}

// Supported reports whether filename has a grammar.
func Supported(filename string) bool {
	_, ok := grammars[strings.ToLower(path.Ext(filename))]
	return ok
}

// Extract parses source and returns its outline.
func Extract(ctx context.Context, filename string, source []byte) (*Outline, error) {
	g, ok := grammars[strings.ToLower(path.Ext(filename))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupported)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(g.lang())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	kinds := make(map[string]Kind, len(g.typeNodes)+len(g.funcNodes))
	for _, t := range g.typeNodes {
		kinds[t] = KindType
	}
	for _, t := range g.funcNodes {
		kinds[t] = KindFunction
	}

	out := &Outline{Language: g.name}
	walk(tree.RootNode(), func(node *sitter.Node) {
		kind, ok := kinds[node.Type()]
		if !ok {
			return
		}
		name := symbolName(node, source)
		if name == "" {
			return
		}
		out.Symbols = append(out.Symbols, Symbol{
			Kind: kind,
			Name: name,
			Line: int(node.StartPoint().Row) + 1,
		})
	})

	sort.SliceStable(out.Symbols, func(i, j int) bool {
		return out.Symbols[i].Line < out.Symbols[j].Line
	})
	return out, nil
}

// Markdown renders the outline as a bullet list, or "" when empty.
func (o *Outline) Markdown() string {
	if o == nil || len(o.Symbols) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range o.Symbols {
		fmt.Fprintf(&b, "- %s `%s` (line %d)\n", s.Kind, s.Name, s.Line)
	}
	return b.String()
}

func walk(node *sitter.Node, fn func(*sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), fn)
	}
}

// symbolName reads the "name" field, then follows C-style declarator chains
// (function_definition -> function_declarator -> identifier).
func symbolName(node *sitter.Node, source []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return n.Content(source)
	}
	decl := node.ChildByFieldName("declarator")
	for depth := 0; decl != nil && depth < 4; depth++ {
		switch decl.Type() {
		case "identifier", "field_identifier", "qualified_identifier", "destructor_name":
			return decl.Content(source)
		}
		decl = decl.ChildByFieldName("declarator")
	}
	return ""
}
