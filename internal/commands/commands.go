// Package commands parses trigger comments such as
// "!doxai --scope include:src/ --lang en" into validated commands.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/doxai/doxai/internal/filter"
)

// Lang is the output language requested for generated documentation.
type Lang string

const (
	LangKo Lang = "ko"
	LangEn Lang = "en"
)

// OptionDef describes a single --key value option accepted by a command.
type OptionDef struct {
	Name        string
	Description string
	Default     string
	// Validate returns a non-nil error when the raw value is unusable.
	Validate func(value string) error
}

// Spec is the fixed option schema of one recognized command.
type Spec struct {
	Name        string
	Description string
	Options     []OptionDef
}

// Option returns the definition of the named option.
func (s Spec) Option(name string) (OptionDef, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionDef{}, false
}

// Options are the typed values of a parsed command. Values may be
// semantically invalid when the owning Command is not Valid.
type Options struct {
	Scope filter.ScopeExpr
	Lang  Lang
}

// Command is the result of parsing one comment. It is not modified after
// Parse returns.
type Command struct {
	Name     string
	Options  Options
	Values   map[string]string
	Valid    bool
	Errors   []string
	Warnings []string
}

// Value returns the raw string value of an option after defaults and
// overrides were applied.
func (c *Command) Value(name string) string {
	return c.Values[name]
}

// String renders the command back into trigger syntax with options sorted
// by name.
func (c *Command) String() string {
	keys := make([]string, 0, len(c.Values))
	for k := range c.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("!" + c.Name)
	for _, k := range keys {
		fmt.Fprintf(&b, " --%s %s", k, c.Values[k])
	}
	return b.String()
}
