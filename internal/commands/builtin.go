package commands

import (
	"fmt"
	"strings"

	"github.com/doxai/doxai/internal/filter"
)

// Option names shared by the documentation command.
const (
	OptionScope = "scope"
	OptionLang  = "lang"
)

// DocsSpec returns the schema of the documentation command, e.g.
// "!doxai --scope exclude:test --lang en".
func DocsSpec(name string, defaultLang Lang) Spec {
	if defaultLang == "" {
		defaultLang = LangKo
	}
	return Spec{
		Name:        name,
		Description: "Generate or update documentation for the files changed in this merged pull request.",
		Options: []OptionDef{
			{
				Name:        OptionScope,
				Description: "Which changed files to document: all, include:<patterns> or exclude:<patterns> (comma separated).",
				Default:     "all",
				Validate: func(v string) error {
					_, err := filter.ParseScope(v)
					return err
				},
			},
			{
				Name:        OptionLang,
				Description: "Language of the generated documentation: ko or en.",
				Default:     string(defaultLang),
				Validate:    validateLang,
			},
		},
	}
}

func validateLang(v string) error {
	switch Lang(strings.ToLower(v)) {
	case LangKo, LangEn:
		return nil
	default:
		return fmt.Errorf("must be one of %s, %s", LangKo, LangEn)
	}
}
