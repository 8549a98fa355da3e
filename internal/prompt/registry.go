package prompt

import (
	"fmt"
	"text/template"
)

// Lang selects the language the documentation is written in.
type Lang string

const (
	Korean  Lang = "ko"
	English Lang = "en"
)

// Templates is the per-group record used to render prompts.
type Templates struct {
	System string
	Create *template.Template
	Update *template.Template
}

type key struct {
	group LanguageGroup
	lang  Lang
}

// Registry is an immutable table of templates keyed by group and language.
// Build it once with NewRegistry and share the pointer.
type Registry struct {
	entries map[key]Templates
}

// NewRegistry parses every template. It panics on a malformed built-in
// template, like template.Must.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[key]Templates, len(Groups)*2)}
	for _, lang := range []Lang{Korean, English} {
		text := texts[lang]
		for _, g := range Groups {
			focus, ok := text.focus[g]
			if !ok {
				panic(fmt.Sprintf("prompt: no %s focus text for group %s", lang, g))
			}
			name := fmt.Sprintf("%s-%s", g, lang)
			r.entries[key{g, lang}] = Templates{
				System: text.system + "\n\n" + focus,
				Create: template.Must(template.New(name + "-create").Option("missingkey=error").Parse(text.create)),
				Update: template.Must(template.New(name + "-update").Option("missingkey=error").Parse(text.update)),
			}
		}
	}
	return r
}

// Lookup returns the templates for a group and language. Unknown languages
// fall back to Korean.
func (r *Registry) Lookup(g LanguageGroup, lang Lang) (Templates, error) {
	if t, ok := r.entries[key{g, lang}]; ok {
		return t, nil
	}
	if t, ok := r.entries[key{g, Korean}]; ok {
		return t, nil
	}
	return Templates{}, fmt.Errorf("no templates for group %s", g)
}
