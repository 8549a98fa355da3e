// Package prompt renders the system and user prompts sent to the AI
// gateway for creating or updating a file's documentation.
package prompt

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/doxai/doxai/internal/logging"
	"github.com/doxai/doxai/internal/outline"
)

// Prompt is a rendered (system, user) pair.
type Prompt struct {
	System string
	User   string
	Group  LanguageGroup
}

// CreateData holds every field the create templates reference.
type CreateData struct {
	Project  string
	Path     string
	Language string
	Source   string
	Outline  string
}

// UpdateData adds the current documentation to CreateData.
type UpdateData struct {
	CreateData
	ExistingDoc string
}

// Request describes one file to document. ExistingDoc nil selects the
// create templates.
type Request struct {
	Project     string
	Path        string
	Source      string
	ExistingDoc *string
	Lang        Lang
}

// Builder renders prompts from an immutable Registry.
type Builder struct {
	registry *Registry
	logger   *zap.SugaredLogger
}

// NewBuilder creates a Builder. A nil registry builds the default one.
func NewBuilder(registry *Registry, logger *zap.SugaredLogger) *Builder {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Builder{registry: registry, logger: logging.OrNop(logger)}
}

// Build renders the create or update prompt for req.
func (b *Builder) Build(ctx context.Context, req Request) (Prompt, error) {
	data := CreateData{
		Project:  req.Project,
		Path:     req.Path,
		Language: LanguageName(req.Path),
		Source:   req.Source,
		Outline:  b.outline(ctx, req.Path, req.Source),
	}
	if req.ExistingDoc == nil {
		return b.CreatePrompt(req.Lang, data)
	}
	return b.UpdatePrompt(req.Lang, UpdateData{CreateData: data, ExistingDoc: *req.ExistingDoc})
}

// CreatePrompt renders the prompt for a file without documentation.
func (b *Builder) CreatePrompt(lang Lang, data CreateData) (Prompt, error) {
	group := GroupFor(data.Path)
	t, err := b.registry.Lookup(group, lang)
	if err != nil {
		return Prompt{}, err
	}
	user, err := render(t.Create.Execute, data)
	if err != nil {
		return Prompt{}, fmt.Errorf("rendering create prompt for %s: %w", data.Path, err)
	}
	return Prompt{System: t.System, User: user, Group: group}, nil
}

// UpdatePrompt renders the prompt for revising existing documentation.
func (b *Builder) UpdatePrompt(lang Lang, data UpdateData) (Prompt, error) {
	group := GroupFor(data.Path)
	t, err := b.registry.Lookup(group, lang)
	if err != nil {
		return Prompt{}, err
	}
	user, err := render(t.Update.Execute, data)
	if err != nil {
		return Prompt{}, fmt.Errorf("rendering update prompt for %s: %w", data.Path, err)
	}
	return Prompt{System: t.System, User: user, Group: group}, nil
}

func (b *Builder) outline(ctx context.Context, path, source string) string {
	if !outline.Supported(path) {
		return ""
	}
	o, err := outline.Extract(ctx, path, []byte(source))
	if err != nil {
		b.logger.Debugw("outline unavailable", "file", path, "error", err)
		return ""
	}
	return o.Markdown()
}

func render(exec func(w io.Writer, data any) error, data any) (string, error) {
	var buf bytes.Buffer
	if err := exec(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
