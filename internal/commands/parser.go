package commands

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/doxai/doxai/internal/filter"
	"github.com/doxai/doxai/internal/logging"
)

// commandToken finds "!name" at the start of the text or after whitespace.
var commandToken = regexp.MustCompile(`(?:^|\s)!([A-Za-z][A-Za-z0-9_-]*)`)

// Parser recognizes a fixed set of command specs. It holds no mutable state
// and may be shared.
type Parser struct {
	specs  map[string]Spec
	logger *zap.SugaredLogger
}

// NewParser creates a parser for the given specs. Later specs with a
// duplicate name replace earlier ones.
func NewParser(logger *zap.SugaredLogger, specs ...Spec) *Parser {
	p := &Parser{
		specs:  make(map[string]Spec, len(specs)),
		logger: logging.OrNop(logger),
	}
	for _, s := range specs {
		p.specs[s.Name] = s
	}
	return p
}

// Spec returns the registered spec for name.
func (p *Parser) Spec(name string) (Spec, bool) {
	s, ok := p.specs[name]
	return s, ok
}

// Parse returns the first recognized command in text, or nil if the text
// contains none. Validation failures never make Parse fail: the command is
// returned with Valid=false and Errors describing each bad option.
func (p *Parser) Parse(text string) *Command {
	spec, rest, ok := p.locate(text)
	if !ok {
		return nil
	}

	cmd := &Command{
		Name:   spec.Name,
		Values: make(map[string]string, len(spec.Options)),
		Valid:  true,
	}
	for _, o := range spec.Options {
		cmd.Values[o.Name] = o.Default
	}

	for _, kv := range scanOptions(rest) {
		if _, known := spec.Option(kv.key); !known {
			msg := fmt.Sprintf("unknown option --%s ignored", kv.key)
			cmd.Warnings = append(cmd.Warnings, msg)
			p.logger.Warnw("unknown command option", "command", spec.Name, "option", kv.key)
			continue
		}
		if !kv.hasValue {
			cmd.Valid = false
			cmd.Errors = append(cmd.Errors, fmt.Sprintf("--%s requires a value", kv.key))
			continue
		}
		cmd.Values[kv.key] = kv.value
	}

	for _, o := range spec.Options {
		if o.Validate == nil {
			continue
		}
		if err := o.Validate(cmd.Values[o.Name]); err != nil {
			cmd.Valid = false
			cmd.Errors = append(cmd.Errors, fmt.Sprintf("invalid value %q for --%s: %v", cmd.Values[o.Name], o.Name, err))
		}
	}

	cmd.Options = typedOptions(cmd.Values)
	return cmd
}

// locate finds the first command token naming a registered spec and returns
// the text following it.
func (p *Parser) locate(text string) (Spec, string, bool) {
	for _, m := range commandToken.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if spec, ok := p.specs[name]; ok {
			return spec, text[m[1]:], true
		}
	}
	return Spec{}, "", false
}

type option struct {
	key      string
	value    string
	hasValue bool
}

// scanOptions collects --key value and --key=value pairs. Tokens that are
// not options are ignored, so prose around the command is harmless.
func scanOptions(rest string) []option {
	fields := strings.Fields(rest)
	var opts []option
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if !strings.HasPrefix(tok, "--") || len(tok) == 2 {
			continue
		}
		key := tok[2:]
		if k, v, ok := strings.Cut(key, "="); ok {
			opts = append(opts, option{key: k, value: v, hasValue: v != ""})
			continue
		}
		if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "--") {
			opts = append(opts, option{key: key, value: fields[i+1], hasValue: true})
			i++
			continue
		}
		opts = append(opts, option{key: key})
	}
	return opts
}

func typedOptions(values map[string]string) Options {
	scope, err := filter.ParseScope(values[OptionScope])
	if err != nil {
		scope = filter.All()
	}
	return Options{
		Scope: scope,
		Lang:  Lang(strings.ToLower(values[OptionLang])),
	}
}
