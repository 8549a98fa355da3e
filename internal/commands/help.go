package commands

import (
	"fmt"
	"strings"
)

// Help renders the markdown usage text posted when a command is invalid.
func (s Spec) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### `!%s` usage\n\n", s.Name)
	if s.Description != "" {
		b.WriteString(s.Description + "\n\n")
	}
	fmt.Fprintf(&b, "```\n!%s", s.Name)
	for _, o := range s.Options {
		fmt.Fprintf(&b, " [--%s <value>]", o.Name)
	}
	b.WriteString("\n```\n\n")

	if len(s.Options) == 0 {
		return b.String()
	}

	b.WriteString("| Option | Default | Description |\n")
	b.WriteString("|--------|---------|-------------|\n")
	for _, o := range s.Options {
		def := o.Default
		if def == "" {
			def = "-"
		}
		fmt.Fprintf(&b, "| `--%s` | `%s` | %s |\n", o.Name, def, o.Description)
	}
	return b.String()
}
