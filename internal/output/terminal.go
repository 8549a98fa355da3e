// internal/output/terminal.go
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteMarkdown writes md to w, rendered with glamour when w is a terminal
// and verbatim otherwise.
func WriteMarkdown(w io.Writer, md string) error {
	if IsTerminal(w) {
		if rendered, err := RenderMarkdown(md, 100); err == nil {
			md = rendered
		}
	}
	_, err := io.WriteString(w, md)
	return err
}

// RenderMarkdown renders md for a terminal of the given width.
func RenderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
