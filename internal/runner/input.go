// internal/runner/input.go
package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ResolveComment returns the comment text for `doxai parse`.
// Priority: argument > file > stdin. stdin may be nil when it is a TTY.
func ResolveComment(arg, filePath string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(arg) != "" {
		return arg, nil
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading comment file: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("comment file is empty: %s", filePath)
		}
		return string(data), nil
	}

	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), nil
		}
	}

	return "", fmt.Errorf("no comment provided: pass it as an argument, use --file, or pipe it to stdin")
}
