package anthropic

import (
	"bufio"
	"io"
	"strings"
)

// maxSSELine bounds a single data line. Long generated documents arrive as
// many small deltas, so 1 MiB leaves ample headroom.
const maxSSELine = 1 << 20

type sseEvent struct {
	Event string
	Data  string
}

// sseScanner yields one Server-Sent Event per Next call.
type sseScanner struct {
	scanner *bufio.Scanner
	event   sseEvent
	err     error
	done    bool
}

func newSSEScanner(r io.Reader) *sseScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxSSELine)
	return &sseScanner{scanner: s}
}

// Next advances to the next event. It returns false at end of input or on
// a read error; check Err afterwards.
func (s *sseScanner) Next() bool {
	if s.done {
		return false
	}

	var current sseEvent
	var lines []string
	pending := func() bool { return len(lines) > 0 || current.Event != "" }

	for s.scanner.Scan() {
		line := s.scanner.Text()
		switch {
		case line == "":
			if pending() {
				current.Data = strings.Join(lines, "\n")
				s.event = current
				return true
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			current.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	s.err = s.scanner.Err()
	s.done = true

	if pending() {
		current.Data = strings.Join(lines, "\n")
		s.event = current
		return true
	}
	return false
}

func (s *sseScanner) Event() sseEvent { return s.event }

func (s *sseScanner) Err() error { return s.err }
