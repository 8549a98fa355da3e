// internal/output/json.go
package output

import "encoding/json"

// JSONFormatter outputs RunSummary as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the RunSummary as indented JSON. Nil lists are emitted
// as empty arrays.
func (f *JSONFormatter) Format(summary *RunSummary) ([]byte, error) {
	s := *summary
	s.DurationMs = summary.Duration.Milliseconds()
	s.Result = normalize(summary.Result)
	return json.MarshalIndent(&s, "", "  ")
}

func normalize(r Result) Result {
	if r.Generated == nil {
		r.Generated = []string{}
	}
	if r.Updated == nil {
		r.Updated = []string{}
	}
	if r.Deleted == nil {
		r.Deleted = []string{}
	}
	if r.Skipped == nil {
		r.Skipped = []Skip{}
	}
	if r.Failed == nil {
		r.Failed = []Failure{}
	}
	return r
}
