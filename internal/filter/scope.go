package filter

import (
	"fmt"
	"path"
	"strings"
)

// ScopeKind tags the ScopeExpr variant.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeInclude
	ScopeExclude
)

// ScopeExpr is the user-supplied file filter: all files, only files matching
// one of Patterns, or only files matching none of them.
type ScopeExpr struct {
	Kind     ScopeKind
	Patterns []string
}

// All returns the scope that keeps every documentable file.
func All() ScopeExpr { return ScopeExpr{Kind: ScopeAll} }

// Include returns a scope keeping files that match any pattern.
func Include(patterns ...string) ScopeExpr {
	return ScopeExpr{Kind: ScopeInclude, Patterns: patterns}
}

// Exclude returns a scope keeping files that match no pattern.
func Exclude(patterns ...string) ScopeExpr {
	return ScopeExpr{Kind: ScopeExclude, Patterns: patterns}
}

// ParseScope parses "all", "include:<p1,p2>" or "exclude:<p1,p2>".
func ParseScope(s string) (ScopeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return All(), nil
	}

	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return All(), fmt.Errorf("unrecognized scope %q: expected all, include:<patterns> or exclude:<patterns>", s)
	}

	var patterns []string
	for _, p := range strings.Split(rest, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return All(), fmt.Errorf("scope %q has no patterns", s)
	}

	switch strings.ToLower(kind) {
	case "include":
		return Include(patterns...), nil
	case "exclude":
		return Exclude(patterns...), nil
	default:
		return All(), fmt.Errorf("unrecognized scope kind %q: expected include or exclude", kind)
	}
}

// String renders the expression in the form ParseScope accepts.
func (s ScopeExpr) String() string {
	switch s.Kind {
	case ScopeInclude:
		return "include:" + strings.Join(s.Patterns, ",")
	case ScopeExclude:
		return "exclude:" + strings.Join(s.Patterns, ",")
	default:
		return "all"
	}
}

// Matches reports whether any pattern matches p. A pattern matches on an
// exact basename, a substring of the basename or full path, or a glob
// anchored to the whole basename.
func Matches(p string, patterns []string) bool {
	base := path.Base(p)
	for _, pattern := range patterns {
		if pattern == base || strings.Contains(base, pattern) || strings.Contains(p, pattern) {
			return true
		}
		if strings.ContainsAny(pattern, "*?[") {
			if ok, err := path.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
