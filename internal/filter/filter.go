// Package filter selects the changed files that get documentation.
package filter

import (
	"go.uber.org/zap"

	"github.com/doxai/doxai/internal/logging"
)

// File is anything with a repository path.
type File interface {
	FilePath() string
}

// Filter applies the documentable table and then a scope expression.
type Filter struct {
	table  *Table
	logger *zap.SugaredLogger
}

// New creates a Filter. A nil table means DefaultTable.
func New(table *Table, logger *zap.SugaredLogger) *Filter {
	if table == nil {
		table = DefaultTable()
	}
	return &Filter{table: table, logger: logging.OrNop(logger)}
}

// Keep reports whether a single path survives both stages.
func (f *Filter) Keep(p string, scope ScopeExpr) bool {
	if !f.table.Documentable(p) {
		return false
	}

	switch scope.Kind {
	case ScopeAll:
		return true
	case ScopeInclude:
		return Matches(p, scope.Patterns)
	case ScopeExclude:
		return !Matches(p, scope.Patterns)
	default:
		f.logger.Warnw("unknown scope kind, treating as all", "kind", int(scope.Kind))
		return true
	}
}

// ByScope returns the subset of files that are documentable and in scope,
// preserving order.
func ByScope[F File](f *Filter, files []F, scope ScopeExpr) []F {
	var kept []F
	for _, file := range files {
		if f.Keep(file.FilePath(), scope) {
			kept = append(kept, file)
		}
	}
	return kept
}
