package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile string

func (f testFile) FilePath() string { return string(f) }

func paths(files []testFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = string(f)
	}
	return out
}

func TestDocumentable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		path string
		want bool
	}{
		{"src/a.js", true},
		{"src/App.TSX", true},
		{"cmd/main.go", true},
		{"Dockerfile", true},
		{"deploy/Makefile", true},
		{"logo.png", false},
		{"README.md", false},
		{"node_modules/lib/index.js", false},
		{"web/dist/bundle.js", false},
		{"static/app.min.js", false},
		{"types/index.d.ts", false},
		{"schema/users.sql", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Documentable(tt.path))
		})
	}
}

func TestTableExtendDoesNotMutateDefault(t *testing.T) {
	base := DefaultTable()
	extended := base.Extend([]string{".tf"}, []string{"generated/"})

	assert.True(t, extended.Documentable("infra/main.tf"))
	assert.False(t, base.Documentable("infra/main.tf"))
	assert.False(t, extended.Documentable("generated/api.go"))
	assert.True(t, base.Documentable("generated/api.go"))
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want ScopeExpr
	}{
		{"", All()},
		{"all", All()},
		{"ALL", All()},
		{"include:src/", Include("src/")},
		{"include:src/, lib/", Include("src/", "lib/")},
		{"exclude:test", Exclude("test")},
		{"exclude:*.spec.ts,fixtures", Exclude("*.spec.ts", "fixtures")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScopeErrors(t *testing.T) {
	for _, in := range []string{"some", "include:", "include: , ", "only:src"} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseScope(in)
			assert.Error(t, err)
			assert.Equal(t, All(), got)
		})
	}
}

func TestScopeStringRoundTrip(t *testing.T) {
	for _, s := range []string{"all", "include:src/,lib", "exclude:test"} {
		parsed, err := ParseScope(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"exact basename", "src/util.js", "util.js", true},
		{"basename substring", "src/user_test.go", "test", true},
		{"path substring", "src/api/handler.go", "src/api", true},
		{"glob on basename", "pkg/foo.spec.ts", "*.spec.ts", true},
		{"glob is anchored", "pkg/foo.spec.ts.bak", "*.spec.ts", false},
		{"glob with directory never matches basename", "lib/foo.go", "spec/*.go", false},
		{"no match", "src/a.js", "lib", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.path, []string{tt.pattern}))
		})
	}
}

func TestByScopeIncludeSrc(t *testing.T) {
	files := []testFile{"src/a.js", "lib/b.js", "docs/src/c.py", "src/logo.png", "resrc/d.go"}
	got := ByScope(New(nil, nil), files, Include("src/"))

	// Substring matching deliberately includes resrc/ and docs/src/.
	assert.Equal(t, []string{"src/a.js", "docs/src/c.py", "resrc/d.go"}, paths(got))
}

func TestByScopeExcludeIsComplement(t *testing.T) {
	files := []testFile{"src/a.js", "src/a_test.js", "test/helpers.py", "main.go", "logo.png"}
	f := New(nil, nil)

	included := ByScope(f, files, Include("test"))
	excluded := ByScope(f, files, Exclude("test"))

	assert.Equal(t, []string{"src/a_test.js", "test/helpers.py"}, paths(included))
	assert.Equal(t, []string{"src/a.js", "main.go"}, paths(excluded))
	assert.Len(t, ByScope(f, files, All()), len(included)+len(excluded))
}

func TestByScopeUnknownKindBehavesAsAll(t *testing.T) {
	files := []testFile{"a.go", "b.png"}
	got := ByScope(New(nil, nil), files, ScopeExpr{Kind: ScopeKind(99), Patterns: []string{"zzz"}})
	assert.Equal(t, []string{"a.go"}, paths(got))
}

func TestByScopeEmptyInput(t *testing.T) {
	assert.Empty(t, ByScope[testFile](New(nil, nil), nil, All()))
}
