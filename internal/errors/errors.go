// Package errors re-exports github.com/cockroachdb/errors so every doxai
// package builds errors the same way: sentinels checked with Is, context
// added with Wrap, and user-facing hints attached with WithHint that end up
// in the comment posted to the pull request.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
)

var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Shared sentinels. Packages wrap or mark these to keep the category while
// adding context.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = New("not found")
	// ErrConflict indicates the resource already exists.
	ErrConflict = New("resource conflict")
	// ErrUnauthorized indicates the credential was rejected.
	ErrUnauthorized = New("unauthorized")
)

// Hint returns the joined user-facing hints of err, or "".
func Hint(err error) string {
	if err == nil {
		return ""
	}
	return FlattenHints(err)
}
