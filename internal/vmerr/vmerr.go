// Package vmerr wraps translator errors with a stack trace before they
// reach an embedder (spec §7: translator errors surface during load). Fatal
// execution errors are panics in the vm package and do not pass through
// here. Recoverable conditions are never routed through here either — they
// are documented return values, not errors.
package vmerr

import "github.com/reusee/e5"

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// Wrap attaches a stack trace to err, or returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return wrap(err)
}
