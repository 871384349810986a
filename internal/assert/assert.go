// Package assert is a tiny helper for runtime invariant panics (reading the
// level of a point never leveled, re-leveling, linking before leveling,
// re-linking); degree caps are not checked through it. These are
// programmer errors, not recoverable conditions, so
// they panic rather than return an error, the same split the teacher draws
// between hnsw.validateConfig (returns an error) and hnsw.Insert's
// panic("vector cannot be empty") (a precondition violation).
package assert

import "fmt"

// That panics with a formatted message if cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
