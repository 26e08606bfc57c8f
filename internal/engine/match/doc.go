// Package match compiles user-supplied regular expressions and iterates their
// matches over a text slice.
//
// Two dialects are supported. ECMAScript (the default) is backed by
// github.com/dlclark/regexp2 in ECMAScript mode and accepts the same syntax as a
// JavaScript RegExp. RE2 uses the standard library regexp package.
//
// Matches are reported in characters (runes), not bytes:
//
//	pat, err := match.Compile(`\d+`, match.DefaultOptions())
//	if err != nil {
//	    return err // wraps match.ErrInvalidPattern
//	}
//	seq := pat.Matches("abc123def456")
//	for m, ok := seq.Next(); ok; m, ok = seq.Next() {
//	    fmt.Println(m.Start, m.Length) // 3 3, then 9 3
//	}
//	if err := seq.Err(); err != nil {
//	    return err
//	}
//
// A Sequence always makes progress: after a zero-length match the scan
// resumes one character further, so iteration terminates for every pattern.
package match
