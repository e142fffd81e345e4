// Package pattern provides compiled coregex patterns that are safe to share
// between goroutines.
package pattern

import (
	"sync"

	"github.com/coregx/coregex"
)

// Regex is a compiled pattern usable from many goroutines at once.
// A coregex matcher keeps search state between calls, so every match
// borrows a private copy from a pool and returns it afterwards.
type Regex struct {
	pattern string
	pool    sync.Pool // *coregex.Regexp
}

// Compile compiles pattern. The first compilation is kept for reuse.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	r := &Regex{pattern: pattern}
	r.pool.New = func() any {
		return coregex.MustCompile(pattern)
	}
	r.pool.Put(re)
	return r, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string {
	return r.pattern
}

func (r *Regex) get() *coregex.Regexp {
	return r.pool.Get().(*coregex.Regexp)
}

// MatchString reports whether s contains a match.
func (r *Regex) MatchString(s string) bool {
	re := r.get()
	defer r.pool.Put(re)
	return re.MatchString(s)
}

// FindStringIndex returns the location of the leftmost match in s, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	re := r.get()
	defer r.pool.Put(re)
	return re.FindStringIndex(s)
}

// ReplaceAllString replaces every match in src with repl.
func (r *Regex) ReplaceAllString(src, repl string) string {
	re := r.get()
	defer r.pool.Put(re)
	return re.ReplaceAllString(src, repl)
}
