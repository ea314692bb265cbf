// Package ignore decides whether a deleted path should be left out of a report.
//
// A Rules value holds two independent collections: shell-style glob patterns
// and literal strings. A path is ignored when it equals any literal or when it
// matches any pattern. Patterns are anchored at both ends and `*` also spans
// `/`, the way fnmatch(3) behaves without FNM_PATHNAME. Only `*`, `?` and
// bracket classes are wildcards; every other character, including `{`, `}` and
// `\`, matches itself, and a `[` without a closing `]` is literal.
package ignore

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Rules is an immutable set of ignore patterns and literals.
// The zero value ignores nothing.
type Rules struct {
	patterns []string
	globs    []glob.Glob
	literals map[string]struct{}
}

// New compiles patterns and collects literals into a Rules value.
// Duplicate entries are collapsed. Every fnmatch pattern is valid; an error
// only means the translated pattern was rejected by the glob compiler.
func New(patterns, literals []string) (Rules, error) {
	r := Rules{literals: make(map[string]struct{}, len(literals))}

	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		g, err := compile(p)
		if err != nil {
			return Rules{}, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, p)
		r.globs = append(r.globs, g)
	}

	for _, l := range literals {
		r.literals[l] = struct{}{}
	}
	return r, nil
}

// MustNew is like New but panics on an invalid pattern.
// It is meant for built-in rule sets.
func MustNew(patterns, literals []string) Rules {
	r, err := New(patterns, literals)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether target is suppressed by r.
func (r Rules) Match(target string) bool {
	literal := false
	if _, ok := r.literals[target]; ok {
		literal = true
	}

	pattern := false
	for _, g := range r.globs {
		if g.Match(target) {
			pattern = true
			break
		}
	}

	return literal || pattern
}

// Merge returns the union of r and other. Neither input is modified.
func (r Rules) Merge(other Rules) Rules {
	out := Rules{
		literals: make(map[string]struct{}, len(r.literals)+len(other.literals)),
	}

	seen := make(map[string]struct{}, len(r.patterns)+len(other.patterns))
	for _, src := range []Rules{r, other} {
		for i, p := range src.patterns {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out.patterns = append(out.patterns, p)
			out.globs = append(out.globs, src.globs[i])
		}
		for l := range src.literals {
			out.literals[l] = struct{}{}
		}
	}
	return out
}

// Empty reports whether r has neither patterns nor literals.
func (r Rules) Empty() bool {
	return len(r.globs) == 0 && len(r.literals) == 0
}

// Patterns returns the source glob patterns in insertion order.
func (r Rules) Patterns() []string {
	return append([]string(nil), r.patterns...)
}
