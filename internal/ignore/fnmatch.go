package ignore

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// nothing is a pattern that can never match, e.g. one holding `[z-a]`.
type nothing struct{}

func (nothing) Match(string) bool { return false }

func compile(pattern string) (glob.Glob, error) {
	translated, ok := translate(pattern)
	if !ok {
		return nothing{}, nil
	}
	return glob.Compile(translated)
}

// translate rewrites an fnmatch(3) pattern into gobwas/glob syntax. The
// second result is false when a bracket class in pattern matches no character.
func translate(pattern string) (string, bool) {
	p := []rune(pattern)
	var b strings.Builder

	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case '*', '?':
			b.WriteRune(c)
		case '[':
			end := classEnd(p, i+1)
			if end < 0 {
				writeEscaped(&b, c)
				continue
			}
			class, ok := translateClass(p[i+1 : end])
			if !ok {
				return "", false
			}
			b.WriteString(class)
			i = end
		default:
			writeEscaped(&b, c)
		}
	}
	return b.String(), true
}

// classEnd returns the index of the `]` closing a class whose body starts at
// j, or -1. A `]` right after `[` or `[!` belongs to the body.
func classEnd(p []rune, j int) int {
	if j < len(p) && p[j] == '!' {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for ; j < len(p); j++ {
		if p[j] == ']' {
			return j
		}
	}
	return -1
}

type span struct{ lo, hi rune }

// translateClass converts a bracket body (without the brackets). gobwas/glob
// accepts a single range or a single character list per class, so mixed
// positive classes become alternations and mixed negated classes are expanded
// into a list.
func translateClass(body []rune) (string, bool) {
	negate := len(body) > 0 && body[0] == '!'
	if negate {
		body = body[1:]
	}

	var spans []span
	for k := 0; k < len(body); {
		if k+2 < len(body) && body[k+1] == '-' {
			// reversed ranges match nothing
			if body[k] <= body[k+2] {
				spans = append(spans, span{body[k], body[k+2]})
			}
			k += 3
			continue
		}
		spans = append(spans, span{body[k], body[k]})
		k++
	}

	switch {
	case len(spans) == 0 && negate:
		return "?", true
	case len(spans) == 0:
		return "", false
	case len(spans) == 1:
		return spanClass(spans[0], negate), true
	case negate:
		return listClass(expand(spans), true), true
	}

	var singles []rune
	var ranges []string
	for _, s := range spans {
		if s.lo == s.hi {
			singles = append(singles, s.lo)
			continue
		}
		ranges = append(ranges, spanClass(s, false))
	}
	if len(ranges) == 0 {
		return listClass(singles, false), true
	}
	if len(singles) > 0 {
		ranges = append(ranges, listClass(singles, false))
	}
	return "{" + strings.Join(ranges, ",") + "}", true
}

func spanClass(s span, negate bool) string {
	if s.lo == s.hi || (!negate && s.lo == '!') {
		return listClass(expand([]span{s}), negate)
	}
	not := ""
	if negate {
		not = "!"
	}
	return "[" + not + string(s.lo) + "-" + string(s.hi) + "]"
}

// listClass writes a character list. A `-` goes first so that it is never
// read as a range.
func listClass(chars []rune, negate bool) string {
	var b strings.Builder
	b.WriteByte('[')
	if negate {
		b.WriteByte('!')
	}

	dash := false
	for _, c := range chars {
		if c == '-' {
			dash = true
		}
	}
	if dash {
		b.WriteByte('-')
	}
	for _, c := range chars {
		switch c {
		case '-':
			continue
		case ']', '\\', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte(']')
	return b.String()
}

func expand(spans []span) []rune {
	seen := make(map[rune]struct{})
	for _, s := range spans {
		for c := s.lo; c <= s.hi; c++ {
			seen[c] = struct{}{}
		}
	}
	out := make([]rune, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func writeEscaped(b *strings.Builder, c rune) {
	switch c {
	case '*', '?', '[', ']', '{', '}', ',', '\\':
		b.WriteByte('\\')
	}
	b.WriteRune(c)
}
