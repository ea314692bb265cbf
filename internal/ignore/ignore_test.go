package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	rules, err := New([]string{"/tmp/*", "/var/lib/?ache/[ab]*"}, []string{"/some/other/file"})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		target string
		want   bool
	}{
		{"literal", "/some/other/file", true},
		{"literal is exact", "/some/other/file2", false},
		{"star", "/tmp/foo", true},
		{"star spans separators", "/tmp/foo/bar", true},
		{"anchored at start", "/x/tmp/foo", false},
		{"question mark and class", "/var/lib/cache/abc", true},
		{"class mismatch", "/var/lib/cache/xyz", false},
		{"case sensitive", "/TMP/foo", false},
		{"neither", "/usr/lib/libc.so.6", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.Match(tc.target))
		})
	}
}

func TestEmptyRulesNeverMatch(t *testing.T) {
	var zero Rules
	assert.False(t, zero.Match("/tmp/foo"))
	assert.False(t, zero.Match(""))
	assert.True(t, zero.Empty())

	empty, err := New(nil, nil)
	require.NoError(t, err)
	assert.False(t, empty.Match("/tmp/foo"))
	assert.True(t, empty.Empty())
}

func TestMatchEvaluatesBothKinds(t *testing.T) {
	// the literal and the pattern overlap; either one alone must be enough
	byLiteral := MustNew(nil, []string{"/a/b"})
	byPattern := MustNew([]string{"/a/*"}, nil)
	both := MustNew([]string{"/a/*"}, []string{"/a/b"})

	for _, r := range []Rules{byLiteral, byPattern, both} {
		assert.True(t, r.Match("/a/b"))
	}
	assert.False(t, byLiteral.Match("/a/c"))
	assert.True(t, byPattern.Match("/a/c"))
}

func TestPatternsFollowFnmatch(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		target  string
		want    bool
	}{
		{"unclosed bracket is literal", "/lib/[abc", "/lib/[abc", true},
		{"unclosed bracket is not a class", "/lib/[abc", "/lib/a", false},
		{"braces are literal", "/opt/{a,b}/*", "/opt/{a,b}/x", true},
		{"braces do not alternate", "/opt/{a,b}/*", "/opt/a/x", false},
		{"backslash is literal", `/tmp/\x*`, `/tmp/\xy`, true},
		{"backslash does not escape", `/tmp/\*`, "/tmp/*", false},
		{"range and char", "/lib/[a-cx].so", "/lib/b.so", true},
		{"range and char other", "/lib/[a-cx].so", "/lib/x.so", true},
		{"range and char miss", "/lib/[a-cx].so", "/lib/d.so", false},
		{"negated range and char", "/lib/[!a-cx].so", "/lib/d.so", true},
		{"negated range and char miss", "/lib/[!a-cx].so", "/lib/x.so", false},
		{"leading close bracket", "/[]]x", "/]x", true},
		{"negated close bracket", "/[!]]x", "/]x", false},
		{"negated close bracket other", "/[!]]x", "/ax", true},
		{"trailing dash", "/[a-]", "/-", true},
		{"reversed range", "/[z-a]", "/m", false},
		{"negated reversed range", "/[!z-a]", "/m", true},
		{"star spans slash", "/usr/*.so", "/usr/lib/x/libz.so", true},
		{"question mark", "/dev/tty?", "/dev/tty1", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := New([]string{tc.pattern}, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rules.Match(tc.target))
		})
	}
}

func TestMerge(t *testing.T) {
	left := MustNew([]string{"/SYSV*"}, []string{"/dev/zero"})
	right := MustNew([]string{"/opt/*", "/SYSV*"}, []string{"/drm"})

	merged := left.Merge(right)

	assert.Equal(t, []string{"/SYSV*", "/opt/*"}, merged.Patterns())
	assert.True(t, merged.Match("/SYSV00000000"))
	assert.True(t, merged.Match("/opt/app/lib.so"))
	assert.True(t, merged.Match("/dev/zero"))
	assert.True(t, merged.Match("/drm"))

	// inputs are untouched
	assert.False(t, left.Match("/drm"))
	assert.False(t, right.Match("/dev/zero"))
}

func TestMatchIsRepeatable(t *testing.T) {
	r := MustNew([]string{"/tmp/*"}, []string{"/x"})
	targets := []string{"/tmp/a", "/x", "/y"}

	first := make([]bool, len(targets))
	for i, tgt := range targets {
		first[i] = r.Match(tgt)
	}
	for i, tgt := range targets {
		assert.Equal(t, first[i], r.Match(tgt), tgt)
	}
}
