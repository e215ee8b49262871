package transformer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snipd/sdk/snippet"
)

func capture(idx int) snippet.Format {
	return snippet.Format{Capture: true, Index: idx}
}

func modified(idx int, mod string) snippet.Format {
	return snippet.Format{Capture: true, Index: idx, Modifier: mod}
}

func literal(s string) snippet.Format {
	return snippet.Format{Esc: s}
}

func TestBuildReplace(t *testing.T) {
	cases := []struct {
		name string
		spec *snippet.Transform
		in   []string
		out  []string
	}{
		{
			name: "no match is identity",
			spec: &snippet.Transform{Pattern: "xyz", Format: []snippet.Format{literal("gone")}},
			in:   []string{"hello world"},
			out:  []string{"hello world"},
		},
		{
			name: "first match only without g",
			spec: &snippet.Transform{Pattern: "o", Format: []snippet.Format{literal("0")}},
			in:   []string{"foo"},
			out:  []string{"f0o"},
		},
		{
			name: "all matches with g",
			spec: &snippet.Transform{Pattern: "o", Option: "g", Format: []snippet.Format{literal("0")}},
			in:   []string{"foo"},
			out:  []string{"f00"},
		},
		{
			name: "raw capture",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{capture(1), literal("!")}},
			in:   []string{"hello world"},
			out:  []string{"hello! world"},
		},
		{
			name: "upcase",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{modified(1, "upcase")}},
			in:   []string{"hello"},
			out:  []string{"HELLO"},
		},
		{
			name: "downcase",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{modified(1, "downcase")}},
			in:   []string{"HeLLo"},
			out:  []string{"hello"},
		},
		{
			name: "capitalize uppercases the first rune only",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{modified(1, "capitalize")}},
			in:   []string{"hello World"},
			out:  []string{"Hello World"},
		},
		{
			name: "unknown modifier passes through",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{modified(1, "reverse")}},
			in:   []string{"hello"},
			out:  []string{"hello"},
		},
		{
			name: "if-present text wins over modifier",
			spec: &snippet.Transform{Pattern: `(\w+)`, Format: []snippet.Format{
				{Capture: true, Index: 1, Modifier: "upcase", IfText: "yes", HasIf: true},
			}},
			in:  []string{"hello"},
			out: []string{"yes"},
		},
		{
			name: "absent group emits else text",
			spec: &snippet.Transform{Pattern: `(\w+)(?: (\w+))?`, Format: []snippet.Format{
				capture(1),
				literal("-"),
				{Capture: true, Index: 2, IfText: "two", HasIf: true, ElseText: "one", HasElse: true},
			}},
			in:  []string{"hello"},
			out: []string{"hello-one"},
		},
		{
			name: "present group emits if text",
			spec: &snippet.Transform{Pattern: `(\w+)(?: (\w+))?`, Format: []snippet.Format{
				capture(1),
				literal("-"),
				{Capture: true, Index: 2, IfText: "two", HasIf: true, ElseText: "one", HasElse: true},
			}},
			in:  []string{"hello world"},
			out: []string{"hello-two"},
		},
		{
			name: "empty match counts as absent",
			spec: &snippet.Transform{Pattern: `(\w*)-`, Format: []snippet.Format{
				{Capture: true, Index: 1, ElseText: "none", HasElse: true},
			}},
			in:  []string{"-tail"},
			out: []string{"nonetail"},
		},
		{
			name: "absent group with no else emits nothing",
			spec: &snippet.Transform{Pattern: `(a)|(b)`, Format: []snippet.Format{capture(1), capture(2)}},
			in:   []string{"b"},
			out:  []string{"b"},
		},
		{
			name: "unmatched spans copied through",
			spec: &snippet.Transform{Pattern: `\d+`, Option: "g", Format: []snippet.Format{literal("#")}},
			in:   []string{"a1b22c"},
			out:  []string{"a#b#c"},
		},
		{
			name: "multi-line input matches across the joined string",
			spec: &snippet.Transform{Pattern: "o\nw", Format: []snippet.Format{literal("-")}},
			in:   []string{"hello", "world"},
			out:  []string{"hell-orld"},
		},
		{
			name: "replacement can introduce lines",
			spec: &snippet.Transform{Pattern: " ", Format: []snippet.Format{literal("\n")}},
			in:   []string{"a b"},
			out:  []string{"a", "b"},
		},
		{
			name: "rune offsets survive multibyte prefixes",
			spec: &snippet.Transform{Pattern: "l", Format: []snippet.Format{literal("L")}},
			in:   []string{"héllo"},
			out:  []string{"héLlo"},
		},
		{
			name: "case-insensitive flag",
			spec: &snippet.Transform{Pattern: "hello", Option: "i", Format: []snippet.Format{literal("hi")}},
			in:   []string{"HELLO there"},
			out:  []string{"hi there"},
		},
	}

	b := NewBuilder(NewEngine())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rep, err := b.Build(c.spec)
			require.NoError(t, err)
			require.Equal(t, c.out, rep(c.in))
		})
	}
}

func TestBuildBadPattern(t *testing.T) {
	b := NewBuilder(NewEngine())
	_, err := b.Build(&snippet.Transform{Pattern: "("})
	require.Error(t, err)
	require.True(t, ErrBadPattern.Is(err))
}

func TestBuildWithoutEngine(t *testing.T) {
	b := NewBuilder(nil)
	rep, err := b.Build(&snippet.Transform{
		Pattern: `(\w+)`,
		Format:  []snippet.Format{modified(1, "upcase")},
	})
	require.NoError(t, err)

	in := []string{"left", "right"}
	require.Equal(t, in, rep(in), "degraded builder must pass text through")
}

func TestReplacerIsReusable(t *testing.T) {
	b := NewBuilder(NewEngine())
	rep, err := b.Build(&snippet.Transform{
		Pattern: "a",
		Option:  "g",
		Format:  []snippet.Format{literal("b")},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"bb"}, rep([]string{"aa"}))
	require.Equal(t, []string{"bb"}, rep([]string{"aa"}), "second run sees fresh state")
}
