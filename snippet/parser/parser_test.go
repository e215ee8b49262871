package parser

import (
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/snipd/sdk/snippet"
)

func text(s string) *snippet.Node {
	return &snippet.Node{Kind: snippet.KindText, Esc: s}
}

var parseCases = []struct {
	name string
	src  string
	exp  []*snippet.Node
}{
	{
		name: "plain text",
		src:  "hello world",
		exp:  []*snippet.Node{text("hello world")},
	},
	{
		name: "escapes",
		src:  `\$1 \\ \}`,
		exp:  []*snippet.Node{text(`$1 \ }`)},
	},
	{
		name: "bare tabstop",
		src:  "foo $1 bar",
		exp: []*snippet.Node{
			text("foo "),
			{Kind: snippet.KindTabstop, Tabstop: 1},
			text(" bar"),
		},
	},
	{
		name: "braced tabstop",
		src:  "${10}",
		exp:  []*snippet.Node{{Kind: snippet.KindTabstop, Tabstop: 10}},
	},
	{
		name: "placeholder",
		src:  "${1:foo}",
		exp: []*snippet.Node{
			{Kind: snippet.KindPlaceholder, Tabstop: 1, Children: []*snippet.Node{text("foo")}},
		},
	},
	{
		name: "nested placeholder",
		src:  "${1:foo $2 bar}",
		exp: []*snippet.Node{
			{Kind: snippet.KindPlaceholder, Tabstop: 1, Children: []*snippet.Node{
				text("foo "),
				{Kind: snippet.KindTabstop, Tabstop: 2},
				text(" bar"),
			}},
		},
	},
	{
		name: "empty placeholder",
		src:  "${1:}",
		exp:  []*snippet.Node{{Kind: snippet.KindPlaceholder, Tabstop: 1}},
	},
	{
		name: "choice",
		src:  "${1|one,two,three|}",
		exp: []*snippet.Node{
			{Kind: snippet.KindChoice, Tabstop: 1, Children: []*snippet.Node{
				text("one"), text("two"), text("three"),
			}},
		},
	},
	{
		name: "choice with escaped separators",
		src:  `${1|a\,b,c\|d|}`,
		exp: []*snippet.Node{
			{Kind: snippet.KindChoice, Tabstop: 1, Children: []*snippet.Node{
				text("a,b"), text("c|d"),
			}},
		},
	},
	{
		name: "bare variable",
		src:  "$TM_FILENAME",
		exp:  []*snippet.Node{{Kind: snippet.KindVariable, Name: "TM_FILENAME"}},
	},
	{
		name: "braced variable",
		src:  "${name}",
		exp:  []*snippet.Node{{Kind: snippet.KindVariable, Name: "name"}},
	},
	{
		name: "variable with default",
		src:  "${name:default $1}",
		exp: []*snippet.Node{
			{Kind: snippet.KindVariable, Name: "name", Children: []*snippet.Node{
				text("default "),
				{Kind: snippet.KindTabstop, Tabstop: 1},
			}},
		},
	},
	{
		name: "tabstop transform",
		src:  `${1/(\w+)/${1:/upcase}/g}`,
		exp: []*snippet.Node{
			{Kind: snippet.KindTabstop, Tabstop: 1, Transform: &snippet.Transform{
				Pattern: `(\w+)`,
				Option:  "g",
				Format: []snippet.Format{
					{Capture: true, Index: 1, Modifier: "upcase"},
				},
			}},
		},
	},
	{
		name: "variable transform with literal and escaped slash",
		src:  `${TM_FILENAME/\.go$/_test.go/}`,
		exp: []*snippet.Node{
			{Kind: snippet.KindVariable, Name: "TM_FILENAME", Transform: &snippet.Transform{
				Pattern: `\.go$`,
				Format:  []snippet.Format{{Esc: "_test.go"}},
			}},
		},
	},
	{
		name: "transform format variants",
		src:  `${1/(a)?(b)?/$1${2}${1:+yes}${1:?y:n}${2:-no}${2:none}/}`,
		exp: []*snippet.Node{
			{Kind: snippet.KindTabstop, Tabstop: 1, Transform: &snippet.Transform{
				Pattern: `(a)?(b)?`,
				Format: []snippet.Format{
					{Capture: true, Index: 1},
					{Capture: true, Index: 2},
					{Capture: true, Index: 1, IfText: "yes", HasIf: true},
					{Capture: true, Index: 1, IfText: "y", HasIf: true, ElseText: "n", HasElse: true},
					{Capture: true, Index: 2, ElseText: "no", HasElse: true},
					{Capture: true, Index: 2, ElseText: "none", HasElse: true},
				},
			}},
		},
	},
	{
		name: "lone dollar",
		src:  "price: $ 5",
		exp:  []*snippet.Node{text("price: $ 5")},
	},
	{
		name: "trailing dollar",
		src:  "cost$",
		exp:  []*snippet.Node{text("cost$")},
	},
	{
		name: "unclosed brace falls back to text",
		src:  "${1:a",
		exp:  []*snippet.Node{text("${1:a")},
	},
	{
		name: "unclosed choice falls back to text",
		src:  "${1|a,b",
		exp:  []*snippet.Node{text("${1|a,b")},
	},
	{
		name: "adjacent constructs",
		src:  "$1$2",
		exp: []*snippet.Node{
			{Kind: snippet.KindTabstop, Tabstop: 1},
			{Kind: snippet.KindTabstop, Tabstop: 2},
		},
	},
	{
		name: "multiline body",
		src:  "if $1 {\n\t$0\n}",
		exp: []*snippet.Node{
			text("if "),
			{Kind: snippet.KindTabstop, Tabstop: 1},
			text(" {\n\t"),
			{Kind: snippet.KindTabstop, Tabstop: 0},
			text("\n}"),
		},
	},
}

func TestParse(t *testing.T) {
	for _, c := range parseCases {
		t.Run(c.name, func(t *testing.T) {
			root := Parse(c.src)
			require.Equal(t, snippet.KindSnippet, root.Kind)
			requireTreeEqual(t, c.exp, root.Children)
		})
	}
}

func TestParseFixture(t *testing.T) {
	// a realistic definition body exercising every construct at once
	src := "func ${1:name}(${2:args}) ${3|error,string,int|} {\n" +
		"\t// ${TM_FILENAME/(.*)/${1:/downcase}/}\n" +
		"\t${4:return $3}\n" +
		"}\n$0"

	root := Parse(src)

	var kinds []string
	snippet.Walk(root, func(n *snippet.Node) bool {
		kinds = append(kinds, n.Kind.String())
		return false
	})
	require.Equal(t, []string{
		"snippet",
		"text", "placeholder", "text",
		"text", "placeholder", "text",
		"text", "choice", "text",
		"variable", "text",
		"placeholder", "text", "tabstop",
		"text", "tabstop",
	}, kinds)
}

// requireTreeEqual fails with a unified diff of the JSON dumps, which reads
// a lot better than testify's one-line struct diff for deep trees.
func requireTreeEqual(t *testing.T, exp, got []*snippet.Node) {
	t.Helper()
	ej, err := json.MarshalIndent(exp, "", "  ")
	require.NoError(t, err)
	gj, err := json.MarshalIndent(got, "", "  ")
	require.NoError(t, err)
	if string(ej) == string(gj) {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(ej)),
		B:        difflib.SplitLines(string(gj)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	require.NoError(t, err)
	t.Fatalf("tree mismatch:\n%s", diff)
}
