package transformer

import (
	"strings"

	"github.com/snipd/sdk/snippet"
)

// PropagateText records, on every variable node, the line fragments of the
// literal text preceding it at its position in the template. The final
// fragment is the text after the last newline, which the expansion engine
// uses to replicate indentation across multi-line substitutions.
//
// Only leaf nodes advance the tracking state. Containers are visited by the
// walk but never touch it, so a placeholder whose first child is a variable
// still sees the text that precedes the placeholder. A text leaf replaces
// the state with its own line fragments; a variable leaf captures the state
// without resetting it (its eventual substitution is unknown here); any
// other leaf resets the state, for the same reason.
func PropagateText(root *snippet.Node) {
	last := []string{""}
	snippet.Walk(root, func(n *snippet.Node) bool {
		switch n.Kind {
		case snippet.KindSnippet, snippet.KindPlaceholder:
			// container boundaries are invisible to prefix tracking
		case snippet.KindText:
			last = strings.Split(n.Esc, "\n")
		case snippet.KindVariable:
			n.PreviousText = last
		default:
			last = []string{""}
		}
		return false
	})
}
