// Package transformer implements the load-time passes that turn a parsed
// snippet tree into the form the jump engine consumes: the exit-point fixup,
// tabstop dependents resolution and variable previous-text propagation, plus
// the transform evaluator applied at expansion time.
package transformer

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/snipd/sdk/snippet"
)

// ErrMalformedTree is returned when a pass is handed a tree that does not
// satisfy the pipeline's contract.
var ErrMalformedTree = errors.NewKind("malformed snippet tree: %s")

// Normalize runs the load-time passes on root, in place and in their
// required order: FixupExit first (the resolver relies on index 0 being
// uniquely settled), then ResolveDependents, then PropagateText (which
// assumes the final tree shape). It is idempotent on a well-formed tree.
func Normalize(root *snippet.Node) error {
	if root == nil || root.Kind != snippet.KindSnippet {
		return ErrMalformedTree.New("root must be a snippet node")
	}
	FixupExit(root)
	ResolveDependents(root)
	PropagateText(root)
	return nil
}
