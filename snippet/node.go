package snippet

import "encoding/json"

// Kind discriminates the node variants of a snippet tree.
type Kind int

const (
	KindText Kind = iota
	KindTabstop
	KindPlaceholder
	KindChoice
	KindVariable
	KindSnippet
)

var kindNames = [...]string{
	"text",
	"tabstop",
	"placeholder",
	"choice",
	"variable",
	"snippet",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalJSON emits the kind name instead of the enum value.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Node is a single vertex of a parsed snippet template.
//
// A template parses into a KindSnippet root whose children are the top-level
// constructs of the body. Dependents and PreviousText start out nil and are
// populated by the load-time passes in the transformer package.
type Node struct {
	Kind Kind

	// Tabstop is the index this node is bound to. It is meaningful only for
	// the kinds Indexed reports true for; index 0 is reserved for the exit
	// point after normalization.
	Tabstop int

	// Name is the variable name of a KindVariable node.
	Name string

	// Esc is the escape-decoded literal content of a KindText node.
	Esc string

	// Children holds nested nodes for placeholders and the snippet root, and
	// the literal options of a choice. Choice options are never traversed by
	// Walk; they are plain text alternatives.
	Children []*Node

	// Transform, when set, rewrites this node's mirrored or substituted text
	// before insertion.
	Transform *Transform

	// Dependents lists the copy nodes that mirror this node's content. It is
	// set only on authority nodes: non-nil (possibly empty) on every
	// authority, nil on copies.
	Dependents []*Node

	// PreviousText holds the line fragments of the literal text preceding a
	// KindVariable node at its position in the template. The final fragment
	// is the text after the last newline, i.e. what sits before the variable
	// on its own line.
	PreviousText []string
}

// Indexed reports whether the node kind carries a tabstop index.
func (n *Node) Indexed() bool {
	switch n.Kind {
	case KindTabstop, KindPlaceholder, KindChoice:
		return true
	}
	return false
}

// MarshalJSON emits only the fields meaningful for the node's kind.
func (n *Node) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{"kind": n.Kind}
	if n.Indexed() {
		m["tabstop"] = n.Tabstop
	}
	if n.Name != "" {
		m["name"] = n.Name
	}
	if n.Kind == KindText {
		m["esc"] = n.Esc
	}
	if len(n.Children) > 0 {
		m["children"] = n.Children
	}
	if n.Transform != nil {
		m["transform"] = n.Transform
	}
	if n.Dependents != nil {
		m["dependents"] = n.Dependents
	}
	if n.PreviousText != nil {
		m["previous_text"] = n.PreviousText
	}
	return json.Marshal(m)
}

// Transform is a regex substitution template applied to captured text before
// it is reused, for example when a mirror rewrites the authority's content.
type Transform struct {
	// Pattern is the regex source, uncompiled.
	Pattern string `json:"pattern"`
	// Option holds the regex flags ("g", "i", "m", "s").
	Option string `json:"option,omitempty"`
	// Format is the ordered replacement template.
	Format []Format `json:"format"`
}

// Format is one fragment of a transform's replacement template: either
// literal text or a reference to a capture group.
type Format struct {
	// Esc is literal text, set only when Capture is false.
	Esc string `json:"esc,omitempty"`

	// Capture marks the fragment as a capture-group reference.
	Capture bool `json:"capture,omitempty"`
	// Index is the referenced group number.
	Index int `json:"index,omitempty"`
	// Modifier is a case modifier: "upcase", "downcase" or "capitalize".
	// Unrecognized modifiers pass the capture through unchanged.
	Modifier string `json:"modifier,omitempty"`

	// IfText is emitted instead of the capture when the group matched
	// non-empty; ElseText when it did not match or matched empty.
	IfText   string `json:"if_text,omitempty"`
	ElseText string `json:"else_text,omitempty"`
	HasIf    bool   `json:"has_if,omitempty"`
	HasElse  bool   `json:"has_else,omitempty"`
}
