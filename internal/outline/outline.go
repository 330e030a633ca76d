// Package outline holds the raw editable tree behind the editor surface.
// The tree is free-form while the user types; a deterministic repair pass
// restores it to the fixed title-plus-body shape after every edit, so no
// mutation site needs its own validation.
package outline

// Kind tags a node in the raw tree.
type Kind string

const (
	// KindTitle is the document title node, always at position 0.
	KindTitle Kind = "title"
	// KindBody is an endpoint row, at positions 1 and up.
	KindBody Kind = "body"
)

// DefaultTitle is the content given to a title node the repair pass has to
// invent.
const DefaultTitle = "Untitled"

// Node is one line of the raw tree.
type Node struct {
	Kind Kind
	Text string
}

// Title returns a title node.
func Title(text string) Node { return Node{Kind: KindTitle, Text: text} }

// Body returns a body node.
func Body(text string) Node { return Node{Kind: KindBody, Text: text} }

// kindFor is the kind a node's position demands.
func kindFor(position int) Kind {
	if position == 0 {
		return KindTitle
	}
	return KindBody
}

// Normalize repairs tree into the canonical shape: a title node at position
// 0 followed by at least one body node, with every node's kind matching its
// position. Content is preserved; only structural tags change. Normalize is
// idempotent and runs after every raw edit, including ones that delete the
// title or every body node.
func Normalize(tree []Node) []Node {
	out := make([]Node, 0, len(tree)+2)
	out = append(out, tree...)

	if len(out) < 1 {
		out = append(out, Title(DefaultTitle))
	}
	if len(out) < 2 {
		out = append(out, Body(""))
	}
	for i := range out {
		if want := kindFor(i); out[i].Kind != want {
			out[i].Kind = want
		}
	}
	return out
}

// IsNormalized reports whether tree already satisfies the canonical shape.
func IsNormalized(tree []Node) bool {
	if len(tree) < 2 {
		return false
	}
	for i, n := range tree {
		if n.Kind != kindFor(i) {
			return false
		}
	}
	return true
}
