package outline

import (
	"time"

	"github.com/quillhq/quill/internal/document"
)

// ToDocument maps a raw tree back onto the domain model. Position 0's text
// becomes the title; each body node maps 1:1, in order, to an endpoint.
// Records are matched against prev positionally, never by content: an
// existing position keeps its identity, fields, method, and creation time,
// and fresh local ids are minted only for positions prev did not have.
func ToDocument(tree []Node, prev document.Document) document.Document {
	tree = Normalize(tree)
	now := time.Now()

	doc := prev
	if doc.Title != tree[0].Text {
		doc.Title = tree[0].Text
		doc.Updated = now
	}

	bodies := tree[1:]
	endpoints := make([]document.Endpoint, 0, len(bodies))
	for i, node := range bodies {
		if i < len(prev.Endpoints) {
			ep := prev.Endpoints[i]
			if ep.Title != node.Text {
				ep.Title = node.Text
				ep.Updated = now
			}
			endpoints = append(endpoints, ep.At(i))
			continue
		}
		endpoints = append(endpoints, document.NewEndpoint(node.Text, document.MethodGet).At(i))
	}
	doc.Endpoints = endpoints
	return doc
}

// FromDocument seeds the editable tree from authoritative state, e.g. after
// a full reload. It is the inverse of ToDocument up to content equality.
func FromDocument(doc document.Document) []Node {
	tree := make([]Node, 0, len(doc.Endpoints)+1)
	tree = append(tree, Title(doc.Title))
	for _, ep := range doc.Endpoints {
		tree = append(tree, Body(ep.Title))
	}
	return Normalize(tree)
}
