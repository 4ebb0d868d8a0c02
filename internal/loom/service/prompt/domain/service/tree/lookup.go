package tree

import (
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
)

// TextChildSuffix is appended to a leaf's id to name the child that keeps its
// text when the leaf gains children.
const TextChildSuffix = "-text"

// Location is where a node sits in a prompt tree.
//
// Parent points at the slice that holds Node: either the top-level slice
// passed to FindByID or the Children field of an ancestor. Splicing through
// Parent mutates the tree in place.
type Location struct {
	Node   *entity.Prompt
	Parent *[]*entity.Prompt
	Index  int
}

// FindByID searches the tree depth-first, pre-order, for the node with id.
// The second return value is false when no node matches.
func FindByID(nodes *[]*entity.Prompt, id string) (Location, bool) {
	if nodes == nil {
		return Location{}, false
	}
	for i, n := range *nodes {
		if n == nil {
			continue
		}
		if n.ID == id {
			return Location{Node: n, Parent: nodes, Index: i}, true
		}
		if len(n.Children) > 0 {
			if loc, ok := FindByID(&n.Children, id); ok {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// InsertAt splices node into *nodes at index. Index is clamped to the slice bounds.
func InsertAt(nodes *[]*entity.Prompt, index int, node *entity.Prompt) {
	s := *nodes
	if index < 0 {
		index = 0
	}
	if index > len(s) {
		index = len(s)
	}
	s = append(s, nil)
	copy(s[index+1:], s[index:])
	s[index] = node
	*nodes = s
}

// InsertBefore places node directly before the located node.
func (l Location) InsertBefore(node *entity.Prompt) {
	InsertAt(l.Parent, l.Index, node)
}

// InsertAfter places node directly after the located node.
func (l Location) InsertAfter(node *entity.Prompt) {
	InsertAt(l.Parent, l.Index+1, node)
}

// AppendChild adds node as the last child of the located node.
// A leaf with text becomes a branch whose first child, "<id>-text", holds
// that text.
func (l Location) AppendChild(node *entity.Prompt) {
	children := l.Node.Children
	if len(children) == 0 && l.Node.Text != "" {
		children = []*entity.Prompt{{ID: l.Node.ID + TextChildSuffix, Text: l.Node.Text}}
	}
	l.Node.SetChildren(append(children, node))
}

// Walk visits every node in document order together with its depth.
// Returning false from fn stops descending into that node's children.
func Walk(nodes []*entity.Prompt, fn func(n *entity.Prompt, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*entity.Prompt, depth int, fn func(n *entity.Prompt, depth int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}
