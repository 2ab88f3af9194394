// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"io"
	"strings"
)

// Node is a parse tree node. Rule nodes carry the rule name and their
// children; token nodes carry the terminal name and the matched text.
type Node struct {
	Name     string
	Terminal bool

	// Start and End are byte offsets into the parsed text.
	Start, End int

	// Text is the exact substring spanned by the node.
	Text string

	Children []*Node
}

// Tree is the result of parsing one text. The root spans the whole input;
// its children are the citation occurrences in document order.
type Tree struct {
	Text string
	Root *Node
}

// Occurrences returns the top-level occurrence nodes in document order.
func (t *Tree) Occurrences() []*Node {
	return t.Root.Children
}

// Walk visits n and its descendants depth-first in document order. When fn
// returns false the children of that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Token returns the first direct child token with the given terminal name.
func (n *Node) Token(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Terminal && c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Format writes an indented outline of the subtree rooted at n.
func (n *Node) Format(w io.Writer) error {
	return n.format(w, 0)
}

func (n *Node) format(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	if n.Terminal {
		_, err := fmt.Fprintf(w, "%s%s %q\n", indent, n.Name, n.Text)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s [%d:%d]\n", indent, n.Name, n.Start, n.End); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.format(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) String() string {
	var b strings.Builder
	n.Format(&b)
	return b.String()
}
