package html

import (
	"fmt"
	"strings"
)

// Node is one parsed markup element or text run. The root node has no tag and
// no parent. Parents own their children; the Parent pointer is for lookup
// only and never implies ownership.
type Node struct {
	Tag        string // lowercased, empty for text-only nodes and the root
	Attributes map[string]string
	Text       string // accumulated text runs, newline separated
	Children   []*Node
	Parent     *Node
	Index      int // stable parse-order index, assigned once by the parser
}

func NewElement(tag string, attributes map[string]string, parent *Node) *Node {
	return &Node{
		Tag:        tag,
		Attributes: attributes,
		Parent:     parent,
	}
}

func NewText(text string, parent *Node) *Node {
	return &Node{
		Attributes: map[string]string{},
		Text:       text,
		Parent:     parent,
	}
}

// Attr returns the named attribute or "" when absent.
func (n *Node) Attr(key string) string {
	if n.Attributes == nil {
		return ""
	}
	return n.Attributes[key]
}

// Classes splits the class attribute into its tokens.
func (n *Node) Classes() []string {
	return strings.Fields(n.Attr("class"))
}

// Ancestor walks parent references until a node with the given tag is found.
func (n *Node) Ancestor(tag string) *Node {
	for node := n; node != nil; node = node.Parent {
		if node.Tag == tag {
			return node
		}
	}
	return nil
}

func (n *Node) String() string {
	if n.Tag == "" {
		return fmt.Sprintf("%q", n.Text)
	}
	return "<" + n.Tag + ">"
}

func (n *Node) PrintTree(indent int) {
	fmt.Println(strings.Repeat(" ", indent) + n.String())
	for _, child := range n.Children {
		child.PrintTree(indent + 2)
	}
}

// TreeToList flattens the tree in document order, root first.
func TreeToList(tree *Node) []*Node {
	list := []*Node{tree}
	for _, child := range tree.Children {
		list = append(list, TreeToList(child)...)
	}
	return list
}
