package group

import (
	"runtime"
	"strings"
)

// Node is one level of the test-group hierarchy. Nodes are immutable once
// created; parents never learn about their children.
type Node struct {
	Parent     *Node
	SourceFile string
	Labels     []string
}

// New creates a node under parent (nil for a root). The source file is the
// file of the caller, which is how the owning test file is found later.
func New(parent *Node, labels ...string) *Node {
	file := ""
	if _, f, _, ok := runtime.Caller(1); ok {
		file = f
	}

	return NewAt(parent, file, labels...)
}

// NewAt creates a node with an explicit source file path.
func NewAt(parent *Node, file string, labels ...string) *Node {
	return &Node{
		Parent:     parent,
		SourceFile: file,
		Labels:     append([]string(nil), labels...),
	}
}

// Child creates a nested node that shares n's source file.
func (n *Node) Child(labels ...string) *Node {
	return NewAt(n, n.SourceFile, labels...)
}

// Label returns the node's primary label, or "" when it has none.
func (n *Node) Label() string {
	if n == nil || len(n.Labels) == 0 {
		return ""
	}

	return n.Labels[0]
}

// String joins the primary labels from the root down to n.
func (n *Node) String() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Label())
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, " > ")
}
