// Package tree defines the directory tree model produced by traversal and consumed by rendering.
package tree

import "path/filepath"

// Kind identifies the variant of a node.
type Kind string

const (
	// KindFile marks a regular file leaf.
	KindFile Kind = "file"
	// KindDirectory marks a directory owning an ordered list of children.
	KindDirectory Kind = "directory"
	// KindError marks a directory that could not be listed during best-effort traversal.
	KindError Kind = "error"
)

// Node represents one retained filesystem entry.
// Children is only populated for KindDirectory and Err only for KindError.
type Node struct {
	Path     string
	Kind     Kind
	Depth    int
	Children []*Node
	Err      error
}

// NewFile constructs a file leaf at the provided depth.
func NewFile(path string, depth int) *Node {
	return &Node{Path: path, Kind: KindFile, Depth: depth}
}

// NewDirectory constructs a directory node owning children.
func NewDirectory(path string, depth int, children []*Node) *Node {
	return &Node{Path: path, Kind: KindDirectory, Depth: depth, Children: children}
}

// NewError constructs an error leaf for a directory whose listing failed.
func NewError(path string, depth int, listingError error) *Node {
	return &Node{Path: path, Kind: KindError, Depth: depth, Err: listingError}
}

// IsDirectory reports whether the node is a directory.
func (node *Node) IsDirectory() bool {
	return node != nil && node.Kind == KindDirectory
}

// HasChildren reports whether the node is a directory with at least one retained child.
func (node *Node) HasChildren() bool {
	return node.IsDirectory() && len(node.Children) > 0
}

// Name returns the final path component without resolving symlinks.
func (node *Node) Name() string {
	if node == nil {
		return ""
	}
	return filepath.Base(node.Path)
}

// Walk visits node and its descendants depth-first in child order.
// Returning false from visit stops descent below the visited node.
func Walk(node *Node, visit func(node *Node, parent *Node) bool) {
	walk(node, nil, visit)
}

func walk(node *Node, parent *Node, visit func(node *Node, parent *Node) bool) {
	if node == nil {
		return
	}
	if !visit(node, parent) {
		return
	}
	for _, child := range node.Children {
		walk(child, node, visit)
	}
}

// MaxDepth returns the greatest depth found in the subtree rooted at node.
func MaxDepth(node *Node) int {
	deepest := 0
	Walk(node, func(current *Node, _ *Node) bool {
		if current.Depth > deepest {
			deepest = current.Depth
		}
		return true
	})
	return deepest
}

// Count returns the number of file and directory nodes below node, excluding node itself.
func Count(node *Node) (files int, directories int) {
	Walk(node, func(current *Node, parent *Node) bool {
		if parent == nil {
			return true
		}
		switch current.Kind {
		case KindFile:
			files++
		case KindDirectory:
			directories++
		}
		return true
	})
	return files, directories
}
