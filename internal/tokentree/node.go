// Package tokentree builds, aggregates, and renders token-usage trees for a set
// of repository files. The tree is an in-memory batch structure: it is built once
// per invocation, aggregated bottom-up, rendered, and discarded.
package tokentree

import (
	"errors"
	"fmt"
)

// ErrInvalidPath reports a malformed or colliding relative path handed to Build.
// It covers empty paths, paths with empty segments, and path segments that were
// previously materialized as a file but are later required to act as a directory
// (or the reverse). Builders fail fast on it instead of silently merging nodes.
var ErrInvalidPath = errors.New("invalid path")

// Node is a single directory or file in a token-usage tree. A file node carries
// the token count assigned at creation; a directory node's count is derived by
// Aggregate as the sum of its descendants. Only directory nodes hold children,
// and child names are unique within a parent.
type Node struct {
	Name     string
	IsDir    bool
	Tokens   int
	Children map[string]*Node
}

// NewDirectory creates an empty directory node with the given name.
func NewDirectory(name string) *Node {
	return &Node{Name: name, IsDir: true, Children: make(map[string]*Node)}
}

// NewFile creates a file node carrying an immutable token count.
func NewFile(name string, tokens int) *Node {
	return &Node{Name: name, Tokens: tokens}
}

// ensureChild returns the child with the given name, creating it on first use.
// A child that already exists with the opposite kind is a caller contract
// violation and yields ErrInvalidPath.
func (node *Node) ensureChild(name string, isDirectory bool) (*Node, error) {
	if !node.IsDir {
		return nil, fmt.Errorf("%w: %q is a file, not a directory", ErrInvalidPath, node.Name)
	}
	existingChild, exists := node.Children[name]
	if exists {
		if existingChild.IsDir != isDirectory {
			return nil, fmt.Errorf("%w: segment %q already exists with a different kind", ErrInvalidPath, name)
		}
		return existingChild, nil
	}
	var createdChild *Node
	if isDirectory {
		createdChild = NewDirectory(name)
	} else {
		createdChild = NewFile(name, 0)
	}
	node.Children[name] = createdChild
	return createdChild, nil
}
