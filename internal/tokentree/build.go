package tokentree

import (
	"fmt"
	"strings"
)

const pathSegmentSeparator = "/"

// Entry associates a repository-relative, slash-separated file path with the
// token count already computed for that file. Entries are expected to describe
// text files only; binary classification happens upstream.
type Entry struct {
	Path   string
	Tokens int
}

// Build constructs a token tree rooted at a directory named rootName from the
// provided entries. Intermediate directory nodes are created lazily the first
// time a path prefix is seen and reused afterwards; the terminal segment of
// every entry becomes a file node carrying the entry's token count. Build does
// not read files or count tokens itself. The returned tree is not yet
// aggregated: directory counts are zero until Aggregate runs.
func Build(rootName string, entries []Entry) (*Node, error) {
	rootNode := NewDirectory(rootName)
	for _, entry := range entries {
		if insertError := rootNode.insert(entry); insertError != nil {
			return nil, insertError
		}
	}
	return rootNode, nil
}

// insert walks the entry's path segments from node, materializing directories
// for every segment except the last. Re-inserting an existing file path
// overwrites its token count.
func (node *Node) insert(entry Entry) error {
	if entry.Path == "" {
		return fmt.Errorf("%w: empty relative path", ErrInvalidPath)
	}
	segments := strings.Split(entry.Path, pathSegmentSeparator)
	currentNode := node
	for segmentIndex, segment := range segments {
		if segment == "" {
			return fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPath, entry.Path)
		}
		isTerminalSegment := segmentIndex == len(segments)-1
		childNode, ensureError := currentNode.ensureChild(segment, !isTerminalSegment)
		if ensureError != nil {
			return fmt.Errorf("inserting %q: %w", entry.Path, ensureError)
		}
		if isTerminalSegment {
			childNode.Tokens = entry.Tokens
			return nil
		}
		currentNode = childNode
	}
	return nil
}
