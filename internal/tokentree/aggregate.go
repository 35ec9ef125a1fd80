package tokentree

// Aggregate recomputes every directory node's token count as the sum of its
// children's counts, post-order, and returns the node's final count. File node
// counts are immutable and returned unchanged. Aggregate visits each node once,
// and calling it on an already-aggregated tree is a no-op.
func Aggregate(node *Node) int {
	if !node.IsDir {
		return node.Tokens
	}
	totalTokens := 0
	for _, childNode := range node.Children {
		totalTokens += Aggregate(childNode)
	}
	node.Tokens = totalTokens
	return totalTokens
}
