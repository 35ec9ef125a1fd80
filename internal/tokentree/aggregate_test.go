package tokentree_test

import (
	"testing"

	"github.com/skillctx/skx/internal/tokentree"
)

func buildSampleTree(t *testing.T) *tokentree.Node {
	t.Helper()
	entries := []tokentree.Entry{
		{Path: "AGENTS.md", Tokens: 120},
		{Path: "skills/a/SKILL.md", Tokens: 300},
		{Path: "skills/b/SKILL.md", Tokens: 80},
		{Path: "skills/b/reference.md", Tokens: 40},
	}
	rootNode, buildError := tokentree.Build("repo", entries)
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	return rootNode
}

// sumLeaves independently totals file tokens, bypassing directory aggregates.
func sumLeaves(node *tokentree.Node) int {
	if !node.IsDir {
		return node.Tokens
	}
	total := 0
	for _, childNode := range node.Children {
		total += sumLeaves(childNode)
	}
	return total
}

func TestAggregateMatchesFlatLeafSum(t *testing.T) {
	rootNode := buildSampleTree(t)
	aggregatedTotal := tokentree.Aggregate(rootNode)
	if aggregatedTotal != 540 {
		t.Fatalf("expected total 540, got %d", aggregatedTotal)
	}
	if rootNode.Tokens != sumLeaves(rootNode) {
		t.Fatalf("root aggregate %d differs from flat leaf sum %d", rootNode.Tokens, sumLeaves(rootNode))
	}

	skillsNode := rootNode.Children["skills"]
	if skillsNode.Tokens != 420 {
		t.Fatalf("expected skills aggregate 420, got %d", skillsNode.Tokens)
	}
	if skillsNode.Tokens != sumLeaves(skillsNode) {
		t.Fatalf("skills aggregate %d differs from flat leaf sum %d", skillsNode.Tokens, sumLeaves(skillsNode))
	}
	if rootNode.Children["AGENTS.md"].Tokens != 120 {
		t.Fatalf("file counts must not change during aggregation")
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	rootNode := buildSampleTree(t)
	firstTotal := tokentree.Aggregate(rootNode)
	secondTotal := tokentree.Aggregate(rootNode)
	if firstTotal != secondTotal {
		t.Fatalf("expected identical totals, got %d then %d", firstTotal, secondTotal)
	}
	if rootNode.Children["skills"].Tokens != 420 {
		t.Fatalf("expected stable skills aggregate, got %d", rootNode.Children["skills"].Tokens)
	}
}

func TestAggregateEmptyDirectoryIsZero(t *testing.T) {
	rootNode := tokentree.NewDirectory("repo")
	if total := tokentree.Aggregate(rootNode); total != 0 {
		t.Fatalf("expected empty tree total 0, got %d", total)
	}
}
