package output_test

import (
	"strings"
	"testing"

	"github.com/skillctx/skx/internal/output"
	"github.com/skillctx/skx/internal/tokentree"
)

func buildAggregatedTree(t *testing.T) *tokentree.Node {
	t.Helper()
	entries := []tokentree.Entry{
		{Path: "AGENTS.md", Tokens: 120},
		{Path: "skills/a/SKILL.md", Tokens: 300},
		{Path: "skills/b/SKILL.md", Tokens: 80},
	}
	rootNode, buildError := tokentree.Build("repo", entries)
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	tokentree.Aggregate(rootNode)
	return rootNode
}

func TestWriteTreeAlignsColumns(t *testing.T) {
	rootNode := buildAggregatedTree(t)

	var builder strings.Builder
	writeError := output.WriteTree(&builder, rootNode, output.Options{BarWidth: 10})
	if writeError != nil {
		t.Fatalf("WriteTree error: %v", writeError)
	}

	expectedLines := []string{
		"500 repo",
		"380     ├── skills",
		"300     │   ├── a",
		"300     │   │   └── SKILL.md  ██████████ 100%",
		" 80     │   └── b",
		" 80     │       └── SKILL.md  ██░░░░░░░░  27%",
		"120     └── AGENTS.md         ████░░░░░░  40%",
	}
	actualLines := strings.Split(strings.TrimRight(builder.String(), "\n"), "\n")
	if len(actualLines) != len(expectedLines) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expectedLines), len(actualLines), builder.String())
	}
	for lineIndex, expectedLine := range expectedLines {
		if actualLines[lineIndex] != expectedLine {
			t.Fatalf("line %d:\n got: %q\nwant: %q", lineIndex, actualLines[lineIndex], expectedLine)
		}
	}
}

func TestWriteTreeIsDeterministic(t *testing.T) {
	rootNode := buildAggregatedTree(t)
	firstRendering := output.RenderText(rootNode, 24)
	secondRendering := output.RenderText(rootNode, 24)
	if firstRendering != secondRendering {
		t.Fatalf("expected identical output across runs")
	}
}

func TestWriteTreeColorizedKeepsPlainWidths(t *testing.T) {
	rootNode := buildAggregatedTree(t)

	var plainBuilder strings.Builder
	if writeError := output.WriteTree(&plainBuilder, rootNode, output.Options{BarWidth: 10}); writeError != nil {
		t.Fatalf("WriteTree error: %v", writeError)
	}
	var colorBuilder strings.Builder
	if writeError := output.WriteTree(&colorBuilder, rootNode, output.Options{BarWidth: 10, Colorize: true}); writeError != nil {
		t.Fatalf("WriteTree error: %v", writeError)
	}

	stripped := colorBuilder.String()
	for _, code := range []string{"\x1b[0m", "\x1b[1m", "\x1b[32m", "\x1b[34m", "\x1b[35m"} {
		stripped = strings.ReplaceAll(stripped, code, "")
	}
	if stripped != plainBuilder.String() {
		t.Fatalf("colorized output must match plain output after removing escape codes:\n got: %q\nwant: %q", stripped, plainBuilder.String())
	}
}
