package collect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillctx/skx/internal/collect"
	"github.com/skillctx/skx/internal/tokentree"
)

type runeCounter struct{}

func (runeCounter) Name() string { return "stub" }

func (runeCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func writeRepositoryFile(t *testing.T, repositoryRoot string, relativePath string, content []byte) {
	t.Helper()
	absolutePath := filepath.Join(repositoryRoot, filepath.FromSlash(relativePath))
	if mkdirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); mkdirError != nil {
		t.Fatalf("mkdir error: %v", mkdirError)
	}
	if writeError := os.WriteFile(absolutePath, content, 0o644); writeError != nil {
		t.Fatalf("write error: %v", writeError)
	}
}

func TestEntriesCollectsTextFilesInPathOrder(t *testing.T) {
	repositoryRoot := t.TempDir()
	writeRepositoryFile(t, repositoryRoot, "skills/b/SKILL.md", []byte("beta"))
	writeRepositoryFile(t, repositoryRoot, "AGENTS.md", []byte("agents"))
	writeRepositoryFile(t, repositoryRoot, "skills/a/SKILL.md", []byte("alpha"))
	writeRepositoryFile(t, repositoryRoot, "README.md", []byte("ignored"))

	trackedPaths := []string{"skills/b/SKILL.md", "AGENTS.md", "skills/a/SKILL.md", "README.md"}
	result, collectError := collect.Entries(trackedPaths, collect.Options{
		RepositoryRoot: repositoryRoot,
		Counter:        runeCounter{},
	})
	if collectError != nil {
		t.Fatalf("Entries error: %v", collectError)
	}
	if result.Skipped != 0 {
		t.Fatalf("expected no skipped files, got %d", result.Skipped)
	}

	expectedEntries := []tokentree.Entry{
		{Path: "AGENTS.md", Tokens: 6},
		{Path: "skills/a/SKILL.md", Tokens: 5},
		{Path: "skills/b/SKILL.md", Tokens: 4},
	}
	if len(result.Entries) != len(expectedEntries) {
		t.Fatalf("expected %d entries, got %v", len(expectedEntries), result.Entries)
	}
	for entryIndex, expectedEntry := range expectedEntries {
		if result.Entries[entryIndex] != expectedEntry {
			t.Fatalf("entry %d: expected %+v, got %+v", entryIndex, expectedEntry, result.Entries[entryIndex])
		}
	}
}

func TestEntriesSkipsBinaryAndMissingFiles(t *testing.T) {
	repositoryRoot := t.TempDir()
	writeRepositoryFile(t, repositoryRoot, "AGENTS.md", []byte("agents"))
	writeRepositoryFile(t, repositoryRoot, "skills/bin/SKILL.md", []byte{0x00, 0x01, 0x02})

	trackedPaths := []string{"AGENTS.md", "skills/bin/SKILL.md", "skills/gone/SKILL.md"}
	result, collectError := collect.Entries(trackedPaths, collect.Options{
		RepositoryRoot: repositoryRoot,
		Counter:        runeCounter{},
	})
	if collectError != nil {
		t.Fatalf("Entries error: %v", collectError)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped files, got %d", result.Skipped)
	}
	if len(result.Entries) != 1 || result.Entries[0].Path != "AGENTS.md" {
		t.Fatalf("expected only AGENTS.md to survive, got %v", result.Entries)
	}
}
