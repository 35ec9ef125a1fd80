package gitrepo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/skillctx/skx/internal/gitrepo"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		t.Skip("git executable not available")
	}
}

func initRepository(t *testing.T) string {
	t.Helper()
	repositoryRoot := t.TempDir()
	commands := [][]string{
		{"git", "init", "--quiet"},
		{"git", "config", "user.email", "test@example.com"},
		{"git", "config", "user.name", "Test"},
	}
	for _, commandArguments := range commands {
		command := exec.Command(commandArguments[0], commandArguments[1:]...)
		command.Dir = repositoryRoot
		if runError := command.Run(); runError != nil {
			t.Fatalf("%v failed: %v", commandArguments, runError)
		}
	}
	return repositoryRoot
}

func addAndCommit(t *testing.T, repositoryRoot string, relativePath string, content string) {
	t.Helper()
	absolutePath := filepath.Join(repositoryRoot, filepath.FromSlash(relativePath))
	if mkdirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); mkdirError != nil {
		t.Fatalf("mkdir error: %v", mkdirError)
	}
	if writeError := os.WriteFile(absolutePath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("write error: %v", writeError)
	}
	for _, commandArguments := range [][]string{
		{"git", "add", relativePath},
		{"git", "commit", "--quiet", "-m", "add " + relativePath},
	} {
		command := exec.Command(commandArguments[0], commandArguments[1:]...)
		command.Dir = repositoryRoot
		if runError := command.Run(); runError != nil {
			t.Fatalf("%v failed: %v", commandArguments, runError)
		}
	}
}

func TestDetectRootExplicitPath(t *testing.T) {
	requireGit(t)
	repositoryRoot := initRepository(t)

	detectedRoot, detectError := gitrepo.DetectRoot(repositoryRoot)
	if detectError != nil {
		t.Fatalf("DetectRoot error: %v", detectError)
	}
	expectedRoot, _ := filepath.EvalSymlinks(repositoryRoot)
	actualRoot, _ := filepath.EvalSymlinks(detectedRoot)
	if actualRoot != expectedRoot {
		t.Fatalf("expected root %q, got %q", expectedRoot, actualRoot)
	}
}

func TestDetectRootRejectsNonRepository(t *testing.T) {
	plainDirectory := t.TempDir()
	if _, detectError := gitrepo.DetectRoot(plainDirectory); detectError == nil {
		t.Fatalf("expected error for directory without .git")
	}
}

func TestDetectRootRejectsMissingPath(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "missing")
	if _, detectError := gitrepo.DetectRoot(missingPath); detectError == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestListTrackedFiles(t *testing.T) {
	requireGit(t)
	repositoryRoot := initRepository(t)
	addAndCommit(t, repositoryRoot, "AGENTS.md", "agents")
	addAndCommit(t, repositoryRoot, "skills/a/SKILL.md", "manifest")

	trackedPaths, listError := gitrepo.ListTrackedFiles(repositoryRoot)
	if listError != nil {
		t.Fatalf("ListTrackedFiles error: %v", listError)
	}
	expectedPaths := map[string]struct{}{
		"AGENTS.md":         {},
		"skills/a/SKILL.md": {},
	}
	if len(trackedPaths) != len(expectedPaths) {
		t.Fatalf("expected %d tracked files, got %v", len(expectedPaths), trackedPaths)
	}
	for _, trackedPath := range trackedPaths {
		if _, expected := expectedPaths[trackedPath]; !expected {
			t.Fatalf("unexpected tracked path %q", trackedPath)
		}
	}
}
