package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveColorizeExplicitModes(t *testing.T) {
	testCases := []struct {
		mode     string
		expected bool
	}{
		{mode: "always", expected: true},
		{mode: "ALWAYS", expected: true},
		{mode: " never ", expected: false},
		{mode: "never", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.mode, func(t *testing.T) {
			colorize, resolveError := resolveColorize(testCase.mode)
			if resolveError != nil {
				t.Fatalf("resolveColorize(%q) error: %v", testCase.mode, resolveError)
			}
			if colorize != testCase.expected {
				t.Errorf("resolveColorize(%q) = %v, expected %v", testCase.mode, colorize, testCase.expected)
			}
		})
	}
}

func TestResolveColorizeAutoInTests(t *testing.T) {
	// Test binaries run with stdout attached to a pipe, so auto resolves false.
	colorize, resolveError := resolveColorize("auto")
	if resolveError != nil {
		t.Fatalf("resolveColorize(auto) error: %v", resolveError)
	}
	if colorize {
		t.Errorf("expected auto mode to disable color without a terminal")
	}
}

func TestResolveColorizeRejectsUnknownMode(t *testing.T) {
	if _, resolveError := resolveColorize("rainbow"); resolveError == nil {
		t.Fatalf("expected error for unknown color mode")
	}
}

func chdir(t *testing.T, directory string) {
	t.Helper()
	originalDirectory, getwdError := os.Getwd()
	if getwdError != nil {
		t.Fatalf("getwd error: %v", getwdError)
	}
	if chdirError := os.Chdir(directory); chdirError != nil {
		t.Fatalf("chdir error: %v", chdirError)
	}
	t.Cleanup(func() { _ = os.Chdir(originalDirectory) })
}

func writeSkillManifest(t *testing.T, skillsRoot string, skillName string, manifest string) {
	t.Helper()
	skillDirectory := filepath.Join(skillsRoot, skillName)
	if mkdirError := os.MkdirAll(skillDirectory, 0o755); mkdirError != nil {
		t.Fatalf("mkdir error: %v", mkdirError)
	}
	if manifest == "" {
		return
	}
	manifestPath := filepath.Join(skillDirectory, "SKILL.md")
	if writeError := os.WriteFile(manifestPath, []byte(manifest), 0o644); writeError != nil {
		t.Fatalf("write error: %v", writeError)
	}
}

func TestCheckCommandFailsOnAnyFinding(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	chdir(t, t.TempDir())

	skillsRoot := filepath.Join(t.TempDir(), "skills")
	writeSkillManifest(t, skillsRoot, "broken", "")

	checkCommand := createCheckCommand()
	checkCommand.SetArgs([]string{"--skills-path", skillsRoot})
	executeError := checkCommand.Execute()
	if executeError == nil {
		t.Fatalf("expected the check command to fail when findings exist")
	}
	if !strings.Contains(executeError.Error(), "skill validation failed") {
		t.Errorf("unexpected check failure message: %v", executeError)
	}
}

func TestCheckCommandPassesWithValidSkills(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	chdir(t, t.TempDir())

	skillsRoot := filepath.Join(t.TempDir(), "skills")
	writeSkillManifest(t, skillsRoot, "fetch-url", "---\nname: fetch-url\ndescription: Fetch a URL.\n---\n\nNo references here.\n")

	checkCommand := createCheckCommand()
	checkCommand.SetArgs([]string{"--skills-path", skillsRoot})
	if executeError := checkCommand.Execute(); executeError != nil {
		t.Fatalf("expected valid skills to pass: %v", executeError)
	}
}
