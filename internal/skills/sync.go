package skills

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// digestBufferSize is the streaming buffer used when hashing file contents.
const digestBufferSize = 32 * 1024

const (
	agentHomeEnvironmentVariable = "CODEX_HOME"
	defaultAgentHomeDirectory    = ".codex"
	destinationSkillsDirectory   = "skills"
)

// SyncOptions configures a skills sync.
type SyncOptions struct {
	// SourceRoot is the skills directory inside the repository.
	SourceRoot string
	// DestinationRoot is the skills directory files are copied into.
	DestinationRoot string
	// DryRun reports what would change without writing anything.
	DryRun bool
	// RemoveStale deletes destination skills that no longer exist in the source.
	RemoveStale bool
}

// SkillSyncResult reports what a sync did for one skill.
type SkillSyncResult struct {
	Skill   string
	Added   int
	Updated int
}

// SyncSummary aggregates the per-skill results of one sync run along with the
// names of the stale destination skills that were removed.
type SyncSummary struct {
	Skills  []SkillSyncResult
	Removed []string
}

// DefaultDestination returns the agent skills directory files sync into:
// $CODEX_HOME/skills when the variable is set, ~/.codex/skills otherwise.
func DefaultDestination() (string, error) {
	if agentHome := os.Getenv(agentHomeEnvironmentVariable); agentHome != "" {
		return filepath.Join(agentHome, destinationSkillsDirectory), nil
	}
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		return "", fmt.Errorf("determine home directory: %w", homeError)
	}
	return filepath.Join(homeDirectory, defaultAgentHomeDirectory, destinationSkillsDirectory), nil
}

// Sync copies every skill directory under SourceRoot into DestinationRoot.
// Files already present with identical content are left untouched; content is
// compared by xxHash digest. With RemoveStale, destination skills absent from
// the source are deleted; hidden destination directories are never touched.
// After a non-dry-run sync the destination is re-hashed against the source and
// any mismatch fails the sync. Results come back in skill-name order.
func Sync(options SyncOptions) (SyncSummary, error) {
	skillDirectories, collectError := CollectSkillDirectories(options.SourceRoot)
	if collectError != nil {
		return SyncSummary{}, collectError
	}
	summary := SyncSummary{}
	for _, skillDirectory := range skillDirectories {
		result, syncError := syncSkill(skillDirectory, options.DestinationRoot, options.DryRun)
		if syncError != nil {
			return SyncSummary{}, syncError
		}
		summary.Skills = append(summary.Skills, result)
	}

	if options.RemoveStale {
		removedSkills, removeError := removeStaleSkills(skillDirectories, options.DestinationRoot, options.DryRun)
		if removeError != nil {
			return SyncSummary{}, removeError
		}
		summary.Removed = removedSkills
	}

	if !options.DryRun {
		if verifyError := Verify(options.SourceRoot, options.DestinationRoot); verifyError != nil {
			return SyncSummary{}, verifyError
		}
	}
	return summary, nil
}

// syncSkill walks one skill directory and copies new or changed files into the
// destination, preserving the relative layout.
func syncSkill(sourceSkillDirectory string, destinationRoot string, dryRun bool) (SkillSyncResult, error) {
	result := SkillSyncResult{Skill: filepath.Base(sourceSkillDirectory)}
	targetSkillDirectory := filepath.Join(destinationRoot, result.Skill)

	walkError := filepath.WalkDir(sourceSkillDirectory, func(sourcePath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if directoryEntry.IsDir() {
			return nil
		}
		relativePath, relativeError := filepath.Rel(sourceSkillDirectory, sourcePath)
		if relativeError != nil {
			return relativeError
		}
		targetPath := filepath.Join(targetSkillDirectory, relativePath)

		_, targetStatError := os.Stat(targetPath)
		if targetStatError != nil {
			if !os.IsNotExist(targetStatError) {
				return targetStatError
			}
			result.Added++
			if dryRun {
				return nil
			}
			return copyFile(sourcePath, targetPath)
		}

		sourceDigest, sourceDigestError := fileDigest(sourcePath)
		if sourceDigestError != nil {
			return sourceDigestError
		}
		targetDigest, targetDigestError := fileDigest(targetPath)
		if targetDigestError != nil {
			return targetDigestError
		}
		if sourceDigest == targetDigest {
			return nil
		}
		result.Updated++
		if dryRun {
			return nil
		}
		return copyFile(sourcePath, targetPath)
	})
	if walkError != nil {
		return SkillSyncResult{}, fmt.Errorf("syncing skill %s: %w", result.Skill, walkError)
	}
	return result, nil
}

// removeStaleSkills deletes destination skill directories whose names do not
// appear among the source skill directories. CollectSkillDirectories skips
// hidden entries, so agent-managed directories such as .system are never
// candidates. Removed names come back sorted.
func removeStaleSkills(sourceSkillDirectories []string, destinationRoot string, dryRun bool) ([]string, error) {
	sourceNames := make(map[string]struct{}, len(sourceSkillDirectories))
	for _, sourceSkillDirectory := range sourceSkillDirectories {
		sourceNames[filepath.Base(sourceSkillDirectory)] = struct{}{}
	}

	destinationSkillDirectories, collectError := CollectSkillDirectories(destinationRoot)
	if collectError != nil {
		if errors.Is(collectError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, collectError
	}

	var removedSkills []string
	for _, destinationSkillDirectory := range destinationSkillDirectories {
		skillName := filepath.Base(destinationSkillDirectory)
		if _, exists := sourceNames[skillName]; exists {
			continue
		}
		removedSkills = append(removedSkills, skillName)
		if dryRun {
			continue
		}
		if removeError := os.RemoveAll(destinationSkillDirectory); removeError != nil {
			return nil, fmt.Errorf("removing stale skill %s: %w", skillName, removeError)
		}
	}
	sort.Strings(removedSkills)
	return removedSkills, nil
}

// Verify re-hashes every source skill file against its destination counterpart
// and reports an error naming each missing or diverging path.
func Verify(sourceRoot string, destinationRoot string) error {
	skillDirectories, collectError := CollectSkillDirectories(sourceRoot)
	if collectError != nil {
		return collectError
	}
	var mismatches []string
	for _, skillDirectory := range skillDirectories {
		skillName := filepath.Base(skillDirectory)
		targetSkillDirectory := filepath.Join(destinationRoot, skillName)
		if _, statError := os.Stat(targetSkillDirectory); statError != nil {
			mismatches = append(mismatches, skillName+": destination skill directory is missing")
			continue
		}

		walkError := filepath.WalkDir(skillDirectory, func(sourcePath string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return walkError
			}
			if directoryEntry.IsDir() {
				return nil
			}
			relativePath, relativeError := filepath.Rel(skillDirectory, sourcePath)
			if relativeError != nil {
				return relativeError
			}
			slashPath := skillName + "/" + filepath.ToSlash(relativePath)
			targetPath := filepath.Join(targetSkillDirectory, relativePath)

			if _, statError := os.Stat(targetPath); statError != nil {
				mismatches = append(mismatches, slashPath+": destination file is missing")
				return nil
			}
			sourceDigest, sourceDigestError := fileDigest(sourcePath)
			if sourceDigestError != nil {
				return sourceDigestError
			}
			targetDigest, targetDigestError := fileDigest(targetPath)
			if targetDigestError != nil {
				return targetDigestError
			}
			if sourceDigest != targetDigest {
				mismatches = append(mismatches, slashPath+": content differs")
			}
			return nil
		})
		if walkError != nil {
			return fmt.Errorf("verifying skill %s: %w", skillName, walkError)
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("sync verification failed: %s", strings.Join(mismatches, "; "))
	}
	return nil
}

// fileDigest computes the xxHash of a file with streaming reads.
func fileDigest(path string) (uint64, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return 0, fmt.Errorf("opening %s: %w", path, openError)
	}
	defer fileHandle.Close()

	hasher := xxhash.New()
	buffer := make([]byte, digestBufferSize)
	if _, copyError := io.CopyBuffer(hasher, fileHandle, buffer); copyError != nil {
		return 0, fmt.Errorf("hashing %s: %w", path, copyError)
	}
	return hasher.Sum64(), nil
}

// copyFile copies sourcePath to targetPath, creating parent directories.
func copyFile(sourcePath string, targetPath string) error {
	if mkdirError := os.MkdirAll(filepath.Dir(targetPath), 0o755); mkdirError != nil {
		return mkdirError
	}
	data, readError := os.ReadFile(sourcePath)
	if readError != nil {
		return readError
	}
	sourceInformation, statError := os.Stat(sourcePath)
	if statError != nil {
		return statError
	}
	return os.WriteFile(targetPath, data, sourceInformation.Mode().Perm())
}
