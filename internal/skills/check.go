package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// LevelError is the level of every validation finding; any finding fails the
// check.
const LevelError = "error"

// Finding is a single validation result for one skill.
type Finding struct {
	Skill   string
	Level   string
	Message string
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)
	inlineCodePattern   = regexp.MustCompile("`([^`\n]+)`")
	relativePathPattern = regexp.MustCompile(`^(?:\./)?[A-Za-z0-9._-]+(?:/[A-Za-z0-9._-]+)+$`)
)

// CheckAll validates every skill directory under skillsRoot and returns the
// combined findings in skill-name order.
func CheckAll(repositoryRoot string, skillsRoot string) ([]Finding, error) {
	skillDirectories, collectError := CollectSkillDirectories(skillsRoot)
	if collectError != nil {
		return nil, collectError
	}
	var findings []Finding
	for _, skillDirectory := range skillDirectories {
		findings = append(findings, CheckSkill(skillDirectory, repositoryRoot)...)
	}
	return findings, nil
}

// CollectSkillDirectories lists first-level skill directories under
// skillsRoot, excluding hidden entries, in ascending name order.
func CollectSkillDirectories(skillsRoot string) ([]string, error) {
	directoryEntries, readError := os.ReadDir(skillsRoot)
	if readError != nil {
		return nil, fmt.Errorf("reading skills directory %s: %w", skillsRoot, readError)
	}
	var skillDirectories []string
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() || strings.HasPrefix(directoryEntry.Name(), ".") {
			continue
		}
		skillDirectories = append(skillDirectories, filepath.Join(skillsRoot, directoryEntry.Name()))
	}
	sort.Strings(skillDirectories)
	return skillDirectories, nil
}

// CheckSkill statically validates a single skill directory: the manifest must
// exist, carry parseable front matter with name and description, the name must
// match the directory, and every relative path the manifest references must
// resolve to an existing file.
func CheckSkill(skillDirectory string, repositoryRoot string) []Finding {
	var findings []Finding
	skillName := filepath.Base(skillDirectory)
	manifestPath := filepath.Join(skillDirectory, SkillManifestName)

	manifestData, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return append(findings, Finding{Skill: skillName, Level: LevelError, Message: "missing " + SkillManifestName})
	}

	frontMatter, body, parseError := ParseFrontMatter(string(manifestData))
	if parseError != nil {
		findings = append(findings, Finding{Skill: skillName, Level: LevelError, Message: "unparsable front matter: " + parseError.Error()})
	} else if frontMatter == (FrontMatter{}) {
		findings = append(findings, Finding{Skill: skillName, Level: LevelError, Message: "missing front matter"})
	} else {
		if frontMatter.Name == "" {
			findings = append(findings, Finding{Skill: skillName, Level: LevelError, Message: "front matter is missing name"})
		}
		if frontMatter.Description == "" {
			findings = append(findings, Finding{Skill: skillName, Level: LevelError, Message: "front matter is missing description"})
		}
		if frontMatter.Name != "" && frontMatter.Name != skillName {
			findings = append(findings, Finding{
				Skill:   skillName,
				Level:   LevelError,
				Message: fmt.Sprintf("name does not match directory: %s != %s", frontMatter.Name, skillName),
			})
		}
	}

	for _, candidate := range pathCandidates(body) {
		referencedPath := resolveReference(candidate, skillDirectory, repositoryRoot)
		if _, statError := os.Stat(referencedPath); statError != nil {
			findings = append(findings, Finding{
				Skill:   skillName,
				Level:   LevelError,
				Message: "referenced path does not exist: " + candidate,
			})
		}
	}
	return findings
}

// pathCandidates extracts relative path references from markdown links and
// inline code spans, returning them sorted for deterministic reporting.
func pathCandidates(body string) []string {
	candidateSet := make(map[string]struct{})
	for _, match := range markdownLinkPattern.FindAllStringSubmatch(body, -1) {
		candidateSet[strings.TrimSpace(match[1])] = struct{}{}
	}
	for _, match := range inlineCodePattern.FindAllStringSubmatch(body, -1) {
		candidateSet[strings.TrimSpace(match[1])] = struct{}{}
	}

	var candidates []string
	for candidate := range candidateSet {
		if candidate == "" {
			continue
		}
		token := strings.Fields(candidate)[0]
		lowerToken := strings.ToLower(token)
		if strings.HasPrefix(lowerToken, "http://") || strings.HasPrefix(lowerToken, "https://") {
			continue
		}
		if strings.HasPrefix(token, "~/") || strings.HasPrefix(token, "--") {
			continue
		}
		if strings.ContainsAny(token, "<>") {
			continue
		}
		normalized := strings.ReplaceAll(token, "\\", "/")
		if !relativePathPattern.MatchString(normalized) {
			continue
		}
		candidates = append(candidates, normalized)
	}
	sort.Strings(candidates)
	return candidates
}

// resolveReference maps a candidate reference to a filesystem path: paths
// under skills/ resolve against the repository root, everything else against
// the skill directory itself.
func resolveReference(candidate string, skillDirectory string, repositoryRoot string) string {
	normalized := strings.TrimPrefix(candidate, "./")
	if strings.HasPrefix(normalized, "skills/") {
		return filepath.Join(repositoryRoot, filepath.FromSlash(normalized))
	}
	return filepath.Join(skillDirectory, filepath.FromSlash(normalized))
}
