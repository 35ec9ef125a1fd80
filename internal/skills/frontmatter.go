// Package skills validates and synchronizes the skill directories of an
// agent-skills repository. Every skill lives in its own directory under the
// skills root and is described by a SKILL.md manifest with YAML front matter.
package skills

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillManifestName is the manifest file every skill directory must contain.
const SkillManifestName = "SKILL.md"

const frontMatterDelimiter = "---"

// FrontMatter holds the YAML metadata block at the top of a SKILL.md manifest.
type FrontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseFrontMatter splits a SKILL.md document into its YAML front matter and
// markdown body. A document without a leading front matter block yields a zero
// FrontMatter and the full text as body.
func ParseFrontMatter(document string) (FrontMatter, string, error) {
	if !strings.HasPrefix(document, frontMatterDelimiter+"\n") {
		return FrontMatter{}, document, nil
	}
	remainder := document[len(frontMatterDelimiter)+1:]
	closingIndex := strings.Index(remainder, "\n"+frontMatterDelimiter+"\n")
	if closingIndex < 0 {
		return FrontMatter{}, document, nil
	}
	rawFrontMatter := remainder[:closingIndex]
	body := remainder[closingIndex+len(frontMatterDelimiter)+2:]

	var frontMatter FrontMatter
	if unmarshalError := yaml.Unmarshal([]byte(rawFrontMatter), &frontMatter); unmarshalError != nil {
		return FrontMatter{}, body, fmt.Errorf("parsing front matter: %w", unmarshalError)
	}
	return frontMatter, body, nil
}
