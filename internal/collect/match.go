package collect

import (
	"path"
	"strings"
)

const recursiveWildcard = "**"

// MatchPattern reports whether the slash-separated relative path matches the
// pattern. Patterns are matched segment by segment with path.Match semantics
// (*, ?, character classes); a ** segment matches any number of path segments,
// including none, so "skills/**/SKILL.md" selects every SKILL.md anywhere
// under skills.
func MatchPattern(pattern string, relativePath string) bool {
	patternSegments := strings.Split(pattern, "/")
	pathSegments := strings.Split(relativePath, "/")
	return matchSegments(patternSegments, pathSegments)
}

func matchSegments(patternSegments []string, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == recursiveWildcard {
		for skipCount := 0; skipCount <= len(pathSegments); skipCount++ {
			if matchSegments(patternSegments[1:], pathSegments[skipCount:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	segmentMatched, matchError := path.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !segmentMatched {
		return false
	}
	return matchSegments(patternSegments[1:], pathSegments[1:])
}
