// Package collect turns a Git repository's tracked files into token-tree entries.
package collect

import (
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/skillctx/skx/internal/tokenizer"
	"github.com/skillctx/skx/internal/tokentree"
)

// maxConcurrentReads bounds how many files are read and tokenized at once.
const maxConcurrentReads = 8

// DefaultIncludePatterns selects the context files an agent loads from a skills
// repository: the root instructions file and every skill manifest.
var DefaultIncludePatterns = []string{"AGENTS.md", "skills/**/SKILL.md"}

// Options configures entry collection.
type Options struct {
	RepositoryRoot  string
	IncludePatterns []string
	Counter         tokenizer.Counter
}

// Result carries token-tree entries in ascending path order plus the number of
// files skipped as binary, non-UTF-8, or unreadable.
type Result struct {
	Entries []tokentree.Entry
	Skipped int
}

// Entries filters trackedPaths against the include patterns, reads and
// tokenizes the selected files concurrently, and returns the entries in
// ascending path order so downstream output never depends on collection order.
// Files that cannot be read or that classify as binary are counted as skipped;
// tokenizer failures abort the collection.
func Entries(trackedPaths []string, options Options) (Result, error) {
	includePatterns := options.IncludePatterns
	if len(includePatterns) == 0 {
		includePatterns = DefaultIncludePatterns
	}
	selectedPaths := Filter(trackedPaths, includePatterns)
	sort.Strings(selectedPaths)

	type countOutcome struct {
		tokens  int
		counted bool
	}
	outcomes := make([]countOutcome, len(selectedPaths))

	group := new(errgroup.Group)
	group.SetLimit(maxConcurrentReads)
	for pathIndex, relativePath := range selectedPaths {
		pathIndex, relativePath := pathIndex, relativePath
		group.Go(func() error {
			absolutePath := filepath.Join(options.RepositoryRoot, filepath.FromSlash(relativePath))
			data, readError := os.ReadFile(absolutePath)
			if readError != nil {
				return nil
			}
			countResult, countError := tokenizer.CountBytes(options.Counter, data)
			if countError != nil {
				return countError
			}
			if countResult.Counted {
				outcomes[pathIndex] = countOutcome{tokens: countResult.Tokens, counted: true}
			}
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return Result{}, waitError
	}

	result := Result{}
	for pathIndex, relativePath := range selectedPaths {
		if !outcomes[pathIndex].counted {
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, tokentree.Entry{
			Path:   relativePath,
			Tokens: outcomes[pathIndex].tokens,
		})
	}
	return result, nil
}

// Filter returns the tracked paths matching at least one include pattern.
func Filter(trackedPaths []string, includePatterns []string) []string {
	var selectedPaths []string
	for _, trackedPath := range trackedPaths {
		for _, includePattern := range includePatterns {
			if MatchPattern(includePattern, trackedPath) {
				selectedPaths = append(selectedPaths, trackedPath)
				break
			}
		}
	}
	return selectedPaths
}
