// Package gitrepo locates a Git repository root and lists its tracked files.
package gitrepo

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/skillctx/skx/internal/utils"
)

const (
	gitExecutableName = "git"

	errorPathMissingFormat     = "path %q does not exist"
	errorPathNotDirectory      = "path %q is not a directory"
	errorPathNotRepository     = "no %s directory found in %q"
	errorRootDetectionFormat   = "unable to locate a git repository root: %w"
	errorTrackedListingFormat  = "listing tracked files in %s: %w"
	errorAbsoluteResolveFormat = "resolving absolute path for %q: %w"
)

// DetectRoot returns the repository root directory. An explicit path must
// exist, be a directory, and contain a .git entry. With no explicit path, git
// rev-parse resolves the root of the repository containing the working
// directory.
func DetectRoot(explicitPath string) (string, error) {
	trimmedPath := strings.TrimSpace(explicitPath)
	if trimmedPath != "" {
		absolutePath, absoluteError := filepath.Abs(trimmedPath)
		if absoluteError != nil {
			return "", fmt.Errorf(errorAbsoluteResolveFormat, trimmedPath, absoluteError)
		}
		fileInformation, statError := os.Stat(absolutePath)
		if statError != nil {
			return "", fmt.Errorf(errorPathMissingFormat, trimmedPath)
		}
		if !fileInformation.IsDir() {
			return "", fmt.Errorf(errorPathNotDirectory, trimmedPath)
		}
		gitPath := filepath.Join(absolutePath, utils.GitDirectoryName)
		if _, gitStatError := os.Stat(gitPath); gitStatError != nil {
			return "", fmt.Errorf(errorPathNotRepository, utils.GitDirectoryName, trimmedPath)
		}
		return absolutePath, nil
	}

	revParseCommand := exec.Command(gitExecutableName, "rev-parse", "--show-toplevel")
	outputBytes, runError := revParseCommand.Output()
	if runError != nil {
		return "", fmt.Errorf(errorRootDetectionFormat, runError)
	}
	return strings.TrimSpace(string(outputBytes)), nil
}

// ListTrackedFiles returns the repository-relative, slash-separated paths of
// every file tracked by Git under repositoryRoot, in the order Git reports
// them.
func ListTrackedFiles(repositoryRoot string) ([]string, error) {
	listCommand := exec.Command(gitExecutableName, "ls-files", "-z")
	listCommand.Dir = repositoryRoot
	outputBytes, runError := listCommand.Output()
	if runError != nil {
		return nil, fmt.Errorf(errorTrackedListingFormat, repositoryRoot, runError)
	}
	var trackedPaths []string
	for _, rawPath := range bytes.Split(outputBytes, []byte{0}) {
		if len(rawPath) == 0 {
			continue
		}
		trackedPaths = append(trackedPaths, string(rawPath))
	}
	return trackedPaths, nil
}
