// Package config loads layered configuration files, the root ignore file, and validates tree options.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/woozymasta/pathrules"

	"github.com/temirov/dirtree/internal/utils"
)

// ErrConfiguration marks failures detected before traversal begins.
var ErrConfiguration = errors.New("configuration error")

const (
	errorLoadIgnoreFileFormat    = "%w: loading %s: %w"
	errorCompileIgnoreFileFormat = "%w: compiling %s: %w"
)

// IgnoreFileMatcher answers gitignore-style exclusion questions for paths under a root directory.
type IgnoreFileMatcher struct {
	rootDirectoryPath string
	matcher           *pathrules.Matcher
}

// LoadRootIgnoreFile loads utils.GitIgnoreFileName from rootDirectoryPath.
// A missing or unreadable file is a configuration error.
func LoadRootIgnoreFile(rootDirectoryPath string) (*IgnoreFileMatcher, error) {
	return LoadIgnoreFile(rootDirectoryPath, filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName))
}

// LoadIgnoreFile compiles the rules in ignoreFilePath; patterns are evaluated relative to rootDirectoryPath.
func LoadIgnoreFile(rootDirectoryPath string, ignoreFilePath string) (*IgnoreFileMatcher, error) {
	rules, loadError := pathrules.LoadRulesFile(ignoreFilePath)
	if loadError != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ErrConfiguration, ignoreFilePath, loadError)
	}
	return NewIgnoreFileMatcher(rootDirectoryPath, rules, ignoreFilePath)
}

// NewIgnoreFileMatcher compiles already parsed rules; source only labels errors.
func NewIgnoreFileMatcher(rootDirectoryPath string, rules []pathrules.Rule, source string) (*IgnoreFileMatcher, error) {
	matcher, compileError := pathrules.NewMatcher(rules, pathrules.MatcherOptions{DefaultAction: pathrules.ActionInclude})
	if compileError != nil {
		return nil, fmt.Errorf(errorCompileIgnoreFileFormat, ErrConfiguration, source, compileError)
	}
	absoluteRoot, absoluteError := filepath.Abs(rootDirectoryPath)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ErrConfiguration, source, absoluteError)
	}
	return &IgnoreFileMatcher{rootDirectoryPath: absoluteRoot, matcher: matcher}, nil
}

// Matches reports whether the ignore rules exclude path. The root itself and
// paths outside the root are never excluded.
func (ignoreMatcher *IgnoreFileMatcher) Matches(path string, isDirectory bool) bool {
	if ignoreMatcher == nil || ignoreMatcher.matcher == nil {
		return false
	}
	relativePath := utils.RelativePathOrSelf(path, ignoreMatcher.rootDirectoryPath)
	if relativePath == "." || utils.IsOutsideRoot(relativePath) {
		return false
	}
	return ignoreMatcher.matcher.Excluded(relativePath, isDirectory)
}
