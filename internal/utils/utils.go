// Package utils contains general helper functions used across the dirtree tool.
package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizePatterns drops empty entries and removes duplicates. Patterns are
// substrings matched verbatim, so surrounding whitespace is kept.
func NormalizePatterns(patterns []string) []string {
	nonEmpty := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == EmptyString {
			continue
		}
		nonEmpty = append(nonEmpty, pattern)
	}
	return DeduplicatePatterns(nonEmpty)
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// IsOutsideRoot reports whether a relative path produced by RelativePathOrSelf escapes its root.
func IsOutsideRoot(relativePath string) bool {
	return relativePath == ".." || strings.HasPrefix(relativePath, "../") || filepath.IsAbs(relativePath)
}

// CanonicalName resolves path to its absolute, symlink-free form and returns the final component.
func CanonicalName(path string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", fmt.Errorf("absolute path for %s: %w", path, absoluteError)
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, resolveError)
	}
	return filepath.Base(resolvedPath), nil
}
