// Package filter decides which directory entries are retained in the tree.
package filter

import (
	"path/filepath"
	"strings"
)

const (
	// PredicateHidden names the platform hidden-attribute check.
	PredicateHidden = "hidden"
	// PredicateDotFile names the dot-prefixed name check.
	PredicateDotFile = "dotfile"
	// PredicateIgnoreFile names the ignore-file check.
	PredicateIgnoreFile = "ignore"
	// PredicateBlacklist names the blacklist substring check.
	PredicateBlacklist = "blacklist"

	dotPrefix = "."
)

// Entry is one directory listing entry presented to the pipeline.
type Entry struct {
	Path        string
	IsDirectory bool
}

// HiddenProbe reports whether the platform marks a path as hidden.
type HiddenProbe interface {
	IsHidden(path string) bool
}

// IgnoreMatcher reports whether an ignore file excludes a path.
type IgnoreMatcher interface {
	Matches(path string, isDirectory bool) bool
}

// Options configures the predicates of a Pipeline.
type Options struct {
	ShowHidden        bool
	BlacklistPatterns []string
	HiddenProbe       HiddenProbe
	IgnoreMatcher     IgnoreMatcher
}

type predicate struct {
	name string
	keep func(entry Entry) bool
}

// Pipeline is an ordered conjunction of entry predicates.
type Pipeline struct {
	predicates []predicate
}

// NewPipeline assembles the predicates in their fixed order: hidden, dot-file, ignore file, blacklist.
// A nil HiddenProbe or IgnoreMatcher disables the corresponding predicate.
func NewPipeline(options Options) *Pipeline {
	var predicates []predicate
	if options.HiddenProbe != nil {
		probe := options.HiddenProbe
		predicates = append(predicates, predicate{name: PredicateHidden, keep: func(entry Entry) bool {
			return !probe.IsHidden(entry.Path)
		}})
	}
	if !options.ShowHidden {
		predicates = append(predicates, predicate{name: PredicateDotFile, keep: keepNonDotFile})
	}
	if options.IgnoreMatcher != nil {
		matcher := options.IgnoreMatcher
		predicates = append(predicates, predicate{name: PredicateIgnoreFile, keep: func(entry Entry) bool {
			return !matcher.Matches(entry.Path, entry.IsDirectory)
		}})
	}
	if blacklist := nonEmptyPatterns(options.BlacklistPatterns); len(blacklist) > 0 {
		predicates = append(predicates, predicate{name: PredicateBlacklist, keep: func(entry Entry) bool {
			return !ContainsAnySubstring(entry.Path, blacklist)
		}})
	}
	return &Pipeline{predicates: predicates}
}

// Keep reports whether the entry passes every predicate.
func (pipeline *Pipeline) Keep(entry Entry) bool {
	_, rejected := pipeline.Rejection(entry)
	return !rejected
}

// Rejection returns the name of the first predicate rejecting the entry.
func (pipeline *Pipeline) Rejection(entry Entry) (string, bool) {
	if pipeline == nil {
		return "", false
	}
	for _, current := range pipeline.predicates {
		if !current.keep(entry) {
			return current.name, true
		}
	}
	return "", false
}

// Predicates lists the active predicate names in evaluation order.
func (pipeline *Pipeline) Predicates() []string {
	if pipeline == nil {
		return nil
	}
	names := make([]string, 0, len(pipeline.predicates))
	for _, current := range pipeline.predicates {
		names = append(names, current.name)
	}
	return names
}

// IsDotFile reports whether the final component of path starts with a dot.
func IsDotFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), dotPrefix)
}

// ContainsAnySubstring reports whether path contains any of the patterns verbatim.
func ContainsAnySubstring(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func keepNonDotFile(entry Entry) bool {
	return !IsDotFile(entry.Path)
}

// nonEmptyPatterns drops empty patterns, which would otherwise match every path.
func nonEmptyPatterns(patterns []string) []string {
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern != "" {
			result = append(result, pattern)
		}
	}
	return result
}
