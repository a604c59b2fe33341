// Package types defines the cross‑package data structures used by the dirtree CLI.
package types

const (
	// OrderListing keeps entries in the order the directory listing returned them.
	OrderListing = "listing"
	// OrderName sorts entries lexicographically by final path component.
	OrderName = "name"
	// OrderDirectoriesFirst places directories before files, each group sorted by name.
	OrderDirectoriesFirst = "dirs-first"

	// StyleClassic draws a non-terminal connector for a last-child directory that has children.
	StyleClassic = "classic"
	// StyleStandard draws a terminal connector for every last child and blanks finished ancestor levels.
	StyleStandard = "standard"

	// MinimumDepth is the smallest accepted maximum traversal depth.
	MinimumDepth = 1
	// MaximumDepth is the largest accepted maximum traversal depth.
	MaximumDepth = 23
	// DefaultDepth is the maximum traversal depth used when none is configured.
	DefaultDepth = 10
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TreeOptions is the fully resolved configuration for one tree run.
type TreeOptions struct {
	RootPath          string
	Depth             int
	BlacklistPatterns []string
	ShowHidden        bool
	UseGitIgnore      bool
	DisplayEmoji      bool
	Order             string
	Style             string
	KeepGoing         bool
	Summary           bool
	Copy              bool
}

// DefaultTreeOptions returns the options used when neither flags nor configuration files override them.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{
		RootPath: ".",
		Depth:    DefaultDepth,
		Order:    OrderListing,
		Style:    StyleClassic,
	}
}
