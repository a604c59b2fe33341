// Package output renders a built directory tree as ASCII text.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

// ErrRender marks failures while writing the tree, such as a path vanishing after traversal.
var ErrRender = errors.New("render error")

const (
	treeBranchConnector = "├──"
	treeLastConnector   = "└──"
	treeVerticalGlyph   = "│"
	treeBlankGlyph      = " "
	treeLevelSeparator  = "   "
	linePartSeparator   = " "

	fileEmoji            = "📄"
	directoryEmoji       = "📁"
	emptyDirectoryEmoji  = "📂"
	unreadableEmoji      = "⚠️"
	unreadableNodeSuffix = "[unreadable]"

	summaryLineFormat = "\n%s %s, %s %s\n"

	errorRenderNodeFormat = "%w: %w"
	errorWriteLineFormat  = "%w: writing line for %s: %w"
)

// NameResolver turns a node path into its display name.
type NameResolver func(path string) (string, error)

// TreeRenderer writes one line per node, depth-first, computing connectors from sibling position.
type TreeRenderer struct {
	DisplayEmoji   bool
	Style          string
	IncludeSummary bool
	ResolveName    NameResolver
}

// NewTreeRenderer builds a renderer that displays canonical names.
func NewTreeRenderer(options types.TreeOptions) *TreeRenderer {
	return &TreeRenderer{
		DisplayEmoji:   options.DisplayEmoji,
		Style:          options.Style,
		IncludeSummary: options.Summary,
		ResolveName:    utils.CanonicalName,
	}
}

// Render writes root and its descendants to writer. The root line carries no connector.
func (renderer *TreeRenderer) Render(writer io.Writer, root *tree.Node) error {
	if root == nil {
		return nil
	}
	if err := renderer.renderNode(writer, root, false, nil); err != nil {
		return err
	}
	if renderer.IncludeSummary {
		files, directories := tree.Count(root)
		if _, err := fmt.Fprintf(writer, summaryLineFormat,
			humanize.Comma(int64(directories)), plural(directories, "directory", "directories"),
			humanize.Comma(int64(files)), plural(files, "file", "files")); err != nil {
			return fmt.Errorf(errorWriteLineFormat, ErrRender, root.Path, err)
		}
	}
	return nil
}

// RenderString renders into memory so that a failure never leaves partial output behind.
func (renderer *TreeRenderer) RenderString(root *tree.Node) (string, error) {
	var buffer bytes.Buffer
	if err := renderer.Render(&buffer, root); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// renderNode writes node and recurses into its children. ancestorsLast records,
// for every level between the root and node's parent, whether that ancestor was a last child.
func (renderer *TreeRenderer) renderNode(writer io.Writer, node *tree.Node, isLast bool, ancestorsLast []bool) error {
	var lineParts []string
	if node.Depth > 0 {
		lineParts = append(lineParts, renderer.indentation(node, isLast, ancestorsLast))
	}
	if renderer.DisplayEmoji {
		lineParts = append(lineParts, emojiFor(node))
	}
	displayName, nameError := renderer.displayName(node)
	if nameError != nil {
		return fmt.Errorf(errorRenderNodeFormat, ErrRender, nameError)
	}
	lineParts = append(lineParts, displayName)

	if _, writeError := fmt.Fprintln(writer, strings.Join(lineParts, linePartSeparator)); writeError != nil {
		return fmt.Errorf(errorWriteLineFormat, ErrRender, node.Path, writeError)
	}

	if !node.IsDirectory() {
		return nil
	}
	var childAncestors []bool
	if node.Depth > 0 {
		childAncestors = make([]bool, len(ancestorsLast), len(ancestorsLast)+1)
		copy(childAncestors, ancestorsLast)
		childAncestors = append(childAncestors, isLast)
	}
	for index, child := range node.Children {
		if err := renderer.renderNode(writer, child, index == len(node.Children)-1, childAncestors); err != nil {
			return err
		}
	}
	return nil
}

// indentation builds the continuation glyphs for the ancestor levels followed by this node's connector.
func (renderer *TreeRenderer) indentation(node *tree.Node, isLast bool, ancestorsLast []bool) string {
	separators := make([]string, 0, node.Depth)
	if renderer.Style == types.StyleStandard {
		for _, ancestorIsLast := range ancestorsLast {
			if ancestorIsLast {
				separators = append(separators, treeBlankGlyph)
			} else {
				separators = append(separators, treeVerticalGlyph)
			}
		}
		if isLast {
			return strings.Join(append(separators, treeLastConnector), treeLevelSeparator)
		}
		return strings.Join(append(separators, treeBranchConnector), treeLevelSeparator)
	}

	for level := 1; level < node.Depth; level++ {
		separators = append(separators, treeVerticalGlyph)
	}
	return strings.Join(append(separators, classicConnector(node, isLast)), treeLevelSeparator)
}

// classicConnector keeps a last-child directory with children on the branch connector,
// since its own descendants continue below it.
func classicConnector(node *tree.Node, isLast bool) string {
	if !isLast {
		return treeBranchConnector
	}
	switch node.Kind {
	case tree.KindDirectory:
		if len(node.Children) > 0 {
			return treeBranchConnector
		}
		return treeLastConnector
	default:
		return treeLastConnector
	}
}

func emojiFor(node *tree.Node) string {
	switch node.Kind {
	case tree.KindDirectory:
		if len(node.Children) > 0 {
			return directoryEmoji
		}
		return emptyDirectoryEmoji
	case tree.KindError:
		return unreadableEmoji
	default:
		return fileEmoji
	}
}

// displayName resolves the node name; unreadable leaves skip resolution and carry a marker.
func (renderer *TreeRenderer) displayName(node *tree.Node) (string, error) {
	if node.Kind == tree.KindError {
		return node.Name() + linePartSeparator + unreadableNodeSuffix, nil
	}
	if renderer.ResolveName == nil {
		return node.Name(), nil
	}
	return renderer.ResolveName(node.Path)
}

func plural(count int, singular string, pluralForm string) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}
