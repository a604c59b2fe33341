// Package commands contains the traversal that turns a directory into a tree.
package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/tree"
)

// ErrTraversal marks directory listing failures during the walk.
var ErrTraversal = errors.New("traversal error")

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "%w: getting absolute path for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "%w: reading directory %s: %w"

	// warningSkipSubdirMessage is logged when a subdirectory is replaced by an error leaf.
	warningSkipSubdirMessage = "skipping unreadable subdirectory"

	// debugRejectedMessage is logged when the filter pipeline drops an entry.
	debugRejectedMessage = "entry filtered"

	// debugUnsupportedMessage is logged for entries that are neither regular files nor directories.
	debugUnsupportedMessage = "entry dropped"
)

// GetTreeData builds the whole tree for rootDirectoryPath.
// The root is a directory node at depth 0 whose children start at depth 1.
func (treeBuilder *TreeBuilder) GetTreeData(rootDirectoryPath string) (*tree.Node, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, ErrTraversal, rootDirectoryPath, absolutePathError)
	}

	children, buildError := treeBuilder.Build(absoluteRootDirPath, 1)
	if buildError != nil {
		return nil, buildError
	}
	return tree.NewDirectory(absoluteRootDirPath, 0, children), nil
}

// Build lists directoryPath and returns its retained entries as nodes at currentDepth.
// Directories beyond MaxDepth are treated as empty and are never listed.
// Without KeepGoing the first listing failure anywhere below aborts the build.
func (treeBuilder *TreeBuilder) Build(directoryPath string, currentDepth int) ([]*tree.Node, error) {
	if currentDepth > treeBuilder.MaxDepth {
		return []*tree.Node{}, nil
	}

	entryNames, listError := treeBuilder.lister().ListNames(directoryPath)
	if listError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, ErrTraversal, directoryPath, listError)
	}

	retainedEntries := treeBuilder.retainEntries(directoryPath, entryNames)
	orderEntries(retainedEntries, treeBuilder.Order)

	nodes := make([]*tree.Node, 0, len(retainedEntries))
	for _, entry := range retainedEntries {
		if !entry.IsDirectory {
			nodes = append(nodes, tree.NewFile(entry.Path, currentDepth))
			continue
		}
		children, buildError := treeBuilder.Build(entry.Path, currentDepth+1)
		if buildError != nil {
			if !treeBuilder.KeepGoing {
				return nil, buildError
			}
			treeBuilder.logger().Warn(warningSkipSubdirMessage, zap.String("path", entry.Path), zap.Error(buildError))
			nodes = append(nodes, tree.NewError(entry.Path, currentDepth, buildError))
			continue
		}
		nodes = append(nodes, tree.NewDirectory(entry.Path, currentDepth, children))
	}
	return nodes, nil
}

// retainEntries stats each listed name, applies the filter pipeline, and keeps
// regular files and directories in listing order.
func (treeBuilder *TreeBuilder) retainEntries(directoryPath string, entryNames []string) []filter.Entry {
	retained := make([]filter.Entry, 0, len(entryNames))
	for _, entryName := range entryNames {
		childPath := filepath.Join(directoryPath, entryName)
		entryInfo, statError := treeBuilder.fileSystem().Stat(childPath)
		entry := filter.Entry{Path: childPath, IsDirectory: statError == nil && entryInfo.IsDir()}

		if predicateName, rejected := treeBuilder.Pipeline.Rejection(entry); rejected {
			treeBuilder.logger().Debug(debugRejectedMessage, zap.String("path", childPath), zap.String("predicate", predicateName))
			continue
		}
		if statError != nil {
			treeBuilder.logger().Debug(debugUnsupportedMessage, zap.String("path", childPath), zap.Error(statError))
			continue
		}
		if !entryInfo.IsDir() && !entryInfo.Mode().IsRegular() {
			treeBuilder.logger().Debug(debugUnsupportedMessage, zap.String("path", childPath), zap.Stringer("mode", entryInfo.Mode()))
			continue
		}
		retained = append(retained, entry)
	}
	return retained
}
