package commands_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

const (
	rootDirectoryPath = "/r"
	visibleFileName   = "a.txt"
	dotFileName       = ".b.txt"
	subDirectoryName  = "sub"
	nestedFileName    = "c.txt"
)

// countingLister records listed directories and optionally fails or reverses listings.
type countingLister struct {
	delegate commands.DirectoryLister
	listed   []string
	failures map[string]error
	reverse  bool
}

func (lister *countingLister) ListNames(directoryPath string) ([]string, error) {
	lister.listed = append(lister.listed, directoryPath)
	if failure, exists := lister.failures[directoryPath]; exists {
		return nil, failure
	}
	names, err := lister.delegate.ListNames(directoryPath)
	if err != nil || !lister.reverse {
		return names, err
	}
	reversed := make([]string, 0, len(names))
	for index := len(names) - 1; index >= 0; index-- {
		reversed = append(reversed, names[index])
	}
	return reversed, nil
}

func scenarioFileSystem(testingHandle *testing.T) afero.Fs {
	testingHandle.Helper()
	fileSystem := afero.NewMemMapFs()
	writeMemoryFile(testingHandle, fileSystem, filepath.Join(rootDirectoryPath, visibleFileName))
	writeMemoryFile(testingHandle, fileSystem, filepath.Join(rootDirectoryPath, dotFileName))
	writeMemoryFile(testingHandle, fileSystem, filepath.Join(rootDirectoryPath, subDirectoryName, nestedFileName))
	return fileSystem
}

func writeMemoryFile(testingHandle *testing.T, fileSystem afero.Fs, path string) {
	testingHandle.Helper()
	if err := fileSystem.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fileSystem, path, []byte("x"), 0o644); err != nil {
		testingHandle.Fatalf("write %s: %v", path, err)
	}
}

func newBuilder(fileSystem afero.Fs, lister commands.DirectoryLister, options types.TreeOptions) *commands.TreeBuilder {
	return &commands.TreeBuilder{
		FileSystem: fileSystem,
		Lister:     lister,
		Pipeline:   filter.NewPipeline(filter.Options{ShowHidden: options.ShowHidden, BlacklistPatterns: options.BlacklistPatterns}),
		MaxDepth:   options.Depth,
		Order:      options.Order,
		KeepGoing:  options.KeepGoing,
	}
}

func childNames(node *tree.Node) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name())
	}
	return names
}

func findChild(testingHandle *testing.T, node *tree.Node, name string) *tree.Node {
	testingHandle.Helper()
	for _, child := range node.Children {
		if child.Name() == name {
			return child
		}
	}
	testingHandle.Fatalf("child %s not found under %s (children %v)", name, node.Path, childNames(node))
	return nil
}

// TestGetTreeDataScenario verifies hidden-file suppression and directory nesting on the reference tree.
func TestGetTreeDataScenario(testingHandle *testing.T) {
	fileSystem := scenarioFileSystem(testingHandle)
	builder := newBuilder(fileSystem, nil, types.DefaultTreeOptions())

	root, err := builder.GetTreeData(rootDirectoryPath)
	if err != nil {
		testingHandle.Fatalf("GetTreeData error: %v", err)
	}
	if root.Kind != tree.KindDirectory || root.Depth != 0 {
		testingHandle.Fatalf("unexpected root node: %+v", root)
	}
	if !reflect.DeepEqual(childNames(root), []string{visibleFileName, subDirectoryName}) {
		testingHandle.Fatalf("unexpected root children: %v", childNames(root))
	}
	subDirectory := findChild(testingHandle, root, subDirectoryName)
	if subDirectory.Kind != tree.KindDirectory || subDirectory.Depth != 1 {
		testingHandle.Fatalf("unexpected sub node: %+v", subDirectory)
	}
	if !reflect.DeepEqual(childNames(subDirectory), []string{nestedFileName}) || subDirectory.Children[0].Depth != 2 {
		testingHandle.Fatalf("unexpected sub children: %+v", subDirectory.Children)
	}
	if file := findChild(testingHandle, root, visibleFileName); file.Kind != tree.KindFile || file.Children != nil {
		testingHandle.Fatalf("unexpected file node: %+v", file)
	}
}

// TestGetTreeDataShowHidden verifies dot-files are retained on request.
func TestGetTreeDataShowHidden(testingHandle *testing.T) {
	options := types.DefaultTreeOptions()
	options.ShowHidden = true
	root, err := newBuilder(scenarioFileSystem(testingHandle), nil, options).GetTreeData(rootDirectoryPath)
	if err != nil {
		testingHandle.Fatalf("GetTreeData error: %v", err)
	}
	findChild(testingHandle, root, dotFileName)
}

// TestGetTreeDataDepthLimit verifies directories at the limit are empty and never listed.
func TestGetTreeDataDepthLimit(testingHandle *testing.T) {
	fileSystem := scenarioFileSystem(testingHandle)
	lister := &countingLister{delegate: commands.FileSystemLister{FileSystem: fileSystem}}
	options := types.DefaultTreeOptions()
	options.Depth = 1

	root, err := newBuilder(fileSystem, lister, options).GetTreeData(rootDirectoryPath)
	if err != nil {
		testingHandle.Fatalf("GetTreeData error: %v", err)
	}
	subDirectory := findChild(testingHandle, root, subDirectoryName)
	if subDirectory.Kind != tree.KindDirectory || len(subDirectory.Children) != 0 {
		testingHandle.Fatalf("expected empty directory at depth limit, got %+v", subDirectory)
	}
	if !reflect.DeepEqual(lister.listed, []string{rootDirectoryPath}) {
		testingHandle.Fatalf("expected only the root to be listed, got %v", lister.listed)
	}
}

// TestGetTreeDataBlacklist verifies a blacklisted directory disappears with its subtree.
func TestGetTreeDataBlacklist(testingHandle *testing.T) {
	options := types.DefaultTreeOptions()
	options.BlacklistPatterns = []string{subDirectoryName}
	root, err := newBuilder(scenarioFileSystem(testingHandle), nil, options).GetTreeData(rootDirectoryPath)
	if err != nil {
		testingHandle.Fatalf("GetTreeData error: %v", err)
	}
	if !reflect.DeepEqual(childNames(root), []string{visibleFileName}) {
		testingHandle.Fatalf("unexpected children: %v", childNames(root))
	}
}

// TestBuildDepthInvariant verifies depth accounting for every configured maximum.
func TestBuildDepthInvariant(testingHandle *testing.T) {
	fileSystem := afero.NewMemMapFs()
	currentPath := rootDirectoryPath
	for level := 1; level <= 6; level++ {
		currentPath = filepath.Join(currentPath, fmt.Sprintf("level%d", level))
		writeMemoryFile(testingHandle, fileSystem, filepath.Join(currentPath, "file.txt"))
	}

	for maximumDepth := types.MinimumDepth; maximumDepth <= 8; maximumDepth++ {
		options := types.DefaultTreeOptions()
		options.Depth = maximumDepth
		root, err := newBuilder(fileSystem, nil, options).GetTreeData(rootDirectoryPath)
		if err != nil {
			testingHandle.Fatalf("depth %d: GetTreeData error: %v", maximumDepth, err)
		}
		if root.Depth != 0 {
			testingHandle.Fatalf("depth %d: root depth %d", maximumDepth, root.Depth)
		}
		tree.Walk(root, func(node *tree.Node, parent *tree.Node) bool {
			if parent != nil && node.Depth != parent.Depth+1 {
				testingHandle.Fatalf("depth %d: node %s depth %d under parent depth %d", maximumDepth, node.Path, node.Depth, parent.Depth)
			}
			if node.Depth > maximumDepth {
				testingHandle.Fatalf("depth %d: node %s constructed at depth %d", maximumDepth, node.Path, node.Depth)
			}
			return true
		})
		expectedDeepest := maximumDepth
		if expectedDeepest > 7 {
			expectedDeepest = 7
		}
		if deepest := tree.MaxDepth(root); deepest != expectedDeepest {
			testingHandle.Fatalf("depth %d: deepest node at %d, want %d", maximumDepth, deepest, expectedDeepest)
		}
	}
}

// TestBuildOrdering verifies the listing order is preserved by default and reordered on request.
func TestBuildOrdering(testingHandle *testing.T) {
	fileSystem := afero.NewMemMapFs()
	for _, name := range []string{"b.txt", "a.txt", "d.txt"} {
		writeMemoryFile(testingHandle, fileSystem, filepath.Join(rootDirectoryPath, name))
	}
	writeMemoryFile(testingHandle, fileSystem, filepath.Join(rootDirectoryPath, "c", "inner.txt"))

	testCases := []struct {
		order    string
		expected []string
	}{
		{order: types.OrderListing, expected: []string{"d.txt", "c", "b.txt", "a.txt"}},
		{order: types.OrderName, expected: []string{"a.txt", "b.txt", "c", "d.txt"}},
		{order: types.OrderDirectoriesFirst, expected: []string{"c", "a.txt", "b.txt", "d.txt"}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.order, func(testingHandle *testing.T) {
			lister := &countingLister{delegate: commands.FileSystemLister{FileSystem: fileSystem}, reverse: true}
			options := types.DefaultTreeOptions()
			options.Order = testCase.order
			root, err := newBuilder(fileSystem, lister, options).GetTreeData(rootDirectoryPath)
			if err != nil {
				testingHandle.Fatalf("GetTreeData error: %v", err)
			}
			if !reflect.DeepEqual(childNames(root), testCase.expected) {
				testingHandle.Fatalf("children %v, want %v", childNames(root), testCase.expected)
			}
		})
	}
}

// TestBuildListingFailure verifies abort-on-error by default and error leaves with KeepGoing.
func TestBuildListingFailure(testingHandle *testing.T) {
	fileSystem := scenarioFileSystem(testingHandle)
	listingFailure := errors.New("permission denied")
	failingPath := filepath.Join(rootDirectoryPath, subDirectoryName)

	lister := &countingLister{
		delegate: commands.FileSystemLister{FileSystem: fileSystem},
		failures: map[string]error{failingPath: listingFailure},
	}
	_, abortError := newBuilder(fileSystem, lister, types.DefaultTreeOptions()).GetTreeData(rootDirectoryPath)
	if !errors.Is(abortError, commands.ErrTraversal) || !errors.Is(abortError, listingFailure) {
		testingHandle.Fatalf("expected wrapped traversal error, got %v", abortError)
	}

	options := types.DefaultTreeOptions()
	options.KeepGoing = true
	root, keepGoingError := newBuilder(fileSystem, lister, options).GetTreeData(rootDirectoryPath)
	if keepGoingError != nil {
		testingHandle.Fatalf("expected best-effort build to succeed, got %v", keepGoingError)
	}
	errorLeaf := findChild(testingHandle, root, subDirectoryName)
	if errorLeaf.Kind != tree.KindError || !errors.Is(errorLeaf.Err, listingFailure) || errorLeaf.Depth != 1 {
		testingHandle.Fatalf("unexpected error leaf: %+v", errorLeaf)
	}
	findChild(testingHandle, root, visibleFileName)
}

// TestBuildRootFailureIsFatal verifies the root listing error is returned even in best-effort mode.
func TestBuildRootFailureIsFatal(testingHandle *testing.T) {
	options := types.DefaultTreeOptions()
	options.KeepGoing = true
	_, err := newBuilder(afero.NewMemMapFs(), nil, options).GetTreeData("/absent")
	if !errors.Is(err, commands.ErrTraversal) {
		testingHandle.Fatalf("expected traversal error, got %v", err)
	}
}

// TestGetTreeDataOperatingSystem exercises the OS filesystem, ignore file, and unsupported entries.
func TestGetTreeDataOperatingSystem(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	mustWrite(testingHandle, filepath.Join(rootDirectory, ".gitignore"), "*.log\nbuild/\n")
	mustWrite(testingHandle, filepath.Join(rootDirectory, "main.go"), "package main")
	mustWrite(testingHandle, filepath.Join(rootDirectory, "debug.log"), "log")
	mustWrite(testingHandle, filepath.Join(rootDirectory, "build", "out.bin"), "bin")
	mustWrite(testingHandle, filepath.Join(rootDirectory, "docs", "readme.md"), "docs")
	if err := os.Symlink(filepath.Join(rootDirectory, "missing"), filepath.Join(rootDirectory, "dangling")); err != nil {
		testingHandle.Logf("symlink unsupported: %v", err)
	}

	ignoreMatcher, loadError := config.LoadRootIgnoreFile(rootDirectory)
	if loadError != nil {
		testingHandle.Fatalf("LoadRootIgnoreFile error: %v", loadError)
	}
	options := types.DefaultTreeOptions()
	options.Order = types.OrderName
	pipeline := filter.NewPipeline(filter.Options{
		HiddenProbe:   filter.NewPlatformHiddenProbe(),
		IgnoreMatcher: ignoreMatcher,
	})
	root, err := commands.NewTreeBuilder(options, pipeline, nil).GetTreeData(rootDirectory)
	if err != nil {
		testingHandle.Fatalf("GetTreeData error: %v", err)
	}
	if !reflect.DeepEqual(childNames(root), []string{"docs", "main.go"}) {
		testingHandle.Fatalf("unexpected children: %v", childNames(root))
	}
}

func mustWrite(testingHandle *testing.T, path string, content string) {
	testingHandle.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		testingHandle.Fatalf("write %s: %v", path, err)
	}
}
