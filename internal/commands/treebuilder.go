package commands

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/types"
)

// TreeBuilder builds directory tree nodes using configured options.
type TreeBuilder struct {
	FileSystem afero.Fs
	Lister     DirectoryLister
	Pipeline   *filter.Pipeline
	MaxDepth   int
	Order      string
	KeepGoing  bool
	Logger     *zap.Logger
}

// NewTreeBuilder returns a builder reading the operating system filesystem.
func NewTreeBuilder(options types.TreeOptions, pipeline *filter.Pipeline, logger *zap.Logger) *TreeBuilder {
	fileSystem := afero.NewOsFs()
	return &TreeBuilder{
		FileSystem: fileSystem,
		Lister:     FileSystemLister{FileSystem: fileSystem},
		Pipeline:   pipeline,
		MaxDepth:   options.Depth,
		Order:      options.Order,
		KeepGoing:  options.KeepGoing,
		Logger:     logger,
	}
}

func (treeBuilder *TreeBuilder) fileSystem() afero.Fs {
	if treeBuilder.FileSystem == nil {
		return afero.NewOsFs()
	}
	return treeBuilder.FileSystem
}

func (treeBuilder *TreeBuilder) lister() DirectoryLister {
	if treeBuilder.Lister == nil {
		return FileSystemLister{FileSystem: treeBuilder.fileSystem()}
	}
	return treeBuilder.Lister
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}
