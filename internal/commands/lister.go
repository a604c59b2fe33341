package commands

import (
	"github.com/spf13/afero"
)

// DirectoryLister returns the names of the immediate entries of a directory.
type DirectoryLister interface {
	ListNames(directoryPath string) ([]string, error)
}

// FileSystemLister lists directories through afero without sorting, so the
// underlying listing order is preserved. afero.ReadDir would sort by name.
type FileSystemLister struct {
	FileSystem afero.Fs
}

// ListNames reads every entry name of directoryPath.
func (lister FileSystemLister) ListNames(directoryPath string) (names []string, err error) {
	directory, openError := lister.FileSystem.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer func() {
		if closeError := directory.Close(); closeError != nil && err == nil {
			err = closeError
		}
	}()
	return directory.Readdirnames(-1)
}
