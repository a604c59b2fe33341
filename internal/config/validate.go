package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/dirtree/internal/types"
)

const (
	errorDepthRangeFormat   = "%w: depth %d is outside [%d, %d]"
	errorUnknownOrderFormat = "%w: unknown order %q (expected %s)"
	errorUnknownStyleFormat = "%w: unknown style %q (expected %s)"
	errorRootMissingFormat  = "%w: the specified path %s does not exist"
	errorRootStatFormat     = "%w: error reading dir %s: %w"
	errorRootNotDirFormat   = "%w: the specified path %s is not a directory"
	errorRootAbsoluteFormat = "%w: absolute path for %s: %w"
)

var (
	supportedOrders = []string{types.OrderListing, types.OrderName, types.OrderDirectoriesFirst}
	supportedStyles = []string{types.StyleClassic, types.StyleStandard}
)

// ValidateTreeOptions checks ranges and enumerations that do not touch the filesystem.
func ValidateTreeOptions(options types.TreeOptions) error {
	if options.Depth < types.MinimumDepth || options.Depth > types.MaximumDepth {
		return fmt.Errorf(errorDepthRangeFormat, ErrConfiguration, options.Depth, types.MinimumDepth, types.MaximumDepth)
	}
	if !isOneOf(options.Order, supportedOrders) {
		return fmt.Errorf(errorUnknownOrderFormat, ErrConfiguration, options.Order, strings.Join(supportedOrders, ", "))
	}
	if !isOneOf(options.Style, supportedStyles) {
		return fmt.Errorf(errorUnknownStyleFormat, ErrConfiguration, options.Style, strings.Join(supportedStyles, ", "))
	}
	return nil
}

// ResolveRootDirectory converts rootPath to a clean absolute path and requires an existing directory.
func ResolveRootDirectory(rootPath string) (types.ValidatedPath, error) {
	absolutePath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorRootAbsoluteFormat, ErrConfiguration, rootPath, absoluteError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.ValidatedPath{}, fmt.Errorf(errorRootMissingFormat, ErrConfiguration, rootPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorRootStatFormat, ErrConfiguration, rootPath, statError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorRootNotDirFormat, ErrConfiguration, rootPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

func isOneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
