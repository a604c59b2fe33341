package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/dirtree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  depth: 10
  blacklist: []
  show_hidden: false
  use_gitignore: false
  display_emoji: false
  order: listing
  style: classic
  keep_going: false
  summary: false
  copy: false
`
)

const (
	errorInitWorkingDirectoryFormat = "%w: locate working directory for %s: %w"
	errorInitHomeDirectoryFormat    = "%w: locate home directory for %s: %w"
	errorInitCreateDirectoryFormat  = "%w: create %s: %w"
	errorInitUnknownTargetFormat    = "%w: init target %q is neither %q nor %q"
	errorInitExistingFileFormat     = "%w: %s already exists (use --force to replace it)"
	errorInitInspectFormat          = "%w: inspect %s: %w"
	errorInitWriteFormat            = "%w: write %s: %w"

	configurationDirectoryPermissions = 0o755
	configurationFilePermissions      = 0o600
)

// InitOptions selects where the default tree configuration is written and whether an existing file is replaced.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default tree configuration and returns the file it wrote.
// An existing file is only replaced when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := initDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	_, statError := os.Stat(destinationPath)
	switch {
	case statError == nil && !options.Force:
		return "", fmt.Errorf(errorInitExistingFileFormat, ErrConfiguration, destinationPath)
	case statError != nil && !os.IsNotExist(statError):
		return "", fmt.Errorf(errorInitInspectFormat, ErrConfiguration, destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), configurationFilePermissions); writeError != nil {
		return "", fmt.Errorf(errorInitWriteFormat, ErrConfiguration, destinationPath, writeError)
	}
	return destinationPath, nil
}

// initDestination maps the target onto ./.dirtree.yaml or ~/.dirtree/config.yaml,
// creating the global directory when needed.
func initDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf(errorInitWorkingDirectoryFormat, ErrConfiguration, utils.ConfigFileName, err)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf(errorInitHomeDirectoryFormat, ErrConfiguration, utils.GlobalConfigFileName, err)
		}
		globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(globalDirectory, configurationDirectoryPermissions); err != nil {
			return "", fmt.Errorf(errorInitCreateDirectoryFormat, ErrConfiguration, globalDirectory, err)
		}
		return filepath.Join(globalDirectory, utils.GlobalConfigFileName), nil
	default:
		return "", fmt.Errorf(errorInitUnknownTargetFormat, ErrConfiguration, options.Target, InitTargetLocal, InitTargetGlobal)
	}
}
