package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults read from files.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration mirrors the tree options; nil and empty values leave defaults untouched.
type TreeConfiguration struct {
	Depth        *int     `mapstructure:"depth"`
	Blacklist    []string `mapstructure:"blacklist"`
	ShowHidden   *bool    `mapstructure:"show_hidden"`
	UseGitIgnore *bool    `mapstructure:"use_gitignore"`
	DisplayEmoji *bool    `mapstructure:"display_emoji"`
	Order        string   `mapstructure:"order"`
	Style        string   `mapstructure:"style"`
	KeepGoing    *bool    `mapstructure:"keep_going"`
	Summary      *bool    `mapstructure:"summary"`
	Copy         *bool    `mapstructure:"copy"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local or explicit file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("%w: determine working directory: %w", ErrConfiguration, err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Blacklist = utils.NormalizePatterns(merged.Tree.Blacklist)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

// loadConfigurationFromPath reads one YAML file; a missing file is only an error when required.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("%w: stat configuration %s: %w", ErrConfiguration, path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("%w: configuration path %s is a directory", ErrConfiguration, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("%w: read configuration from %s: %w", ErrConfiguration, path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("%w: decode configuration from %s: %w", ErrConfiguration, path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Depth != nil {
		result.Depth = cloneInt(override.Depth)
	}
	if len(override.Blacklist) > 0 {
		result.Blacklist = append([]string{}, override.Blacklist...)
	}
	if override.ShowHidden != nil {
		result.ShowHidden = cloneBool(override.ShowHidden)
	}
	if override.UseGitIgnore != nil {
		result.UseGitIgnore = cloneBool(override.UseGitIgnore)
	}
	if override.DisplayEmoji != nil {
		result.DisplayEmoji = cloneBool(override.DisplayEmoji)
	}
	if override.Order != "" {
		result.Order = override.Order
	}
	if override.Style != "" {
		result.Style = override.Style
	}
	if override.KeepGoing != nil {
		result.KeepGoing = cloneBool(override.KeepGoing)
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	return result
}

// ApplyTo overlays the configured values onto options.
func (config TreeConfiguration) ApplyTo(options types.TreeOptions) types.TreeOptions {
	result := options
	if config.Depth != nil {
		result.Depth = *config.Depth
	}
	if len(config.Blacklist) > 0 {
		result.BlacklistPatterns = append([]string{}, config.Blacklist...)
	}
	if config.ShowHidden != nil {
		result.ShowHidden = *config.ShowHidden
	}
	if config.UseGitIgnore != nil {
		result.UseGitIgnore = *config.UseGitIgnore
	}
	if config.DisplayEmoji != nil {
		result.DisplayEmoji = *config.DisplayEmoji
	}
	if config.Order != "" {
		result.Order = config.Order
	}
	if config.Style != "" {
		result.Style = config.Style
	}
	if config.KeepGoing != nil {
		result.KeepGoing = *config.KeepGoing
	}
	if config.Summary != nil {
		result.Summary = *config.Summary
	}
	if config.Copy != nil {
		result.Copy = *config.Copy
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
