// Package config loads and merges skx application configuration from global and
// local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/skillctx/skx/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree  TreeConfiguration  `mapstructure:"tree"`
	Count CountConfiguration `mapstructure:"count"`
	Check CheckConfiguration `mapstructure:"check"`
	Sync  SyncConfiguration  `mapstructure:"sync"`
}

// TreeConfiguration defines defaults for the tree command.
type TreeConfiguration struct {
	BarWidth  *int     `mapstructure:"bar_width"`
	Model     string   `mapstructure:"model"`
	Include   []string `mapstructure:"include"`
	Clipboard *bool    `mapstructure:"clipboard"`
	Color     string   `mapstructure:"color"`
}

// CountConfiguration defines defaults for the count command.
type CountConfiguration struct {
	Model string `mapstructure:"model"`
}

// CheckConfiguration defines defaults for the check command.
type CheckConfiguration struct {
	SkillsPath string `mapstructure:"skills_path"`
}

// SyncConfiguration defines defaults for the sync command.
type SyncConfiguration struct {
	Destination string `mapstructure:"destination"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Global configuration lives under the user home; a local file in the working
// directory overrides it.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	if len(merged.Tree.Include) > 0 {
		merged.Tree.Include = utils.DeduplicatePatterns(merged.Tree.Include)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Tree = result.Tree.merge(override.Tree)
	result.Count = result.Count.merge(override.Count)
	result.Check = result.Check.merge(override.Check)
	result.Sync = result.Sync.merge(override.Sync)
	return result
}

func (configuration TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := configuration
	if override.BarWidth != nil {
		result.BarWidth = cloneInt(override.BarWidth)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if len(override.Include) > 0 {
		result.Include = append([]string{}, utils.DeduplicatePatterns(override.Include)...)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	return result
}

func (configuration CountConfiguration) merge(override CountConfiguration) CountConfiguration {
	result := configuration
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (configuration CheckConfiguration) merge(override CheckConfiguration) CheckConfiguration {
	result := configuration
	if override.SkillsPath != "" {
		result.SkillsPath = override.SkillsPath
	}
	return result
}

func (configuration SyncConfiguration) merge(override SyncConfiguration) SyncConfiguration {
	result := configuration
	if override.Destination != "" {
		result.Destination = override.Destination
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
