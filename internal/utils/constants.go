// Package utils contains general helper functions used across the skx tool.
package utils

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".skx"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the name of the per-repository configuration file.
	LocalConfigFileName = ".skx.yaml"
	// ApplicationExecutionFailedMessage prefixes fatal application errors.
	ApplicationExecutionFailedMessage = "skx execution failed"
)
