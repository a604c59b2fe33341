package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Application-level messages and file names.
const (
	// ApplicationName is the binary name used in help output and configuration paths.
	ApplicationName = "dirtree"
	// GitIgnoreFileName is the fixed-name ignore file consulted at the traversal root.
	GitIgnoreFileName = ".gitignore"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".dirtree.yaml"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".dirtree"

	// LoggerInitializationFailedMessageFormat reports logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error logged by main.
	ApplicationExecutionFailedMessage = "dirtree failed"
)
