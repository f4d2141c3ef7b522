package utils

import "context"

type commandContextKey string

const (
	configurationFilePathContextKeyConstant commandContextKey = "configurationFilePath"
	launchModeContextKeyConstant            commandContextKey = "launchMode"
)

// CommandContextAccessor stores and retrieves values attached to command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file that was loaded, if any.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return accessor.withString(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, configurationFilePathContextKeyConstant)
}

// WithLaunchMode attaches the configured launch mode so subcommands can apply it when no flag overrides it.
func (accessor CommandContextAccessor) WithLaunchMode(parentContext context.Context, launchMode string) context.Context {
	return accessor.withString(parentContext, launchModeContextKeyConstant, launchMode)
}

// LaunchMode extracts the configured launch mode.
func (accessor CommandContextAccessor) LaunchMode(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, launchModeContextKeyConstant)
}

func (accessor CommandContextAccessor) withString(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func (accessor CommandContextAccessor) stringValue(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, available := executionContext.Value(key).(string)
	return value, available
}
