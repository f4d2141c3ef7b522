package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/temirov/winopen/internal/launcher"
	"github.com/temirov/winopen/internal/utils"
)

const (
	launchModeWaitConstant              = "wait"
	launchModeBackgroundConstant        = "background"
	launchModeDetachedConstant          = "detached"
	unknownLaunchModeMessageConstant    = "unknown launch mode"
	unknownLaunchModeErrorTemplate      = "%w: %q"
	commonConfigurationKeyConstant      = "common"
	commonLogLevelConfigKeyConstant     = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant    = commonConfigurationKeyConstant + ".log_format"
	launcherConfigurationKeyConstant    = "launcher"
	launcherShellConfigKeyConstant      = launcherConfigurationKeyConstant + ".shell"
	launcherModeConfigKeyConstant       = launcherConfigurationKeyConstant + ".mode"
	launcherBackendConfigKeyConstant    = launcherConfigurationKeyConstant + ".detached_backend"
	launcherTimeoutConfigKeyConstant    = launcherConfigurationKeyConstant + ".timeout"
	defaultLauncherTimeoutValueConstant = "0s"
)

// ErrUnknownLaunchMode indicates a launch mode outside wait, background, and detached.
var ErrUnknownLaunchMode = errors.New(unknownLaunchModeMessageConstant)

// LaunchMode selects how the open command waits for launched targets.
type LaunchMode string

// Supported launch modes.
const (
	LaunchModeWait       LaunchMode = launchModeWaitConstant
	LaunchModeBackground LaunchMode = launchModeBackgroundConstant
	LaunchModeDetached   LaunchMode = launchModeDetachedConstant
)

// LaunchModeChoices lists the accepted launch mode spellings in display order.
func LaunchModeChoices() []string {
	return []string{string(LaunchModeWait), string(LaunchModeBackground), string(LaunchModeDetached)}
}

// ParseLaunchMode converts a textual launch mode. Empty input selects LaunchModeWait.
func ParseLaunchMode(value string) (LaunchMode, error) {
	normalized := utils.NormalizeKeyword(value)
	switch LaunchMode(normalized) {
	case "", LaunchModeWait:
		return LaunchModeWait, nil
	case LaunchModeBackground, LaunchModeDetached:
		return LaunchMode(normalized), nil
	default:
		return "", fmt.Errorf(unknownLaunchModeErrorTemplate, ErrUnknownLaunchMode, value)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *LaunchMode) UnmarshalText(text []byte) error {
	parsed, parseError := ParseLaunchMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsed
	return nil
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Launcher ApplicationLauncherConfiguration `mapstructure:"launcher"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  utils.LogLevel  `mapstructure:"log_level"`
	LogFormat utils.LogFormat `mapstructure:"log_format"`
}

// ApplicationLauncherConfiguration controls shell selection and launch behavior.
type ApplicationLauncherConfiguration struct {
	// Shell names the shell to use; empty probes pwsh, then nu, then falls back to cmd.
	Shell           string                   `mapstructure:"shell"`
	Mode            LaunchMode               `mapstructure:"mode"`
	DetachedBackend launcher.DetachedBackend `mapstructure:"detached_backend"`
	// Timeout bounds waiting opens. Zero waits indefinitely.
	Timeout time.Duration `mapstructure:"timeout"`
}

func defaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		launcherShellConfigKeyConstant:   "",
		launcherModeConfigKeyConstant:    string(LaunchModeWait),
		launcherBackendConfigKeyConstant: string(launcher.DetachedBackendShell),
		launcherTimeoutConfigKeyConstant: defaultLauncherTimeoutValueConstant,
	}
}
