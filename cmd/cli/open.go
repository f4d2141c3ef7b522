package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/winopen/internal/launcher"
	"github.com/temirov/winopen/internal/utils"
	flagutils "github.com/temirov/winopen/internal/utils/flags"
	pathutils "github.com/temirov/winopen/internal/utils/path"
)

const (
	openCommandUseConstant              = "open <target>..."
	openCommandShortDescriptionConstant = "Open files, folders, or URLs"
	openCommandLongDescriptionConstant  = "open hands each target to the detected shell. Without --app the registered handler opens it; with --app the named application does."
	openApplicationFlagNameConstant     = "app"
	openApplicationFlagUsageConstant    = "Application to open the targets with instead of the default handler."
	openModeFlagNameConstant            = "mode"
	openModeFlagUsageConstant           = "How to wait for launched targets."
	openRequestedMessageConstant        = "opening targets"
	logFieldModeConstant                = "mode"
	logFieldTargetCountConstant         = "target_count"
	logFieldApplicationConstant         = "application"
	openTargetErrorTemplateConstant     = "%s: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// LauncherProvider supplies the launcher configured for the current invocation.
type LauncherProvider func() (*launcher.Launcher, error)

// LauncherConfigurationProvider supplies the launcher section of the loaded configuration.
type LauncherConfigurationProvider func() ApplicationLauncherConfiguration

// OpenCommandBuilder assembles the open cobra command.
type OpenCommandBuilder struct {
	LoggerProvider         LoggerProvider
	LauncherProvider       LauncherProvider
	ConfigurationProvider  LauncherConfigurationProvider
	CommandContextAccessor utils.CommandContextAccessor
	TargetExpander         *pathutils.TargetExpander
}

// OpenOptions captures the parsed arguments of the open command.
type OpenOptions struct {
	Targets     []string
	Application string
	Mode        LaunchMode
}

// Build constructs the cobra command for opening targets.
func (builder *OpenCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   openCommandUseConstant,
		Short: openCommandShortDescriptionConstant,
		Long:  openCommandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(openApplicationFlagNameConstant, "", openApplicationFlagUsageConstant)
	flagutils.AddChoiceFlag(command.Flags(), nil, openModeFlagNameConstant, string(LaunchModeWait), LaunchModeChoices(), openModeFlagUsageConstant)

	return command, nil
}

func (builder *OpenCommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	launcherInstance, launcherError := builder.resolveLauncher()
	if launcherError != nil {
		return launcherError
	}

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	logger.Info(
		openRequestedMessageConstant,
		zap.String(logFieldModeConstant, string(options.Mode)),
		zap.Int(logFieldTargetCountConstant, len(options.Targets)),
		zap.String(logFieldApplicationConstant, options.Application),
	)

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	if options.Mode == LaunchModeDetached {
		return openDetached(executionContext, launcherInstance, options)
	}

	if configuration.Timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, configuration.Timeout)
		defer cancel()
	}

	if options.Mode == LaunchModeBackground {
		return openInBackground(executionContext, launcherInstance, options)
	}
	return openAndWait(executionContext, launcherInstance, options)
}

func (builder *OpenCommandBuilder) parseOptions(command *cobra.Command, arguments []string) (OpenOptions, error) {
	applicationName, _ := command.Flags().GetString(openApplicationFlagNameConstant)

	modeValue := string(builder.resolveConfiguration().Mode)
	if configuredMode, available := builder.CommandContextAccessor.LaunchMode(command.Context()); available {
		modeValue = configuredMode
	}
	if modeFlag := command.Flags().Lookup(openModeFlagNameConstant); modeFlag != nil && modeFlag.Changed {
		modeValue = modeFlag.Value.String()
	}

	mode, modeError := ParseLaunchMode(modeValue)
	if modeError != nil {
		return OpenOptions{}, modeError
	}

	expander := builder.TargetExpander
	if expander == nil {
		expander = pathutils.NewTargetExpander(pathutils.NewHomeExpander())
	}

	return OpenOptions{
		Targets:     expander.ExpandAll(arguments),
		Application: strings.TrimSpace(applicationName),
		Mode:        mode,
	}, nil
}

func openAndWait(executionContext context.Context, launcherInstance *launcher.Launcher, options OpenOptions) error {
	var failures []error
	for _, target := range options.Targets {
		var openError error
		if len(options.Application) > 0 {
			openError = launcherInstance.With(executionContext, target, options.Application)
		} else {
			openError = launcherInstance.That(executionContext, target)
		}
		if openError != nil {
			failures = append(failures, fmt.Errorf(openTargetErrorTemplateConstant, target, openError))
		}
	}
	return errors.Join(failures...)
}

func openInBackground(executionContext context.Context, launcherInstance *launcher.Launcher, options OpenOptions) error {
	handles := make([]*launcher.Handle, 0, len(options.Targets))
	for _, target := range options.Targets {
		if len(options.Application) > 0 {
			handles = append(handles, launcherInstance.WithInBackground(executionContext, target, options.Application))
			continue
		}
		handles = append(handles, launcherInstance.ThatInBackground(executionContext, target))
	}

	var waitGroup errgroup.Group
	for handleIndex, handle := range handles {
		target := options.Targets[handleIndex]
		waitGroup.Go(func() error {
			if waitError := handle.Wait(); waitError != nil {
				return fmt.Errorf(openTargetErrorTemplateConstant, target, waitError)
			}
			return nil
		})
	}
	return waitGroup.Wait()
}

func openDetached(executionContext context.Context, launcherInstance *launcher.Launcher, options OpenOptions) error {
	var failures []error
	for _, target := range options.Targets {
		var openError error
		if len(options.Application) > 0 {
			openError = launcherInstance.WithDetached(executionContext, target, options.Application)
		} else {
			openError = launcherInstance.ThatDetached(executionContext, target)
		}
		if openError != nil {
			failures = append(failures, fmt.Errorf(openTargetErrorTemplateConstant, target, openError))
		}
	}
	return errors.Join(failures...)
}

func (builder *OpenCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *OpenCommandBuilder) resolveLauncher() (*launcher.Launcher, error) {
	if builder.LauncherProvider == nil {
		return launcher.NewLauncher(launcher.Dependencies{})
	}
	return builder.LauncherProvider()
}

func (builder *OpenCommandBuilder) resolveConfiguration() ApplicationLauncherConfiguration {
	if builder.ConfigurationProvider == nil {
		return ApplicationLauncherConfiguration{Mode: LaunchModeWait}
	}
	return builder.ConfigurationProvider()
}
