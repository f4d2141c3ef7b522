package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/launcher"
	"github.com/temirov/winopen/internal/ui"
	"github.com/temirov/winopen/internal/utils"
	"github.com/temirov/winopen/internal/winshell"
)

const (
	applicationNameConstant                 = "winopen"
	applicationShortDescriptionConstant     = "Open files, folders, and URLs with their Windows handlers"
	applicationLongDescriptionConstant      = "winopen hands paths and URLs to the Windows shell so they open with the registered handler or a named application."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	versionFlagNameConstant                 = "version"
	versionFlagUsageConstant                = "Print the winopen version and exit."
	versionOutputTemplateConstant           = "%s version: %s\n"
	unknownVersionConstant                  = "(devel)"
	environmentPrefixConstant               = "WINOPEN"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationShellFieldConstant         = "shell"
	configurationModeFieldConstant          = "mode"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	shellConfigurationErrorTemplateConstant = "invalid launcher.shell: %w"
	launcherCreationErrorTemplateConstant   = "unable to create launcher: %w"
	defaultConfigurationSearchPathConstant  = "."
)

// Version is overridden at build time through -ldflags "-X github.com/temirov/winopen/cmd/cli.Version=...".
var Version = ""

// Application wires the Cobra root command, configuration loader, structured logger, and launcher.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	versionFlagValue       bool
	commandContextAccessor utils.CommandContextAccessor
	commandRunner          execshell.CommandRunner
	shellResolver          winshell.ShellResolver
	launcherInstance       *launcher.Launcher
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if application.versionFlagValue {
				application.printVersion(command)
				return nil
			}
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.versionFlagValue, versionFlagNameConstant, false, versionFlagUsageConstant)

	openBuilder := OpenCommandBuilder{
		LoggerProvider:         application.loggerProvider,
		LauncherProvider:       application.resolveLauncher,
		ConfigurationProvider:  application.launcherConfiguration,
		CommandContextAccessor: application.commandContextAccessor,
	}
	openCommand, openBuildError := openBuilder.Build()
	if openBuildError == nil {
		cobraCommand.AddCommand(openCommand)
	}

	commandsBuilder := CommandsCommandBuilder{
		LauncherProvider: application.resolveLauncher,
	}
	commandsCommand, commandsBuildError := commandsBuilder.Build()
	if commandsBuildError == nil {
		cobraCommand.AddCommand(commandsCommand)
	}

	shellBuilder := ShellCommandBuilder{
		ResolverProvider:       application.resolveShellResolver,
		CommandContextAccessor: application.commandContextAccessor,
	}
	shellCommand, shellBuildError := shellBuilder.Build()
	if shellBuildError == nil {
		cobraCommand.AddCommand(shellCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, applicationNameConstant))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = utils.LogLevel(utils.NormalizeKeyword(application.logLevelFlagValue))
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = utils.LogFormat(utils.NormalizeKeyword(application.logFormatFlagValue))
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		application.configuration.Common.LogLevel,
		application.configuration.Common.LogFormat,
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger
	application.shellResolver = nil
	application.launcherInstance = nil

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, string(application.configuration.Common.LogLevel)),
		zap.String(configurationLogFormatFieldConstant, string(application.configuration.Common.LogFormat)),
		zap.String(configurationShellFieldConstant, application.configuration.Launcher.Shell),
		zap.String(configurationModeFieldConstant, string(application.configuration.Launcher.Mode)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithLaunchMode(updatedContext, string(application.configuration.Launcher.Mode))
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) launcherConfiguration() ApplicationLauncherConfiguration {
	return application.configuration.Launcher
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return application.configuration.Common.LogFormat == utils.LogFormatConsole
}

// resolveShellResolver honours launcher.shell and otherwise probes once per invocation,
// logging the probes the same way open invocations are logged.
func (application *Application) resolveShellResolver() (winshell.ShellResolver, error) {
	if application.shellResolver != nil {
		return application.shellResolver, nil
	}

	configuredShell := strings.TrimSpace(application.configuration.Launcher.Shell)
	if len(configuredShell) > 0 {
		shell, parseError := winshell.ParseShell(configuredShell)
		if parseError != nil {
			return nil, fmt.Errorf(shellConfigurationErrorTemplateConstant, parseError)
		}
		application.shellResolver = winshell.NewFixedResolver(shell)
		return application.shellResolver, nil
	}

	runner := application.commandRunner
	if runner == nil {
		runner = execshell.NewOSCommandRunner()
	}
	probeExecutor, executorError := execshell.NewShellExecutor(application.executorLogger(), runner)
	if executorError != nil {
		return nil, executorError
	}
	probingResolver, resolverError := winshell.NewResolver(probeExecutor.WithObserver(application.commandObserver()))
	if resolverError != nil {
		return nil, resolverError
	}
	application.shellResolver = probingResolver
	return probingResolver, nil
}

func (application *Application) resolveLauncher() (*launcher.Launcher, error) {
	if application.launcherInstance != nil {
		return application.launcherInstance, nil
	}

	resolver, resolverError := application.resolveShellResolver()
	if resolverError != nil {
		return nil, resolverError
	}

	launcherInstance, launcherError := launcher.NewLauncher(launcher.Dependencies{
		Logger:          application.executorLogger(),
		Runner:          application.commandRunner,
		Resolver:        resolver,
		Observer:        application.commandObserver(),
		DetachedBackend: application.configuration.Launcher.DetachedBackend,
	})
	if launcherError != nil {
		return nil, fmt.Errorf(launcherCreationErrorTemplateConstant, launcherError)
	}

	application.launcherInstance = launcherInstance
	return launcherInstance, nil
}

// executorLogger is silenced in console format, where commandObserver reports instead.
func (application *Application) executorLogger() *zap.Logger {
	if application.humanReadableLoggingEnabled() {
		return zap.NewNop()
	}
	return application.logger
}

func (application *Application) commandObserver() execshell.CommandEventObserver {
	if application.humanReadableLoggingEnabled() {
		return ui.NewConsoleCommandEventLogger(application.logger)
	}
	return nil
}

func (application *Application) printVersion(command *cobra.Command) {
	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, applicationNameConstant, application.versionResolver(executionContext))
	application.exitFunction(0)
}

func resolveBuildVersion(context.Context) string {
	if len(strings.TrimSpace(Version)) > 0 {
		return Version
	}
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 {
		return unknownVersionConstant
	}
	return buildInformation.Main.Version
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
