package execshell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandFailedErrorTemplateConstant        = "%s (exit code %d)"
	commandExecutionErrorTemplateConstant     = "%s: %v"
	logFieldCommandNameConstant               = "command_name"
	logFieldCommandArgumentsConstant          = "command_arguments"
	logFieldCreationFlagsConstant             = "creation_flags"
	logFieldExitCodeConstant                  = "exit_code"
)

// ErrLoggerNotConfigured indicates that a ShellExecutor was created without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates that a ShellExecutor was created without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandFailedError reports a command that ran but exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command and its exit code.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.String(), failedError.Result.ExitCode)
}

// CommandExecutionError reports a command that could not be started or waited on.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command and the underlying failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.String(), executionError.Cause)
}

// Unwrap exposes the underlying failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs shell commands through a CommandRunner, logging each lifecycle stage.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor from the provided logger and runner.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  noopCommandEventObserver{},
		formatter: CommandMessageFormatter{},
	}, nil
}

// WithObserver returns a copy of the executor that notifies the provided observer.
func (executor *ShellExecutor) WithObserver(observer CommandEventObserver) *ShellExecutor {
	updated := *executor
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	updated.observer = observer
	return &updated
}

// Execute runs the command and waits for it, returning CommandFailedError for non-zero exit codes
// and CommandExecutionError when the process could not be run.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Info(executor.formatter.BuildStartedMessage(command), executor.commandFields(command)...)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Warn(executor.formatter.BuildExecutionFailureMessage(command, runError), append(executor.commandFields(command), zap.Error(runError))...)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult), append(executor.commandFields(command), zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.formatter.BuildSuccessMessage(command), executor.commandFields(command)...)
	return executionResult, nil
}

// Spawn creates the command's process without waiting for it to exit.
func (executor *ShellExecutor) Spawn(executionContext context.Context, command ShellCommand) error {
	executor.logger.Info(executor.formatter.BuildStartedMessage(command), executor.commandFields(command)...)
	executor.observer.CommandStarted(command)

	if startError := executor.runner.Start(executionContext, command); startError != nil {
		executor.logger.Warn(executor.formatter.BuildExecutionFailureMessage(command, startError), append(executor.commandFields(command), zap.Error(startError))...)
		executor.observer.CommandExecutionFailed(command, startError)
		return CommandExecutionError{Command: command, Cause: startError}
	}

	executor.logger.Info(executor.formatter.BuildSpawnedMessage(command), executor.commandFields(command)...)
	executor.observer.CommandSpawned(command)
	return nil
}

func (executor *ShellExecutor) commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.CommandLineArguments()),
		zap.Uint32(logFieldCreationFlagsConstant, command.Details.CreationFlags),
	}
}
