package ui

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/winopen/internal/execshell"
)

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
// Probe results are reported at debug level so console output only shows opens by default.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.emit(command, zap.InfoLevel, eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.emit(command, zap.InfoLevel, eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.emit(command, zap.WarnLevel, eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandSpawned implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandSpawned(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.emit(command, zap.InfoLevel, eventLogger.formatter.BuildSpawnedMessage(command))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.emit(command, zap.ErrorLevel, eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}

func (eventLogger *ConsoleCommandEventLogger) emit(command execshell.ShellCommand, level zapcore.Level, message string) {
	if command.Details.Purpose == execshell.CommandPurposeProbe {
		level = zap.DebugLevel
	}
	if checkedEntry := eventLogger.logger.Check(level, message); checkedEntry != nil {
		checkedEntry.Write()
	}
}
