package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/winopen/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testSpawnSuccessCaseNameConstant             = "spawn_success"
	testSpawnFailureCaseNameConstant             = "spawn_failure"
	testCommandArgumentConstant                  = "-c"
	testCommandScriptConstant                    = "version"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	startError       error
	recordedCommands []execshell.ShellCommand
	startedCommands  []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

func (runner *recordingCommandRunner) Start(executionContext context.Context, command execshell.ShellCommand) error {
	runner.startedCommands = append(runner.startedCommands, command)
	return runner.startError
}

type recordingObserver struct {
	events []string
}

func (recorder *recordingObserver) CommandStarted(execshell.ShellCommand) {
	recorder.events = append(recorder.events, "started")
}

func (recorder *recordingObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	recorder.events = append(recorder.events, "completed")
}

func (recorder *recordingObserver) CommandSpawned(execshell.ShellCommand) {
	recorder.events = append(recorder.events, "spawned")
}

func (recorder *recordingObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	recorder.events = append(recorder.events, "execution_failed")
}

func testCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandName("nu"),
		Details: execshell.CommandDetails{
			Arguments: []string{testCommandArgumentConstant, testCommandScriptConstant},
			Purpose:   execshell.CommandPurposeProbe,
		},
	}
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectErrorType  any
		expectedLogCount int
		expectedEvents   []string
	}{
		{
			name:             testExecutionSuccessCaseNameConstant,
			runnerResult:     execshell.ExecutionResult{ExitCode: 0},
			expectedLogCount: 2,
			expectedEvents:   []string{"started", "completed"},
		},
		{
			name:             testExecutionFailureCaseNameConstant,
			runnerResult:     execshell.ExecutionResult{ExitCode: 1},
			expectErrorType:  execshell.CommandFailedError{},
			expectedLogCount: 2,
			expectedEvents:   []string{"started", "completed"},
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      errors.New("runner failure"),
			expectErrorType:  execshell.CommandExecutionError{},
			expectedLogCount: 2,
			expectedEvents:   []string{"started", "execution_failed"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventRecorder := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(logger, recordingRunner)
			require.NoError(testInstance, creationError)
			shellExecutor = shellExecutor.WithObserver(eventRecorder)

			executionResult, executionError := shellExecutor.Execute(context.Background(), testCommand())

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Zero(testInstance, executionResult.ExitCode)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult, executionResult)
			}

			require.Len(testInstance, recordingRunner.recordedCommands, 1)
			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			require.Equal(testInstance, testCase.expectedEvents, eventRecorder.events)
		})
	}
}

func TestShellExecutorSpawnBehavior(testInstance *testing.T) {
	testCases := []struct {
		name           string
		startError     error
		expectError    bool
		expectedEvents []string
	}{
		{
			name:           testSpawnSuccessCaseNameConstant,
			expectedEvents: []string{"started", "spawned"},
		},
		{
			name:           testSpawnFailureCaseNameConstant,
			startError:     errors.New("executable file not found"),
			expectError:    true,
			expectedEvents: []string{"started", "execution_failed"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			recordingRunner := &recordingCommandRunner{startError: testCase.startError}
			eventRecorder := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(zap.New(observerCore), recordingRunner)
			require.NoError(testInstance, creationError)
			shellExecutor = shellExecutor.WithObserver(eventRecorder)

			spawnError := shellExecutor.Spawn(context.Background(), testCommand())

			if testCase.expectError {
				require.Error(testInstance, spawnError)
				require.IsType(testInstance, execshell.CommandExecutionError{}, spawnError)
				require.ErrorIs(testInstance, spawnError, testCase.startError)
			} else {
				require.NoError(testInstance, spawnError)
			}

			require.Empty(testInstance, recordingRunner.recordedCommands)
			require.Len(testInstance, recordingRunner.startedCommands, 1)
			require.Len(testInstance, observerLogs.All(), 2)
			require.Equal(testInstance, testCase.expectedEvents, eventRecorder.events)
		})
	}
}

func TestShellExecutorWithNilObserverFallsBackToNoop(testInstance *testing.T) {
	shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), &recordingCommandRunner{})
	require.NoError(testInstance, creationError)

	shellExecutor = shellExecutor.WithObserver(nil)

	_, executionError := shellExecutor.Execute(context.Background(), testCommand())
	require.NoError(testInstance, executionError)
}
