package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/utils"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationFileModeConstant = 0o600
)

type recordingCommandRunner struct {
	mutex      sync.Mutex
	exitCodes  map[execshell.CommandName]int
	runCalls   []execshell.ShellCommand
	startCalls []execshell.ShellCommand
}

func newRecordingCommandRunner() *recordingCommandRunner {
	return &recordingCommandRunner{exitCodes: map[execshell.CommandName]int{}}
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.mutex.Lock()
	defer runner.mutex.Unlock()
	runner.runCalls = append(runner.runCalls, command)
	return execshell.ExecutionResult{ExitCode: runner.exitCodes[command.Name]}, nil
}

func (runner *recordingCommandRunner) Start(_ context.Context, command execshell.ShellCommand) error {
	runner.mutex.Lock()
	defer runner.mutex.Unlock()
	runner.startCalls = append(runner.startCalls, command)
	return nil
}

func (runner *recordingCommandRunner) recordedRuns() []execshell.ShellCommand {
	runner.mutex.Lock()
	defer runner.mutex.Unlock()
	return append([]execshell.ShellCommand(nil), runner.runCalls...)
}

func (runner *recordingCommandRunner) recordedStarts() []execshell.ShellCommand {
	runner.mutex.Lock()
	defer runner.mutex.Unlock()
	return append([]execshell.ShellCommand(nil), runner.startCalls...)
}

type testApplicationHarness struct {
	application *Application
	runner      *recordingCommandRunner
	output      *bytes.Buffer
	logOutput   *bytes.Buffer
}

func newTestApplicationHarness(testInstance *testing.T) testApplicationHarness {
	testInstance.Helper()

	runner := newRecordingCommandRunner()
	output := &bytes.Buffer{}
	logOutput := &bytes.Buffer{}

	application := NewApplication()
	application.commandRunner = runner
	application.loggerFactory = utils.NewLoggerFactory().WithOutput(logOutput)
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)

	return testApplicationHarness{
		application: application,
		runner:      runner,
		output:      output,
		logOutput:   logOutput,
	}
}

func (harness testApplicationHarness) execute(arguments ...string) error {
	harness.application.rootCommand.SetArgs(arguments)
	return harness.application.Execute()
}

func writeConfigurationFile(testInstance *testing.T, content string) string {
	testInstance.Helper()

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), testConfigurationFileModeConstant))
	return configurationPath
}
