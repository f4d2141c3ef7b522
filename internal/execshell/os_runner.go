package execshell

import (
	"context"
	"errors"
	"os/exec"
)

// OSCommandRunner executes commands using the operating system facilities.
// Standard input, output, and error are always bound to the null device.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command using os/exec and waits for it to exit.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	if attributeError := applyPlatformAttributes(executable, command); attributeError != nil {
		return ExecutionResult{}, attributeError
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{ExitCode: exitError.ExitCode()}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{ExitCode: 0}, nil
}

// Start creates the process and releases it without waiting.
// The context only gates the spawn; it never terminates the child afterwards.
func (runner *OSCommandRunner) Start(executionContext context.Context, command ShellCommand) error {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
	}

	executable := exec.Command(string(command.Name), command.Details.Arguments...)
	if attributeError := applyPlatformAttributes(executable, command); attributeError != nil {
		return attributeError
	}

	if startError := executable.Start(); startError != nil {
		return startError
	}

	return executable.Process.Release()
}
