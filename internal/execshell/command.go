package execshell

import (
	"context"
	"strings"
)

const (
	commandArgumentsJoinSeparatorConstant = " "
)

// Windows process creation flags applied to shell invocations.
const (
	// CreateNoWindowFlag prevents the child from inheriting or allocating a console window.
	CreateNoWindowFlag uint32 = 0x08000000
	// CreateNewProcessGroupFlag places the child in its own process group so it outlives its spawner.
	CreateNewProcessGroupFlag uint32 = 0x00000200
)

// CommandName identifies the executable looked up on the search path.
type CommandName string

// CommandPurpose describes why an invocation is issued; it only affects reporting.
type CommandPurpose int

// Supported command purposes.
const (
	CommandPurposeGeneric CommandPurpose = iota
	CommandPurposeProbe
	CommandPurposeOpen
)

// CommandDetails describes the arguments and process attributes of an invocation.
type CommandDetails struct {
	// Arguments are escaped by the operating system layer before being placed on the command line.
	Arguments []string

	// RawArguments are appended to the command line verbatim, after Arguments.
	RawArguments []string

	// CreationFlags are Windows process creation flags; HideWindow suppresses the child window.
	CreationFlags uint32
	HideWindow    bool

	// Purpose, Target and Application annotate the invocation for log messages.
	Purpose     CommandPurpose
	Target      string
	Application string
}

// ShellCommand combines an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a completed command.
type ExecutionResult struct {
	ExitCode int
}

// CommandRunner represents the ability to run or spawn shell commands.
type CommandRunner interface {
	// Run executes the command, waits for it to exit, and reports its exit code.
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
	// Start creates the process and returns without waiting for it.
	Start(executionContext context.Context, command ShellCommand) error
}

// CommandLineArguments returns every argument in command line order.
func (command ShellCommand) CommandLineArguments() []string {
	arguments := make([]string, 0, len(command.Details.Arguments)+len(command.Details.RawArguments))
	arguments = append(arguments, command.Details.Arguments...)
	arguments = append(arguments, command.Details.RawArguments...)
	return arguments
}

// WithCreationFlags returns a copy of the command with additional creation flags set.
func (command ShellCommand) WithCreationFlags(flags uint32) ShellCommand {
	updated := command
	updated.Details.Arguments = append([]string{}, command.Details.Arguments...)
	updated.Details.RawArguments = append([]string{}, command.Details.RawArguments...)
	updated.Details.CreationFlags |= flags
	return updated
}

// String renders the executable and its arguments separated by spaces.
func (command ShellCommand) String() string {
	commandParts := append([]string{string(command.Name)}, command.CommandLineArguments()...)
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}
