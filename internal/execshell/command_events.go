package execshell

// CommandEventObserver is notified as the executor runs probes and opens.
// Callbacks run on the goroutine that issued the command.
type CommandEventObserver interface {
	// CommandStarted fires before the process is created.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires after a waited command exits, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandSpawned fires once a detached command's process exists; its exit is never observed.
	CommandSpawned(command ShellCommand)
	// CommandExecutionFailed fires when the process could not be created or waited on.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandSpawned(ShellCommand) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
